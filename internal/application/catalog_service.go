package application

import (
	"context"
	"fmt"
	"io"

	"github.com/radwane-khemisse/gestion-de-produits-et-commandes/internal/domain"
	"github.com/radwane-khemisse/gestion-de-produits-et-commandes/internal/ports"
)

// CatalogService performs the administrator catalog mutations. Every
// mutation is followed by a full cache reload; the remote catalog is the
// source of truth and the cache never merges single records.
type CatalogService struct {
	api    ports.CatalogAPI
	cache  *CatalogCache
	tokens ports.TokenSource
}

func NewCatalogService(api ports.CatalogAPI, cache *CatalogCache, tokens ports.TokenSource) *CatalogService {
	return &CatalogService{
		api:    api,
		cache:  cache,
		tokens: tokens,
	}
}

func (s *CatalogService) CreateProduct(ctx context.Context, input ports.ProductInput) (domain.Product, error) {
	if err := validateProductInput(input); err != nil {
		return domain.Product{}, err
	}

	token := s.tokens.GetValidToken(ctx)
	product, err := s.api.CreateProduct(ctx, token, input)
	if err != nil {
		return domain.Product{}, err
	}

	if err := s.cache.InvalidateAndReload(ctx); err != nil {
		return product, fmt.Errorf("reload catalog after create: %w", err)
	}
	return product, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id domain.ProductID, input ports.ProductInput) (domain.Product, error) {
	if err := validateProductInput(input); err != nil {
		return domain.Product{}, err
	}

	token := s.tokens.GetValidToken(ctx)
	product, err := s.api.UpdateProduct(ctx, token, id, input)
	if err != nil {
		return domain.Product{}, err
	}

	if err := s.cache.InvalidateAndReload(ctx); err != nil {
		return product, fmt.Errorf("reload catalog after update: %w", err)
	}
	return product, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id domain.ProductID) error {
	token := s.tokens.GetValidToken(ctx)
	if err := s.api.DeleteProduct(ctx, token, id); err != nil {
		return err
	}

	if err := s.cache.InvalidateAndReload(ctx); err != nil {
		return fmt.Errorf("reload catalog after delete: %w", err)
	}
	return nil
}

func (s *CatalogService) UploadProductImage(ctx context.Context, id domain.ProductID, filename string, file io.Reader) error {
	token := s.tokens.GetValidToken(ctx)
	return s.api.UploadProductImage(ctx, token, id, filename, file)
}

func validateProductInput(input ports.ProductInput) error {
	if input.Name == "" {
		return fmt.Errorf("product name is required")
	}
	if input.Price < 0 {
		return fmt.Errorf("product price must not be negative")
	}
	if input.Quantity < 0 {
		return fmt.Errorf("product quantity must not be negative")
	}
	return nil
}
