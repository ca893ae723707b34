package ports

import (
	"context"
	"io"

	"github.com/radwane-khemisse/gestion-de-produits-et-commandes/internal/domain"
)

// ProductInput is the payload for catalog mutations.
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Quantity    int
}

// CatalogAPI is the remote produit service. Mutations are admin-only;
// the gating happens at the view layer, authoritative enforcement stays
// server-side.
type CatalogAPI interface {
	ListProducts(ctx context.Context, token string) ([]domain.Product, error)
	CreateProduct(ctx context.Context, token string, input ProductInput) (domain.Product, error)
	UpdateProduct(ctx context.Context, token string, id domain.ProductID, input ProductInput) (domain.Product, error)
	DeleteProduct(ctx context.Context, token string, id domain.ProductID) error
	UploadProductImage(ctx context.Context, token string, id domain.ProductID, filename string, file io.Reader) error
}
