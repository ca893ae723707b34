package rest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/radwane-khemisse/gestion-de-produits-et-commandes/internal/domain"
	"github.com/radwane-khemisse/gestion-de-produits-et-commandes/internal/ports"
)

const productsPath = "/api/produits"

var _ ports.CatalogAPI = (*Client)(nil)

// productSchema mirrors the produit service wire shape. Ids are numeric
// on the wire and opaque strings in the domain.
type productSchema struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

type productInputSchema struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

func (c *Client) ListProducts(ctx context.Context, token string) ([]domain.Product, error) {
	var payload []productSchema
	if err := c.do(ctx, "list products", http.MethodGet, productsPath, token, nil, &payload); err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(payload))
	for _, entry := range payload {
		products = append(products, fromProductSchema(entry))
	}
	return products, nil
}

func (c *Client) CreateProduct(ctx context.Context, token string, input ports.ProductInput) (domain.Product, error) {
	var payload productSchema
	if err := c.do(ctx, "create product", http.MethodPost, productsPath, token, toProductInputSchema(input), &payload); err != nil {
		return domain.Product{}, err
	}
	return fromProductSchema(payload), nil
}

func (c *Client) UpdateProduct(ctx context.Context, token string, id domain.ProductID, input ports.ProductInput) (domain.Product, error) {
	var payload productSchema
	path := productsPath + "/" + url.PathEscape(string(id))
	if err := c.do(ctx, "update product", http.MethodPut, path, token, toProductInputSchema(input), &payload); err != nil {
		return domain.Product{}, err
	}
	return fromProductSchema(payload), nil
}

func (c *Client) DeleteProduct(ctx context.Context, token string, id domain.ProductID) error {
	path := productsPath + "/" + url.PathEscape(string(id))
	return c.do(ctx, "delete product", http.MethodDelete, path, token, nil, nil)
}

func (c *Client) UploadProductImage(ctx context.Context, token string, id domain.ProductID, filename string, file io.Reader) error {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return fmt.Errorf("create multipart form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("copy image data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("close multipart form: %w", err)
	}

	endpoint, err := c.endpointURL(productsPath + "/" + url.PathEscape(string(id)) + "/image")
	if err != nil {
		return err
	}
	return c.doRaw(ctx, "upload product image", http.MethodPost, endpoint, token, writer.FormDataContentType(), &body, nil)
}

func fromProductSchema(entry productSchema) domain.Product {
	return domain.Product{
		ID:          domain.ProductID(strconv.FormatInt(entry.ID, 10)),
		Name:        entry.Name,
		Description: entry.Description,
		Price:       entry.Price,
		Quantity:    entry.Quantity,
	}
}

func toProductInputSchema(input ports.ProductInput) productInputSchema {
	return productInputSchema{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Quantity:    input.Quantity,
	}
}
