package application

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/radwane-khemisse/gestion-de-produits-et-commandes/internal/domain"
	"github.com/radwane-khemisse/gestion-de-produits-et-commandes/internal/ports"
)

// CatalogCache fetches the product catalog and indexes it by product id.
// A load replaces the whole index atomically: readers observe either the
// previous snapshot or the new one, never a partial merge. There is no
// background refresh; reloads are always caller-initiated.
type CatalogCache struct {
	api    ports.CatalogAPI
	tokens ports.TokenSource

	mu    sync.RWMutex
	index map[domain.ProductID]domain.Product
}

func NewCatalogCache(api ports.CatalogAPI, tokens ports.TokenSource) *CatalogCache {
	return &CatalogCache{
		api:    api,
		tokens: tokens,
	}
}

// Load fetches all products and swaps the index. On failure the previous
// snapshot is retained and the error is surfaced to the caller.
func (c *CatalogCache) Load(ctx context.Context) error {
	token := c.tokens.GetValidToken(ctx)
	products, err := c.api.ListProducts(ctx, token)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	index := make(map[domain.ProductID]domain.Product, len(products))
	for _, product := range products {
		index[product.ID] = product
	}

	c.mu.Lock()
	c.index = index
	c.mu.Unlock()

	return nil
}

// InvalidateAndReload is the reload-after-mutation contract: the full
// catalog is re-fetched rather than merging the mutated record.
func (c *CatalogCache) InvalidateAndReload(ctx context.Context) error {
	return c.Load(ctx)
}

// Get looks up a product in the current snapshot.
func (c *CatalogCache) Get(id domain.ProductID) (domain.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	product, ok := c.index[id]
	return product, ok
}

// Products returns the current snapshot sorted by name for stable
// rendering.
func (c *CatalogCache) Products() []domain.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	products := make([]domain.Product, 0, len(c.index))
	for _, product := range c.index {
		products = append(products, product)
	}
	sort.Slice(products, func(i, j int) bool {
		if products[i].Name != products[j].Name {
			return products[i].Name < products[j].Name
		}
		return products[i].ID < products[j].ID
	})

	return products
}

func (c *CatalogCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.index)
}
