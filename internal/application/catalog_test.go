package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radwane-khemisse/gestion-de-produits-et-commandes/internal/domain"
	"github.com/radwane-khemisse/gestion-de-produits-et-commandes/internal/ports"
)

func TestCatalogCacheLoadIndexesByID(t *testing.T) {
	api := &fakeCatalogAPI{products: []domain.Product{
		{ID: "2", Name: "Souris", Price: 10.0, Quantity: 3},
		{ID: "1", Name: "Clavier", Price: 25.0, Quantity: 5},
	}}
	cache := NewCatalogCache(api, &staticTokenSource{token: "tok"})

	require.NoError(t, cache.Load(context.Background()))

	assert.Equal(t, 2, cache.Len())
	product, ok := cache.Get("1")
	require.True(t, ok)
	assert.Equal(t, "Clavier", product.Name)

	_, ok = cache.Get("missing")
	assert.False(t, ok)
}

func TestCatalogCacheProductsSortedByName(t *testing.T) {
	api := &fakeCatalogAPI{products: []domain.Product{
		{ID: "2", Name: "Souris"},
		{ID: "1", Name: "Clavier"},
		{ID: "3", Name: "Clavier"},
	}}
	cache := NewCatalogCache(api, &staticTokenSource{token: "tok"})
	require.NoError(t, cache.Load(context.Background()))

	products := cache.Products()
	require.Len(t, products, 3)
	assert.Equal(t, domain.ProductID("1"), products[0].ID)
	assert.Equal(t, domain.ProductID("3"), products[1].ID)
	assert.Equal(t, domain.ProductID("2"), products[2].ID)
}

func TestCatalogCacheKeepsSnapshotOnFailure(t *testing.T) {
	api := &fakeCatalogAPI{products: []domain.Product{{ID: "1", Name: "Clavier"}}}
	cache := NewCatalogCache(api, &staticTokenSource{token: "tok"})
	require.NoError(t, cache.Load(context.Background()))

	api.listErr = errors.New("service unavailable")
	err := cache.Load(context.Background())

	require.Error(t, err)
	assert.Equal(t, 1, cache.Len(), "previous snapshot survives a failed reload")
	_, ok := cache.Get("1")
	assert.True(t, ok)
}

func TestCatalogServiceMutationsReloadTheCache(t *testing.T) {
	api := &fakeCatalogAPI{
		created:  domain.Product{ID: "1", Name: "Clavier", Price: 25.0, Quantity: 5},
		products: []domain.Product{{ID: "1", Name: "Clavier", Price: 25.0, Quantity: 5}},
	}
	tokens := &staticTokenSource{token: "tok"}
	cache := NewCatalogCache(api, tokens)
	service := NewCatalogService(api, cache, tokens)

	product, err := service.CreateProduct(context.Background(), ports.ProductInput{
		Name: "Clavier", Price: 25.0, Quantity: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ProductID("1"), product.ID)
	assert.Equal(t, 1, api.listCalls, "create triggers a full reload")
	assert.Equal(t, 1, cache.Len())

	_, err = service.UpdateProduct(context.Background(), "1", ports.ProductInput{
		Name: "Clavier", Price: 30.0, Quantity: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, api.listCalls)

	require.NoError(t, service.DeleteProduct(context.Background(), "1"))
	assert.Equal(t, []domain.ProductID{"1"}, api.deleted)
	assert.Equal(t, 3, api.listCalls)
}

func TestCatalogServiceValidatesInput(t *testing.T) {
	api := &fakeCatalogAPI{}
	tokens := &staticTokenSource{token: "tok"}
	service := NewCatalogService(api, NewCatalogCache(api, tokens), tokens)

	tests := []struct {
		name  string
		input ports.ProductInput
	}{
		{name: "missing name", input: ports.ProductInput{Price: 1}},
		{name: "negative price", input: ports.ProductInput{Name: "Clavier", Price: -1}},
		{name: "negative quantity", input: ports.ProductInput{Name: "Clavier", Quantity: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CreateProduct(context.Background(), tt.input)
			require.Error(t, err)
			assert.Zero(t, api.listCalls, "invalid input never reaches the network")
		})
	}
}
