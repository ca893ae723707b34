package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/radwane-khemisse/gestion-de-produits-et-commandes/internal/domain"
)

func TestRenderEmptyCatalog(t *testing.T) {
	out := Render(nil, domain.RolePolicy{})

	assert.Contains(t, out, "Catalog")
	assert.Contains(t, out, "products: 0")
	assert.Contains(t, out, "No products available.")
}

func TestRenderShowsManagedHeadingForAdmins(t *testing.T) {
	out := Render(nil, domain.ResolveRolePolicy([]string{"ADMIN"}))
	assert.Contains(t, out, "Catalog (managed)")

	out = Render(nil, domain.ResolveRolePolicy([]string{"CLIENT"}))
	assert.NotContains(t, out, "managed")
}

func TestRenderProductDetails(t *testing.T) {
	products := []domain.Product{
		{ID: "1", Name: "Clavier", Description: "AZERTY", Price: 25.5, Quantity: 5},
		{ID: "2", Name: "Souris", Price: 10.0, Quantity: 0},
	}

	out := Render(products, domain.RolePolicy{})

	assert.Contains(t, out, "Clavier")
	assert.Contains(t, out, "#1")
	assert.Contains(t, out, "AZERTY")
	assert.Contains(t, out, "$25.50")
	assert.Contains(t, out, "5 in stock")
	assert.Contains(t, out, "out of stock")
}
