package orders

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/radwane-khemisse/gestion-de-produits-et-commandes/internal/domain"
)

func TestRenderHeadingFollowsScope(t *testing.T) {
	out := Render(nil, domain.OrderScopeAll, nil)
	assert.Contains(t, out, "All commands")
	assert.Contains(t, out, "No commands yet.")

	out = Render(nil, domain.OrderScopeClient, nil)
	assert.Contains(t, out, "My commands")
}

func TestRenderOrderResolvesProductNames(t *testing.T) {
	list := []domain.Order{{
		ID:          "7",
		ClientID:    "alice",
		OrderDate:   time.Date(2026, 2, 14, 9, 30, 0, 0, time.UTC),
		Status:      domain.OrderStatusValidated,
		TotalAmount: 60.0,
		Items: []domain.OrderItem{
			{ProductID: "1", Quantity: 2, Price: 25.0, LineTotal: 50.0},
			{ProductID: "9", Quantity: 1, Price: 10.0, LineTotal: 10.0},
		},
	}}
	products := map[domain.ProductID]domain.Product{
		"1": {ID: "1", Name: "Clavier"},
	}

	out := Render(list, domain.OrderScopeClient, products)

	assert.Contains(t, out, "Order #7")
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "VALIDATED")
	assert.Contains(t, out, "2026-02-14 09:30")
	assert.Contains(t, out, "Clavier (#1)")
	assert.Contains(t, out, "#9", "unknown products fall back to their id")
	assert.Contains(t, out, "Total: $60.00")
}
