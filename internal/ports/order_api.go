package ports

import (
	"context"

	"github.com/radwane-khemisse/gestion-de-produits-et-commandes/internal/domain"
)

// OrderAPI is the remote commande service.
type OrderAPI interface {
	CreateOrder(ctx context.Context, token string, req domain.OrderRequest) (domain.Order, error)
	ListOrders(ctx context.Context, token string) ([]domain.Order, error)
	ListOrdersByClient(ctx context.Context, token string, clientID string) ([]domain.Order, error)
}
