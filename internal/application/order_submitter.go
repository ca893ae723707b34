package application

import (
	"context"
	"fmt"

	"github.com/radwane-khemisse/gestion-de-produits-et-commandes/internal/domain"
	"github.com/radwane-khemisse/gestion-de-produits-et-commandes/internal/ports"
)

// OrderSubmitter turns assembled cart state into a confirmed order and
// resolves which orders listing a session is entitled to.
type OrderSubmitter struct {
	api    ports.OrderAPI
	tokens ports.TokenSource
}

func NewOrderSubmitter(api ports.OrderAPI, tokens ports.TokenSource) *OrderSubmitter {
	return &OrderSubmitter{
		api:    api,
		tokens: tokens,
	}
}

// Submit sends the cart as an order attributed to clientID. On success
// the cart is cleared; on any failure the cart is left exactly as it was
// so the customer can adjust and retry. There is no automatic retry:
// blindly resubmitting against a stock-limited resource could mask a
// legitimate depletion.
func (s *OrderSubmitter) Submit(ctx context.Context, cart *CartAssembler, clientID string) (domain.Order, error) {
	if cart.Len() == 0 {
		return domain.Order{}, domain.NewValidationError(domain.ValidationEmptyCart)
	}
	if clientID == "" {
		return domain.Order{}, fmt.Errorf("client id is required")
	}

	items := cart.Items()
	req := domain.OrderRequest{
		ClientID: clientID,
		Items:    make([]domain.OrderRequestItem, 0, len(items)),
	}
	for _, item := range items {
		req.Items = append(req.Items, domain.OrderRequestItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	token := s.tokens.GetValidToken(ctx)
	order, err := s.api.CreateOrder(ctx, token, req)
	if err != nil {
		return domain.Order{}, err
	}

	cart.Clear()
	return order, nil
}

// ListForSession requests the listing the session's role policy selects:
// every order for an admin, orders scoped to the subject otherwise.
func (s *OrderSubmitter) ListForSession(ctx context.Context, session domain.Session) ([]domain.Order, error) {
	policy := domain.ResolveRolePolicy(session.Roles)
	token := s.tokens.GetValidToken(ctx)

	if policy.OrderScope() == domain.OrderScopeAll {
		return s.api.ListOrders(ctx, token)
	}
	return s.api.ListOrdersByClient(ctx, token, session.DisplayName())
}
