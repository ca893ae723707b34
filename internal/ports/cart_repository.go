package ports

import (
	"context"

	"github.com/radwane-khemisse/gestion-de-produits-et-commandes/internal/domain"
)

// CartRepository persists the in-progress cart between CLI invocations.
// The cart assembler stays the single writer; commands load the stored
// lines into it, mutate through it, and save what it holds.
type CartRepository interface {
	Load(ctx context.Context) ([]domain.CartItem, error)
	Save(ctx context.Context, items []domain.CartItem) error
	Clear(ctx context.Context) error
}
