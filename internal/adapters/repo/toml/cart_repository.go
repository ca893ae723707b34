package toml

import (
	"context"
	"sync"

	"github.com/spf13/viper"

	"github.com/radwane-khemisse/gestion-de-produits-et-commandes/internal/domain"
	"github.com/radwane-khemisse/gestion-de-produits-et-commandes/internal/ports"
)

const cartFileName = "cart.toml"

type CartRepository struct {
	path string
	mu   *sync.RWMutex
}

var _ ports.CartRepository = (*CartRepository)(nil)

type cartFileSchema struct {
	Version int              `toml:"version"`
	Items   []cartItemSchema `toml:"items"`
}

type cartItemSchema struct {
	ProductID string  `toml:"product_id"`
	Name      string  `toml:"name"`
	Price     float64 `toml:"price"`
	Quantity  int     `toml:"quantity"`
}

func NewCartRepository(cfg *viper.Viper) (*CartRepository, error) {
	path, err := resolveStatePath(cfg, cartFileName)
	if err != nil {
		return nil, err
	}

	return &CartRepository{path: path, mu: lockForPath(path)}, nil
}

func (r *CartRepository) Load(ctx context.Context) ([]domain.CartItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var file cartFileSchema
	if _, err := readTOMLFile(r.path, &file); err != nil {
		return nil, err
	}

	items := make([]domain.CartItem, 0, len(file.Items))
	for _, entry := range file.Items {
		items = append(items, domain.CartItem{
			ProductID: domain.ProductID(entry.ProductID),
			Name:      entry.Name,
			Price:     entry.Price,
			Quantity:  entry.Quantity,
		})
	}
	return items, nil
}

func (r *CartRepository) Save(ctx context.Context, items []domain.CartItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file := cartFileSchema{
		Version: 1,
		Items:   make([]cartItemSchema, 0, len(items)),
	}
	for _, item := range items {
		file.Items = append(file.Items, cartItemSchema{
			ProductID: string(item.ProductID),
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}
	return writeTOMLFile(r.path, file)
}

func (r *CartRepository) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return removeStateFile(r.path)
}
