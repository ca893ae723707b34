package application

import (
	"sort"

	"github.com/radwane-khemisse/gestion-de-produits-et-commandes/internal/domain"
)

// CartAssembler holds the customer's in-progress order: a mapping from
// product id to at most one cart line. All mutations are synchronous, so
// cart state is never observed half-applied while a network call is in
// flight.
type CartAssembler struct {
	items map[domain.ProductID]domain.CartItem
}

func NewCartAssembler() *CartAssembler {
	return &CartAssembler{items: map[domain.ProductID]domain.CartItem{}}
}

// Restore replaces the cart contents with previously persisted lines.
// Later lines win on duplicate product ids.
func (c *CartAssembler) Restore(items []domain.CartItem) {
	c.items = make(map[domain.ProductID]domain.CartItem, len(items))
	for _, item := range items {
		if item.Quantity < 1 {
			continue
		}
		c.items[item.ProductID] = item
	}
}

// AddOrUpdate validates the requested quantity against the product's
// stock and inserts or replaces the line. The quantity is the desired
// total for the product in this order, so repeated adds with the same
// value are idempotent.
func (c *CartAssembler) AddOrUpdate(product domain.Product, quantity int) error {
	if quantity <= 0 {
		return domain.NewValidationError(domain.ValidationQuantityMustBePositive)
	}
	if quantity > product.Quantity {
		return domain.NewInsufficientStockError(product.Quantity)
	}

	c.items[product.ID] = domain.CartItem{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  quantity,
	}
	return nil
}

// SetQuantity adjusts an existing line without re-checking stock; the
// authoritative stock check happens server-side at submission. Editing a
// line that does not exist is an error, unlike Remove.
func (c *CartAssembler) SetQuantity(id domain.ProductID, quantity int) error {
	if quantity <= 0 {
		return domain.NewValidationError(domain.ValidationQuantityMustBePositive)
	}

	item, ok := c.items[id]
	if !ok {
		return domain.ErrCartItemNotFound
	}
	item.Quantity = quantity
	c.items[id] = item
	return nil
}

// Remove deletes a line; removing an absent line is a no-op.
func (c *CartAssembler) Remove(id domain.ProductID) {
	delete(c.items, id)
}

// Total is computed freshly from the lines on every call so it can never
// drift from them.
func (c *CartAssembler) Total() float64 {
	total := 0.0
	for _, item := range c.items {
		total += item.LineTotal()
	}
	return total
}

// Items returns the lines sorted by product id.
func (c *CartAssembler) Items() []domain.CartItem {
	items := make([]domain.CartItem, 0, len(c.items))
	for _, item := range c.items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].ProductID < items[j].ProductID
	})
	return items
}

func (c *CartAssembler) Len() int {
	return len(c.items)
}

func (c *CartAssembler) Clear() {
	c.items = map[domain.ProductID]domain.CartItem{}
}
