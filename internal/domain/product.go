package domain

type ProductID string

// Product is a catalog entry as returned by the remote produit service.
// Quantity is the stock currently available and is the upper bound for
// any order line referencing this product.
type Product struct {
	ID          ProductID
	Name        string
	Description string
	Price       float64
	Quantity    int
}

func (p Product) InStock() bool {
	return p.Quantity > 0
}
