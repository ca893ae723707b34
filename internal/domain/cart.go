package domain

// CartItem is one proposed order line. Quantity is the desired total for
// the product in this order, not an increment.
type CartItem struct {
	ProductID ProductID
	Name      string
	Price     float64
	Quantity  int
}

func (i CartItem) LineTotal() float64 {
	return i.Price * float64(i.Quantity)
}
