package domain

import "time"

type OrderID string

type OrderStatus string

const OrderStatusValidated OrderStatus = "VALIDATED"

// OrderRequest is the submission payload sent to the commande service.
type OrderRequest struct {
	ClientID string
	Items    []OrderRequestItem
}

type OrderRequestItem struct {
	ProductID ProductID
	Quantity  int
}

// Order is the commande service's echo of a created or listed order.
// Price and LineTotal on items are server-computed from the catalog at
// order time, not client state.
type Order struct {
	ID          OrderID
	ClientID    string
	OrderDate   time.Time
	Status      OrderStatus
	TotalAmount float64
	Items       []OrderItem
}

type OrderItem struct {
	ProductID ProductID
	Quantity  int
	Price     float64
	LineTotal float64
}
