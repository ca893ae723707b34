package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/radwane-khemisse/gestion-de-produits-et-commandes/internal/domain"
	"github.com/radwane-khemisse/gestion-de-produits-et-commandes/internal/ports"
)

const ordersPath = "/api/commandes"

var _ ports.OrderAPI = (*Client)(nil)

type orderSchema struct {
	ID          int64             `json:"id"`
	ClientID    string            `json:"clientId"`
	OrderDate   string            `json:"orderDate"`
	Status      string            `json:"status"`
	TotalAmount float64           `json:"totalAmount"`
	Items       []orderItemSchema `json:"items"`
}

type orderItemSchema struct {
	ProductID int64   `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	LineTotal float64 `json:"lineTotal"`
}

type orderCreateSchema struct {
	ClientID string                  `json:"clientId"`
	Items    []orderItemCreateSchema `json:"items"`
}

type orderItemCreateSchema struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

func (c *Client) CreateOrder(ctx context.Context, token string, req domain.OrderRequest) (domain.Order, error) {
	body, err := toOrderCreateSchema(req)
	if err != nil {
		return domain.Order{}, err
	}

	var payload orderSchema
	if err := c.do(ctx, "create order", http.MethodPost, ordersPath, token, body, &payload); err != nil {
		return domain.Order{}, err
	}
	return fromOrderSchema(payload), nil
}

func (c *Client) ListOrders(ctx context.Context, token string) ([]domain.Order, error) {
	var payload []orderSchema
	if err := c.do(ctx, "list orders", http.MethodGet, ordersPath, token, nil, &payload); err != nil {
		return nil, err
	}
	return fromOrderSchemas(payload), nil
}

func (c *Client) ListOrdersByClient(ctx context.Context, token string, clientID string) ([]domain.Order, error) {
	var payload []orderSchema
	path := ordersPath + "/client/" + url.PathEscape(clientID)
	if err := c.do(ctx, "list client orders", http.MethodGet, path, token, nil, &payload); err != nil {
		return nil, err
	}
	return fromOrderSchemas(payload), nil
}

func toOrderCreateSchema(req domain.OrderRequest) (orderCreateSchema, error) {
	body := orderCreateSchema{
		ClientID: req.ClientID,
		Items:    make([]orderItemCreateSchema, 0, len(req.Items)),
	}
	for _, item := range req.Items {
		productID, err := strconv.ParseInt(string(item.ProductID), 10, 64)
		if err != nil {
			return orderCreateSchema{}, fmt.Errorf("encode order item: product id %q is not numeric", item.ProductID)
		}
		body.Items = append(body.Items, orderItemCreateSchema{
			ProductID: productID,
			Quantity:  item.Quantity,
		})
	}
	return body, nil
}

func fromOrderSchemas(payload []orderSchema) []domain.Order {
	orders := make([]domain.Order, 0, len(payload))
	for _, entry := range payload {
		orders = append(orders, fromOrderSchema(entry))
	}
	return orders
}

func fromOrderSchema(entry orderSchema) domain.Order {
	order := domain.Order{
		ID:          domain.OrderID(strconv.FormatInt(entry.ID, 10)),
		ClientID:    entry.ClientID,
		Status:      domain.OrderStatus(entry.Status),
		TotalAmount: entry.TotalAmount,
		Items:       make([]domain.OrderItem, 0, len(entry.Items)),
	}
	// The commande service writes LocalDateTime without a zone.
	if entry.OrderDate != "" {
		for _, layout := range []string{"2006-01-02T15:04:05", time.RFC3339} {
			if parsed, err := time.Parse(layout, entry.OrderDate); err == nil {
				order.OrderDate = parsed
				break
			}
		}
	}
	for _, item := range entry.Items {
		order.Items = append(order.Items, domain.OrderItem{
			ProductID: domain.ProductID(strconv.FormatInt(item.ProductID, 10)),
			Quantity:  item.Quantity,
			Price:     item.Price,
			LineTotal: item.LineTotal,
		})
	}
	return order
}
