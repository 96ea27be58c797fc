package model

import "time"

// OrderStatus values, forward-only. No endpoint mutates status yet;
// orders stay PENDING until a kitchen workflow lands.
const (
	OrderStatusPending   = "PENDING"
	OrderStatusPreparing = "PREPARING"
	OrderStatusReady     = "READY"
	OrderStatusCompleted = "COMPLETED"
)

// OrderItem is a line item: a product snapshot taken at order time plus
// the ordered quantity. The snapshot keeps history stable if the catalog
// changes later.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Order is a confirmed order. Immutable once created.
type Order struct {
	ID        string      `json:"id"`
	UserID    string      `json:"userId"`
	Items     []OrderItem `json:"items"`
	Total     float64     `json:"total"`
	Status    string      `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
}

// CreateOrderRequest is the body of order /create. The client may send a
// total; the server recomputes it from the catalog and rejects a
// submitted total that disagrees with the recomputation.
type CreateOrderRequest struct {
	UserID string             `json:"userId"`
	Items  []CreateOrderItem  `json:"items" binding:"required,min=1"`
	Total  *float64           `json:"total,omitempty"`
	Status string             `json:"status,omitempty"`
}

// CreateOrderItem is a single requested line item
type CreateOrderItem struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

// MyOrdersRequest is the body of order /my-orders
type MyOrdersRequest struct {
	UserID string `json:"userId"`
}
