package domain

// OrderStatus is the lifecycle state of a placed order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusDelivered OrderStatus = "delivered"
	// OrderStatusCancelled is a reachable status value kept for stored
	// data compatibility; no operation currently transitions into it.
	OrderStatusCancelled OrderStatus = "cancelled"
)

// OrderItem is an immutable snapshot of a cart line taken at checkout.
// Price holds the effective price at checkout time, so later catalog or
// discount changes never alter a placed order.
type OrderItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`
	Image    string `json:"image"`
}

// Order is a completed checkout. Immutable once created except for
// status transitions.
type Order struct {
	ID     string      `json:"id"`
	Date   string      `json:"date"`
	Items  []OrderItem `json:"items"`
	Total  int64       `json:"total"`
	Status OrderStatus `json:"status"`
}
