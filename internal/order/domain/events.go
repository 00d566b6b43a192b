package domain

// Events published on order.events via the outbox.

const (
	EventOrderCreated       = "OrderCreated"
	EventOrderStatusChanged = "OrderStatusChanged"
)

type OrderCreated struct {
	OrderID string      `json:"orderId"`
	UserID  string      `json:"userId"`
	Total   float64     `json:"total"`
	Items   []OrderItem `json:"items"`
}

type OrderStatusChanged struct {
	OrderID string      `json:"orderId"`
	From    OrderStatus `json:"from"`
	To      OrderStatus `json:"to"`
}
