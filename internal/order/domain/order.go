package domain

import (
	"time"

	"github.com/pixelmart/storefront/pkg/apperror"
)

// OrderStatus follows pending -> processing -> shipped -> delivered, with
// cancelled reachable until the order is terminal. Transitions come only from
// admin actions; UpdateStatus validates the token, not the ordering.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

func ParseStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return OrderStatus(s), nil
	default:
		return "", apperror.Newf(apperror.CodeInvalid, "unrecognized order status %q", s)
	}
}

func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Order is an immutable snapshot of a completed checkout. Item prices and
// titles are frozen at purchase time; only Status changes afterward.
type Order struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId"`
	Items           []OrderItem     `json:"items"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	Subtotal        float64         `json:"subtotal"`
	Tax             float64         `json:"tax"`
	ShippingFee     float64         `json:"shippingFee"`
	Total           float64         `json:"total"`
	Status          OrderStatus     `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

type OrderItem struct {
	ProductID string  `json:"productId"`
	Title     string  `json:"title"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
}

type ShippingAddress struct {
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

func (a ShippingAddress) Validate() error {
	fields := map[string]string{
		"fullName":   a.FullName,
		"email":      a.Email,
		"phone":      a.Phone,
		"address":    a.Address,
		"city":       a.City,
		"state":      a.State,
		"postalCode": a.PostalCode,
		"country":    a.Country,
	}
	for name, v := range fields {
		if v == "" {
			return apperror.Newf(apperror.CodeInvalid, "shipping address field %s is required", name)
		}
	}
	return nil
}
