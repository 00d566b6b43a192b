package application

import (
	"context"

	cartdomain "github.com/pixelmart/storefront/internal/cart/domain"
	"github.com/pixelmart/storefront/internal/order/domain"
)

type OrderRepository interface {
	// CreateWithCartClear persists the order, its OrderCreated outbox event,
	// and the clearing of the user's cart in one transaction.
	CreateWithCartClear(ctx context.Context, o domain.Order, payload []byte, traceparent string) error
	Get(ctx context.Context, id string) (domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	// UpdateStatusWithOutbox persists the new status together with its
	// OrderStatusChanged outbox event and returns the updated order.
	UpdateStatusWithOutbox(ctx context.Context, id string, status domain.OrderStatus, traceparent string) (domain.Order, error)
}

// CartViewer supplies the joined cart that checkout snapshots from.
type CartViewer interface {
	Get(ctx context.Context, userID string) (cartdomain.View, error)
}
