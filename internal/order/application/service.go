package application

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pixelmart/storefront/internal/order/domain"
	"github.com/pixelmart/storefront/internal/pricing"
	"github.com/pixelmart/storefront/pkg/apperror"
	"github.com/pixelmart/storefront/pkg/auth"
	"github.com/pixelmart/storefront/pkg/tracing"
)

type Service struct {
	log    *slog.Logger
	repo   OrderRepository
	carts  CartViewer
	pricer *pricing.Engine
}

func NewService(log *slog.Logger, repo OrderRepository, carts CartViewer, pricer *pricing.Engine) *Service {
	return &Service{log: log, repo: repo, carts: carts, pricer: pricer}
}

type CheckoutInput struct {
	ShippingAddress domain.ShippingAddress
	PaymentMethod   string
	// Total is priced by the caller; it is recorded as submitted, alongside
	// the server-computed breakdown.
	Total float64
}

// Checkout converts the user's cart into an order snapshot and clears the
// cart. Both writes and the OrderCreated event land in one transaction, so a
// created order always leaves an empty cart behind. Stock is not decremented.
func (s *Service) Checkout(ctx context.Context, userID string, in CheckoutInput) (domain.Order, error) {
	if err := in.ShippingAddress.Validate(); err != nil {
		return domain.Order{}, err
	}
	if in.PaymentMethod == "" {
		return domain.Order{}, apperror.New(apperror.CodeInvalid, "payment method is required")
	}

	view, err := s.carts.Get(ctx, userID)
	if err != nil {
		return domain.Order{}, err
	}
	if len(view.Items) == 0 {
		return domain.Order{}, apperror.New(apperror.CodeInvalidState, "cannot checkout an empty cart")
	}

	items := make([]domain.OrderItem, 0, len(view.Items))
	lines := make([]pricing.Line, 0, len(view.Items))
	for _, item := range view.Items {
		items = append(items, domain.OrderItem{
			ProductID: item.Product.ID,
			Title:     item.Product.Title,
			UnitPrice: item.Product.Price,
			Quantity:  item.Quantity,
		})
		lines = append(lines, pricing.Line{UnitPrice: item.Product.Price, Quantity: item.Quantity})
	}
	quote := s.pricer.Quote(lines)

	now := time.Now().UTC()
	o := domain.Order{
		ID:              uuid.NewString(),
		UserID:          userID,
		Items:           items,
		ShippingAddress: in.ShippingAddress,
		PaymentMethod:   in.PaymentMethod,
		Subtotal:        quote.Subtotal,
		Tax:             quote.Tax,
		ShippingFee:     quote.Shipping,
		Total:           in.Total,
		Status:          domain.StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	payload, err := json.Marshal(domain.OrderCreated{
		OrderID: o.ID,
		UserID:  o.UserID,
		Total:   o.Total,
		Items:   o.Items,
	})
	if err != nil {
		return domain.Order{}, err
	}

	if err := s.repo.CreateWithCartClear(ctx, o, payload, tracing.Traceparent(ctx)); err != nil {
		return domain.Order{}, err
	}
	s.log.Info("order created", "order_id", o.ID, "user_id", userID, "total", o.Total)
	return o, nil
}

// Get returns an order to its owner or to an admin. Anyone else gets the same
// not-found answer as a nonexistent id, so order ids don't leak ownership.
func (s *Service) Get(ctx context.Context, id string, actor auth.Identity) (domain.Order, error) {
	o, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}
	if o.UserID != actor.UserID && !actor.Admin {
		return domain.Order{}, apperror.New(apperror.CodeNotFound, "order not found")
	}
	return o, nil
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) ListAll(ctx context.Context) ([]domain.Order, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) UpdateStatus(ctx context.Context, id, status string) (domain.Order, error) {
	parsed, err := domain.ParseStatus(status)
	if err != nil {
		return domain.Order{}, err
	}
	o, err := s.repo.UpdateStatusWithOutbox(ctx, id, parsed, tracing.Traceparent(ctx))
	if err != nil {
		return domain.Order{}, err
	}
	s.log.Info("order status updated", "order_id", id, "status", parsed)
	return o, nil
}
