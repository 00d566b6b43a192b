package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/pixelmart/storefront/internal/order/application"
	"github.com/pixelmart/storefront/internal/order/domain"
	"github.com/pixelmart/storefront/pkg/apperror"
	"github.com/pixelmart/storefront/pkg/auth"
	"github.com/pixelmart/storefront/pkg/web"
)

type Handler struct {
	log     *slog.Logger
	service *application.Service
	tokens  *auth.Manager
	tracer  trace.Tracer
}

func NewHandler(log *slog.Logger, service *application.Service, tokens *auth.Manager) *Handler {
	return &Handler{
		log:     log,
		service: service,
		tokens:  tokens,
		tracer:  otel.Tracer("order-http"),
	}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(h.tokens.Middleware)
	r.Post("/checkout", h.checkout)
	r.Get("/myorders", h.myOrders)
	r.Get("/{id}", h.get)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAdmin)
		r.Get("/admin/orders", h.listAll)
		r.Put("/admin/orders/{id}", h.updateStatus)
	})
	return r
}

// checkoutReq mirrors the client payload. The items field is accepted for
// compatibility but the snapshot is always taken from the stored cart.
type checkoutReq struct {
	Items           []domain.OrderItem     `json:"items"`
	ShippingAddress domain.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod"`
	Total           float64                `json:"total"`
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "Checkout")
	defer span.End()

	var req checkoutReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Fail(h.log, w, r, apperror.New(apperror.CodeInvalid, "invalid request body"))
		return
	}

	id, _ := auth.FromContext(ctx)
	o, err := h.service.Checkout(ctx, id.UserID, application.CheckoutInput{
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		Total:           req.Total,
	})
	if err != nil {
		web.Fail(h.log, w, r, err)
		return
	}
	web.Respond(w, http.StatusCreated, o)
}

func (h *Handler) myOrders(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "MyOrders")
	defer span.End()

	id, _ := auth.FromContext(ctx)
	orders, err := h.service.ListByUser(ctx, id.UserID)
	if err != nil {
		web.Fail(h.log, w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, map[string]any{"orders": orders})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "GetOrder")
	defer span.End()

	id, _ := auth.FromContext(ctx)
	o, err := h.service.Get(ctx, chi.URLParam(r, "id"), id)
	if err != nil {
		web.Fail(h.log, w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, o)
}

func (h *Handler) listAll(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ListAllOrders")
	defer span.End()

	orders, err := h.service.ListAll(ctx)
	if err != nil {
		web.Fail(h.log, w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, map[string]any{"orders": orders})
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "UpdateOrderStatus")
	defer span.End()

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Fail(h.log, w, r, apperror.New(apperror.CodeInvalid, "invalid request body"))
		return
	}

	o, err := h.service.UpdateStatus(ctx, chi.URLParam(r, "id"), req.Status)
	if err != nil {
		web.Fail(h.log, w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, o)
}
