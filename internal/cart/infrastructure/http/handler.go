package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/pixelmart/storefront/internal/cart/application"
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
		tracer:  otel.Tracer("cart-http"),
	}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(h.tokens.Middleware)
	r.Get("/", h.get)
	r.Post("/add", h.add)
	r.Put("/update", h.update)
	r.Delete("/remove/{productId}", h.remove)
	return r
}

type mutationReq struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "GetCart")
	defer span.End()

	id, _ := auth.FromContext(ctx)
	view, err := h.service.Get(ctx, id.UserID)
	if err != nil {
		web.Fail(h.log, w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, view)
}

func (h *Handler) add(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "AddToCart")
	defer span.End()

	var req mutationReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Fail(h.log, w, r, apperror.New(apperror.CodeInvalid, "invalid request body"))
		return
	}

	id, _ := auth.FromContext(ctx)
	view, err := h.service.AddItem(ctx, id.UserID, req.ProductID, req.Quantity)
	if err != nil {
		web.Fail(h.log, w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, view)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "UpdateCart")
	defer span.End()

	var req struct {
		ProductID string `json:"productId"`
		Quantity  *int   `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Fail(h.log, w, r, apperror.New(apperror.CodeInvalid, "invalid request body"))
		return
	}
	if req.Quantity == nil {
		web.Fail(h.log, w, r, apperror.New(apperror.CodeInvalid, "quantity is required"))
		return
	}

	id, _ := auth.FromContext(ctx)
	view, err := h.service.SetQuantity(ctx, id.UserID, req.ProductID, *req.Quantity)
	if err != nil {
		web.Fail(h.log, w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, view)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RemoveFromCart")
	defer span.End()

	id, _ := auth.FromContext(ctx)
	view, err := h.service.RemoveItem(ctx, id.UserID, chi.URLParam(r, "productId"))
	if err != nil {
		web.Fail(h.log, w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, view)
}
