package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/pixelmart/storefront/internal/catalog/application"
	"github.com/pixelmart/storefront/internal/catalog/domain"
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
		tracer:  otel.Tracer("catalog-http"),
	}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.list)
	r.Get("/{id}", h.get)

	r.Group(func(r chi.Router) {
		r.Use(h.tokens.Middleware, auth.RequireAdmin)
		r.Post("/", h.create)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})
	return r
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ListProducts")
	defer span.End()

	products, err := h.service.List(ctx)
	if err != nil {
		web.Fail(h.log, w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, products)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "GetProduct")
	defer span.End()

	p, err := h.service.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		web.Fail(h.log, w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, p)
}

// productReq accepts both the canonical "title" and the legacy "name" field;
// the mapping happens here and nowhere else.
type productReq struct {
	Title       string   `json:"title"`
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	Category    *string  `json:"category"`
	Platforms   []string `json:"platforms"`
	Platform    string   `json:"platform"`
	Rating      *float64 `json:"rating"`
}

func (req *productReq) title() string {
	if req.Title != "" {
		return req.Title
	}
	return req.Name
}

func (req *productReq) platforms() []string {
	if len(req.Platforms) > 0 {
		return req.Platforms
	}
	if req.Platform != "" {
		return []string{req.Platform}
	}
	return nil
}

func newProduct(req productReq) domain.Product {
	p := domain.Product{
		Title:     req.title(),
		Platforms: req.platforms(),
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Stock != nil {
		p.Stock = *req.Stock
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.Rating != nil {
		p.Rating = *req.Rating
	}
	return p
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "CreateProduct")
	defer span.End()

	var req productReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Fail(h.log, w, r, apperror.New(apperror.CodeInvalid, "invalid request body"))
		return
	}

	p := newProduct(req)
	created, err := h.service.Create(ctx, p)
	if err != nil {
		web.Fail(h.log, w, r, err)
		return
	}
	web.Respond(w, http.StatusCreated, created)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "UpdateProduct")
	defer span.End()

	var req productReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Fail(h.log, w, r, apperror.New(apperror.CodeInvalid, "invalid request body"))
		return
	}

	params := application.UpdateParams{
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Category:    req.Category,
		Platforms:   req.platforms(),
		Rating:      req.Rating,
	}
	if t := req.title(); t != "" {
		params.Title = &t
	}

	p, err := h.service.Update(ctx, chi.URLParam(r, "id"), params)
	if err != nil {
		web.Fail(h.log, w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, p)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "DeleteProduct")
	defer span.End()

	if err := h.service.Delete(ctx, chi.URLParam(r, "id")); err != nil {
		web.Fail(h.log, w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, map[string]string{"message": "product deleted"})
}
