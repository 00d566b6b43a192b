package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/pixelmart/storefront/internal/admin/application"
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
		tracer:  otel.Tracer("admin-http"),
	}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(h.tokens.Middleware, auth.RequireAdmin)
	r.Get("/users", h.listUsers)
	r.Delete("/users/{userId}", h.deleteUser)
	r.Get("/analytics", h.analytics)
	r.Get("/dashboard", h.dashboard)
	return r
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ListUsers")
	defer span.End()

	users, err := h.service.ListUsers(ctx)
	if err != nil {
		web.Fail(h.log, w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, map[string]any{"users": users})
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "DeleteUser")
	defer span.End()

	actor, _ := auth.FromContext(ctx)
	if err := h.service.DeleteUser(ctx, actor.UserID, chi.URLParam(r, "userId")); err != nil {
		web.Fail(h.log, w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, map[string]string{"message": "user deleted"})
}

func (h *Handler) analytics(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "Analytics")
	defer span.End()

	stats, err := h.service.Analytics(ctx)
	if err != nil {
		web.Fail(h.log, w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, stats)
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "Dashboard")
	defer span.End()

	stats, err := h.service.Dashboard(ctx)
	if err != nil {
		web.Fail(h.log, w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, stats)
}
