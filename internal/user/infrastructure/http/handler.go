package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/pixelmart/storefront/internal/user/application"
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
		tracer:  otel.Tracer("auth-http"),
	}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Post("/register", h.register)
	r.Post("/login", h.login)
	r.With(h.tokens.Middleware).Get("/me", h.me)
	return r
}

type credentialsReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "Register")
	defer span.End()

	var req credentialsReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Fail(h.log, w, r, apperror.New(apperror.CodeInvalid, "invalid request body"))
		return
	}

	sess, err := h.service.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		web.Fail(h.log, w, r, err)
		return
	}
	web.Respond(w, http.StatusCreated, sess)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "Login")
	defer span.End()

	var req credentialsReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Fail(h.log, w, r, apperror.New(apperror.CodeInvalid, "invalid request body"))
		return
	}

	sess, err := h.service.Login(ctx, req.Email, req.Password)
	if err != nil {
		web.Fail(h.log, w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, sess)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "Me")
	defer span.End()

	id, _ := auth.FromContext(ctx)
	u, err := h.service.Me(ctx, id.UserID)
	if err != nil {
		web.Fail(h.log, w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, map[string]any{"user": u})
}
