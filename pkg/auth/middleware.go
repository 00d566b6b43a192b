package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/pixelmart/storefront/pkg/apperror"
	"github.com/pixelmart/storefront/pkg/web"
)

type ctxKey struct{}

func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}

// Middleware rejects requests without a valid bearer token.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			web.Respond(w, http.StatusUnauthorized, map[string]string{"message": "missing bearer token"})
			return
		}
		id, err := m.Verify(token)
		if err != nil {
			web.Respond(w, apperror.HTTPStatus(err), map[string]string{"message": apperror.Message(err)})
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

// RequireAdmin gates admin-only routes. It must run after Middleware.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := FromContext(r.Context())
		if !ok || !id.Admin {
			web.Respond(w, http.StatusForbidden, map[string]string{"message": "admin access required"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
