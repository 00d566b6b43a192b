// Package web holds the JSON response helpers shared by the HTTP handlers.
package web

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/pixelmart/storefront/pkg/apperror"
)

func Respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// Fail writes the taxonomy-mapped error body. Internal failures are logged
// with their cause; the client only ever sees the generic message.
func Fail(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	status := apperror.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	}
	Respond(w, status, map[string]string{"message": apperror.Message(err)})
}
