package handler

import (
	"context"
	"net/http"
)

// Pinger is implemented by every store the health check inspects.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	stores     []Pinger
	corsOrigin string
}

func New(corsOrigin string, stores ...Pinger) *Handler {
	return &Handler{stores: stores, corsOrigin: corsOrigin}
}

// CORS allows cross-origin form posts from corsOrigin. It is a pass-through
// when no origin is configured, since the site is normally same-origin.
func (h *Handler) CORS(next http.Handler) http.Handler {
	if h.corsOrigin == "" {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", h.corsOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Add("Vary", "Origin")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
