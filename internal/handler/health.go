package handler

import (
	"log/slog"
	"net/http"
)

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Health handles GET /healthz by pinging every configured store.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	for _, s := range h.stores {
		if err := s.Ping(r.Context()); err != nil {
			slog.Warn("health check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, healthResponse{
				Status:  "unhealthy",
				Message: err.Error(),
			})
			return
		}
	}

	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}
