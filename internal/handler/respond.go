package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// messageResponse is the body of every form endpoint response.
type messageResponse struct {
	Message string `json:"message"`
	OrderID string `json:"orderId,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("failed to write response", "error", err)
	}
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}
