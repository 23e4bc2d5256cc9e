package handler

import (
	"log/slog"
	"net/http"

	"github.com/storefront/backend/internal/service"
)

const (
	msgContactSent   = "Message sent successfully!"
	msgContactFailed = "Failed to save message. Please try again."
)

// ContactHandler handles contact form submission.
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a ContactHandler with the given service.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// Submit handles POST /submit-contact. No field is required.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	msg, ok := decodeRecord(w, r)
	if !ok {
		return
	}
	slog.Info("received contact message", "record", msg)

	if err := h.contactService.Submit(r.Context(), msg); err != nil {
		slog.Error("failed to save contact message", "error", err)
		writeMessage(w, http.StatusInternalServerError, msgContactFailed)
		return
	}

	writeMessage(w, http.StatusOK, msgContactSent)
}
