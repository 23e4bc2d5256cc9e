package handler

import (
	"log/slog"
	"net/http"

	"github.com/storefront/backend/internal/service"
)

const (
	msgOrderPlaced = "Order placed successfully!"
	msgOrderFailed = "Failed to place order. Please try again."
)

// OrderHandler handles order placement.
type OrderHandler struct {
	orderService service.OrderService
}

// NewOrderHandler creates an OrderHandler with the given service.
func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Place handles POST /place-order and echoes the generated order id.
func (h *OrderHandler) Place(w http.ResponseWriter, r *http.Request) {
	order, ok := decodeRecord(w, r)
	if !ok {
		return
	}
	slog.Info("received order", "record", order)

	orderID, err := h.orderService.Place(r.Context(), order)
	if err != nil {
		slog.Error("failed to save order", "error", err)
		writeMessage(w, http.StatusInternalServerError, msgOrderFailed)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: msgOrderPlaced, OrderID: orderID})
}
