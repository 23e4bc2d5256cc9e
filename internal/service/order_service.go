package service

import (
	"context"

	"github.com/storefront/backend/internal/model"
)

// OrderService defines the business logic for order placement.
type OrderService interface {
	// Place assigns an order id and timestamp to order, appends it to the
	// order store and returns the id.
	Place(ctx context.Context, order *model.Record) (string, error)
}
