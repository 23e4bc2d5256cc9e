package service

import (
	"context"

	"github.com/storefront/backend/internal/model"
)

// ContactService defines the business logic for contact form submissions.
type ContactService interface {
	// Submit stamps msg with the current time and appends it to the message
	// store. msg carries its server-assigned fields when Submit returns.
	Submit(ctx context.Context, msg *model.Record) error
}
