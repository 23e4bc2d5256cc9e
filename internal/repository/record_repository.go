package repository

import (
	"context"

	"github.com/storefront/backend/internal/model"
)

// RecordRepository is the append-only persistence interface for one kind of
// form record. Callers never read records back.
type RecordRepository interface {
	// Append persists rec after every record appended before it.
	Append(ctx context.Context, rec *model.Record) error

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}
