package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/storefront/backend/internal/model"
)

// PgRecordRepository is the PostgreSQL implementation of RecordRepository.
// All kinds share the form_records table; the body column holds the record
// as jsonb.
type PgRecordRepository struct {
	pool *pgxpool.Pool
	kind model.Kind
}

// NewPgRecordRepository creates a PgRecordRepository for one record kind.
func NewPgRecordRepository(pool *pgxpool.Pool, kind model.Kind) *PgRecordRepository {
	return &PgRecordRepository{pool: pool, kind: kind}
}

// Ensure PgRecordRepository implements RecordRepository at compile time.
var _ RecordRepository = (*PgRecordRepository)(nil)

// Append inserts rec as a new form_records row.
func (r *PgRecordRepository) Append(ctx context.Context, rec *model.Record) error {
	body, err := rec.MarshalJSON()
	if err != nil {
		return fmt.Errorf("pg store: encode record: %w", err)
	}
	if _, err := r.pool.Exec(ctx,
		`INSERT INTO form_records (kind, body) VALUES ($1, $2)`,
		string(r.kind), body,
	); err != nil {
		return fmt.Errorf("pg store: insert %s record: %w", r.kind, err)
	}
	return nil
}

// Ping pings the connection pool.
func (r *PgRecordRepository) Ping(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}
