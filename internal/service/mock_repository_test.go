package service

import (
	"context"

	"github.com/storefront/backend/internal/model"
)

// ---------------------------------------------------------------------------
// mockRecordRepository - in-memory stub for testing
// ---------------------------------------------------------------------------

type mockRecordRepository struct {
	appendFunc func(ctx context.Context, rec *model.Record) error
	appended   []*model.Record
}

func (m *mockRecordRepository) Append(ctx context.Context, rec *model.Record) error {
	if m.appendFunc != nil {
		if err := m.appendFunc(ctx, rec); err != nil {
			return err
		}
	}
	m.appended = append(m.appended, rec)
	return nil
}

func (m *mockRecordRepository) Ping(ctx context.Context) error {
	return nil
}
