package service

import (
	"context"
	"fmt"
	"time"

	"github.com/storefront/backend/internal/model"
	"github.com/storefront/backend/internal/repository"
)

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	repo repository.RecordRepository
	now  func() time.Time
}

// NewContactService creates a ContactService backed by the given repository.
func NewContactService(repo repository.RecordRepository) ContactService {
	return &contactServiceImpl{repo: repo, now: time.Now}
}

// Submit sets the timestamp field and appends the message.
func (s *contactServiceImpl) Submit(ctx context.Context, msg *model.Record) error {
	msg.SetString(model.FieldTimestamp, model.FormatTimestamp(s.now()))
	if err := s.repo.Append(ctx, msg); err != nil {
		return fmt.Errorf("save contact message: %w", err)
	}
	return nil
}
