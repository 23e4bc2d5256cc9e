package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/storefront/backend/internal/model"
	"github.com/storefront/backend/internal/repository"
)

const orderIDPrefix = "ORD"

// orderServiceImpl is the production implementation of OrderService.
type orderServiceImpl struct {
	repo repository.RecordRepository
	now  func() time.Time
	intN func(n int) int
}

// NewOrderService creates an OrderService backed by the given repository.
func NewOrderService(repo repository.RecordRepository) OrderService {
	return &orderServiceImpl{repo: repo, now: time.Now, intN: rand.IntN}
}

// Place stamps the order and appends it. Ids are not checked for uniqueness;
// two orders in the same millisecond collide one time in a thousand.
func (s *orderServiceImpl) Place(ctx context.Context, order *model.Record) (string, error) {
	now := s.now()
	orderID := NewOrderID(now, s.intN(1000))

	order.SetString(model.FieldOrderID, orderID)
	order.SetString(model.FieldTimestamp, model.FormatTimestamp(now))
	if err := s.repo.Append(ctx, order); err != nil {
		return "", fmt.Errorf("save order %s: %w", orderID, err)
	}
	return orderID, nil
}

// NewOrderID formats ORD-<epoch millis>-<suffix>.
func NewOrderID(t time.Time, suffix int) string {
	return fmt.Sprintf("%s-%d-%d", orderIDPrefix, t.UnixMilli(), suffix)
}
