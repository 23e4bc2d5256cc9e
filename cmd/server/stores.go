package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/storefront/backend/internal/config"
	"github.com/storefront/backend/internal/model"
	"github.com/storefront/backend/internal/repository"
)

// stores holds the two form stores for the configured backend.
type stores struct {
	contacts repository.RecordRepository
	orders   repository.RecordRepository
	close    func()
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	switch cfg.Backend {
	case config.BackendPostgres:
		pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		slog.Info("connected to database")
		return &stores{
			contacts: repository.NewPgRecordRepository(pool, model.KindContact),
			orders:   repository.NewPgRecordRepository(pool, model.KindOrder),
			close:    pool.Close,
		}, nil

	case config.BackendBolt:
		db, err := repository.OpenBolt(cfg.BoltPath)
		if err != nil {
			return nil, err
		}
		contacts, err := repository.NewBoltRecordRepository(db, model.KindContact)
		if err != nil {
			db.Close()
			return nil, err
		}
		orders, err := repository.NewBoltRecordRepository(db, model.KindOrder)
		if err != nil {
			db.Close()
			return nil, err
		}
		slog.Info("opened bolt database", "path", cfg.BoltPath)
		return &stores{
			contacts: contacts,
			orders:   orders,
			close: func() {
				if err := db.Close(); err != nil {
					slog.Warn("failed to close bolt database", "error", err)
				}
			},
		}, nil

	default:
		return &stores{
			contacts: repository.NewFileRecordRepository(cfg.ContactFile()),
			orders:   repository.NewFileRecordRepository(cfg.OrderFile()),
			close:    func() {},
		}, nil
	}
}
