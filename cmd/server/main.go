package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/storefront/backend/internal/config"
	"github.com/storefront/backend/internal/logging"
)

func main() {
	cfg, err := config.Load()
	logging.Setup()
	if err != nil {
		logging.Fatal("invalid configuration", "error", err)
	}

	st, err := openStores(context.Background(), cfg)
	if err != nil {
		logging.Fatal("failed to open stores", "backend", cfg.Backend, "error", err)
	}
	defer st.close()

	done := make(chan struct{})
	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      newRouter(cfg, st, done),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server running",
			"addr", server.Addr,
			"url", "http://localhost:"+cfg.Port,
			"backend", cfg.Backend,
			"site_dir", cfg.SiteDir,
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	close(done)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	slog.Info("server stopped")
}
