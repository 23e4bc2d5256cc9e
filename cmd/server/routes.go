package main

import (
	"net/http"
	"time"

	"github.com/storefront/backend/internal/config"
	"github.com/storefront/backend/internal/handler"
	"github.com/storefront/backend/internal/service"
)

const rateLimitPruneInterval = 5 * time.Minute

// newRouter wires the routes. done stops background work started here.
func newRouter(cfg *config.Config, st *stores, done <-chan struct{}) http.Handler {
	h := handler.New(cfg.CORSOrigin, st.contacts, st.orders)
	contactHandler := handler.NewContactHandler(service.NewContactService(st.contacts))
	orderHandler := handler.NewOrderHandler(service.NewOrderService(st.orders))
	staticHandler := handler.NewStaticHandler(cfg.SiteDir, cfg.ContactFile(), cfg.OrderFile(), cfg.BoltPath)

	// Rate limiting applies to form posts only, and only when configured.
	forms := func(next http.HandlerFunc) http.Handler { return next }
	if cfg.FormRateLimit > 0 {
		rl := handler.NewRateLimiter(cfg.FormRateLimit, cfg.TrustedProxy)
		go rl.Run(done, rateLimitPruneInterval)
		forms = func(next http.HandlerFunc) http.Handler { return rl.Middleware(next) }
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", h.Health)
	mux.Handle("POST /submit-contact", forms(contactHandler.Submit))
	mux.Handle("POST /place-order", forms(orderHandler.Place))
	mux.HandleFunc("GET /{$}", staticHandler.Index)
	mux.HandleFunc("GET /", staticHandler.Files)

	return handler.RequestLogger(handler.SecurityHeaders(h.CORS(mux)))
}
