package http

import (
	"net/http"
	"time"

	"github.com/dhavalpatel0212-spec/Mithai/internal/catalog"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

type RouterConfig struct {
	Catalog            catalog.Reader
	Sessions           SessionStore
	Logger             *zap.Logger
	RequestTimeout     time.Duration
	MaxRequestBodySize int64
	SecureCookies      bool
}

// NewRouter wires the storefront API.
func NewRouter(cfg RouterConfig) http.Handler {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}

	menuHandler := NewMenuHandler(cfg.Catalog)
	cartHandler := NewCartHandler(cfg.Catalog, cfg.Sessions, cfg.RequestTimeout)
	checkoutHandler := NewCheckoutHandler(cfg.Sessions, cfg.Logger)

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(RequestIDMiddleware)
	r.Use(RequestLogger(cfg.Logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	if cfg.MaxRequestBodySize > 0 {
		r.Use(maxBodySize(cfg.MaxRequestBodySize))
	}

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/menu", func(r chi.Router) {
			r.Get("/", menuHandler.List)
			r.Get("/{item_id}", menuHandler.Get)
		})

		r.Group(func(r chi.Router) {
			r.Use(SessionMiddleware(cfg.SecureCookies))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cartHandler.GetCart)
				r.Delete("/", cartHandler.ClearCart)
				r.Post("/items", cartHandler.AddItem)
				r.Put("/items/{line_id}", cartHandler.UpdateQuantity)
				r.Patch("/items/{line_id}", cartHandler.Customize)
				r.Delete("/items/{line_id}", cartHandler.RemoveItem)
			})

			r.Route("/checkout", func(r chi.Router) {
				r.Get("/", checkoutHandler.Status)
				r.Post("/", checkoutHandler.Submit)
			})
		})
	})

	return otelhttp.NewHandler(r, "mithai-http")
}

func maxBodySize(n int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, n)
			next.ServeHTTP(w, r)
		})
	}
}
