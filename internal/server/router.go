package server

import (
	"net/http"

	"github.com/draftsmith-ai/draftsmith/internal/api"
	"github.com/draftsmith-ai/draftsmith/internal/api/handlers"
	"github.com/draftsmith-ai/draftsmith/internal/api/middleware"
	"github.com/go-chi/chi/v5"
)

type RouterConfig struct {
	// APIToken guards everything except /health. Empty disables auth,
	// which is the expected mode for a loopback-only daemon.
	APIToken       string
	IngestHandler  *handlers.IngestHandler
	ContextHandler *handlers.ContextHandler
	StatusHandler  *handlers.StatusHandler
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	const maxBodyBytes int64 = 5 * 1024 * 1024

	r.Use(middleware.RequestID)
	r.Use(middleware.SentryMiddleware)
	r.Use(middleware.AccessLog)
	r.Use(middleware.MaxBodyBytes(maxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		api.Success(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.BearerAuth(cfg.APIToken))

		r.Post("/ingest", cfg.IngestHandler.Ingest)
		r.Post("/context", cfg.ContextHandler.GetContext)
		r.Post("/compose", cfg.ContextHandler.Compose)
		r.Get("/status", cfg.StatusHandler.Status)
		r.Get("/items", cfg.StatusHandler.ListItems)
	})

	return r
}
