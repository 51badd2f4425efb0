package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"

	"github.com/preston-bernstein/winprob-viewer/internal/http/handlers"
	"github.com/preston-bernstein/winprob-viewer/internal/http/middleware"
	"github.com/preston-bernstein/winprob-viewer/internal/metrics"
)

// NewRouter registers the viewer routes on a chi router.
func NewRouter(handler *handlers.Handler, logger *slog.Logger, recorder *metrics.Recorder, corsOrigins []string) nethttp.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logging(logger, recorder))
	if len(corsOrigins) > 0 {
		r.Use(cors.New(cors.Options{
			AllowedOrigins: corsOrigins,
			AllowedMethods: []string{nethttp.MethodGet, nethttp.MethodPost, nethttp.MethodDelete},
			AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
		}).Handler)
	}

	r.Get("/health", handler.Health)
	r.Get("/ready", handler.Ready)
	r.Get("/view", handler.View)
	r.Get("/stream", handler.Stream)

	r.Route("/events", func(r chi.Router) {
		r.Post("/date", handler.SelectDate)
		r.Post("/page", handler.PageDate)
		r.Post("/game", handler.SelectGame)
		r.Post("/refresh", handler.Refresh)
		r.Post("/hover", handler.Hover)
		r.Delete("/hover", handler.Unhover)
	})
	return r
}
