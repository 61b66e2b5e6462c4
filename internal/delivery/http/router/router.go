package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/user/comic-reader/internal/delivery/http/handler"
	"github.com/user/comic-reader/internal/delivery/http/middleware"
	"github.com/user/comic-reader/pkg/metrics"
	"go.uber.org/zap"
)

// requestTimeout must exceed the upstream fetch timeout plus one retry.
const requestTimeout = 90 * time.Second

func New(h *handler.Handler, m *metrics.Metrics, gatherer prometheus.Gatherer, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Metrics(m))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(requestTimeout))

	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	r.Get("/health", h.HandleHealthCheck)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.HandleHealthCheck)
		r.Get("/albums", h.HandleListAlbums)
		r.Get("/album/{id}", h.HandleGetAlbumPhotos)
		r.Get("/album/{id}/photos", h.HandleGetAlbumPhotos)
		r.Get("/upstream/status", h.HandleUpstreamStatus)
	})

	return r
}
