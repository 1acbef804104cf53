// Package httptransport assembles the public HTTP surface: middleware chain,
// domain handlers, and operational endpoints.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"kgov/internal/platform/metrics"
	"kgov/internal/platform/middleware"
)

// Registrar is anything that mounts routes onto the router. Both domain
// handlers implement it.
type Registrar interface {
	Register(r chi.Router)
}

const requestTimeout = 30 * time.Second

// NewRouter builds the full router. Handlers are mounted in order; the
// middleware chain applies to every API route, while /metrics and /healthz
// sit outside it.
func NewRouter(logger *slog.Logger, platformMetrics *metrics.Metrics, handlers ...Registrar) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(api chi.Router) {
		api.Use(middleware.Recovery(logger))
		api.Use(middleware.RequestID)
		api.Use(middleware.Logger(logger))
		api.Use(middleware.Timeout(requestTimeout))
		api.Use(middleware.ContentTypeJSON)
		api.Use(middleware.Latency(platformMetrics))

		for _, h := range handlers {
			h.Register(api)
		}
	})

	return r
}
