package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"MiniCatalog/pkg/kit"
)

type HTTPDeps struct {
	Log      *zap.Logger
	Service  string
	Registry *prometheus.Registry

	MetricsEnabled bool
	MetricsToken   string
}

func NewHandler(s *Server, deps HTTPDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(kit.Recoverer)
	r.Use(kit.Logging(deps.Log, "/healthz", "/readyz", "/metrics"))

	if deps.Registry != nil {
		metrics := kit.NewMetrics(deps.Registry, deps.Service)
		r.Use(metrics.Middleware(kit.ChiRoutePatternOrPath))
		if deps.MetricsEnabled {
			r.Handle("/metrics", metrics.Handler(deps.MetricsToken))
		}
	}

	r.Mount("/", s.Routes())
	return r
}
