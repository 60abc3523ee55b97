package main

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"MiniCatalog/internal/web"
	"MiniCatalog/pkg/kit"
)

func main() {
	service := "web"

	cfg, err := kit.LoadConfig(map[string]any{"PORT": "8080"})
	if err != nil {
		panic(err)
	}

	log := kit.NewLogger(service, cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())

	s := &web.Server{
		API: web.NewAPIClient(cfg.CatalogURL),
		Log: log,
	}

	h := web.NewHandler(s, web.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       reg,
		MetricsEnabled: true,
		MetricsToken:   cfg.MetricsToken,
	})

	log.Info("catalog api", zap.String("url", cfg.CatalogURL))
	if err := kit.RunHTTPServer(context.Background(), cfg.Addr(), h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}
