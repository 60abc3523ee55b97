package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"MiniCatalog/internal/catalog"
	"MiniCatalog/pkg/kit"
)

func main() {
	service := "catalog"

	cfg, err := kit.LoadConfig(nil)
	if err != nil {
		panic(err)
	}

	log := kit.NewLogger(service, cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	ctx := context.Background()

	store, closeStore, err := openStore(cfg)
	if err != nil {
		log.Fatal("open store failed", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}
	defer closeStore()

	if cfg.Seed {
		n, err := catalog.SeedIfEmpty(ctx, store, catalog.SeedProducts)
		if err != nil {
			log.Fatal("seed failed", zap.Error(err))
		}
		log.Info("store ready", zap.String("driver", cfg.StoreDriver), zap.Int("seeded", n))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	h := catalog.NewHandler(&catalog.Server{Store: store, Log: log}, catalog.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       reg,
		MetricsEnabled: true,
		MetricsToken:   cfg.MetricsToken,
	})

	if err := kit.RunHTTPServer(ctx, cfg.Addr(), h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

func openStore(cfg kit.Config) (catalog.Store, func(), error) {
	switch cfg.StoreDriver {
	case "", "memory":
		return catalog.NewStore(), func() {}, nil

	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, nil, errors.New("DATABASE_URL is required for the postgres store")
		}
		if err := catalog.Migrate(cfg.DatabaseURL); err != nil {
			return nil, nil, err
		}
		db, err := catalog.OpenPostgres(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return catalog.NewPostgresStore(db), func() { _ = db.Close() }, nil

	case "sqlite":
		db, err := catalog.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		s, err := catalog.NewGormStore(db)
		if err != nil {
			return nil, nil, err
		}
		closeDB := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return s, closeDB, nil
	}

	return nil, nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
}
