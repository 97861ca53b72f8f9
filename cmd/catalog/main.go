package main

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"AquaKart/internal/catalog"
	"AquaKart/pkg/config"
	"AquaKart/pkg/kit"
)

func main() {
	service := "catalog"
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		kit.NewLogger(service, "info").Fatal("load config", zap.Error(err))
	}

	log := kit.NewLogger(service, cfg.App.LogLevel)
	defer func() { _ = log.Sync() }()

	store := catalog.NewMemStore()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Catalog.FeedURL == "" {
		_ = store.ReplaceAll(ctx, catalog.DemoCatalog())
		log.Info("no feed configured, serving demo catalog")
	} else {
		refresher := &catalog.Refresher{
			Feed:     catalog.NewFeedClient(cfg.Catalog.FeedURL),
			Store:    store,
			Log:      log,
			Interval: cfg.Catalog.RefreshInterval,
		}
		go refresher.Run(ctx)
	}

	s := &catalog.Server{Store: store, Log: log}

	reg := prometheus.NewRegistry()
	h := catalog.NewHandler(s, catalog.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       reg,
		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsToken:   cfg.Metrics.Token,
	})

	if err := kit.RunHTTPServer(":"+cfg.App.PortOr("8082"), h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}
