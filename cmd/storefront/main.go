package main

import (
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"AquaKart/internal/cart"
	"AquaKart/internal/favorites"
	"AquaKart/internal/storefront"
	"AquaKart/pkg/config"
	"AquaKart/pkg/kit"
)

func main() {
	service := "storefront"
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		kit.NewLogger(service, "info").Fatal("load config", zap.Error(err))
	}

	log := kit.NewLogger(service, cfg.App.LogLevel)
	defer func() { _ = log.Sync() }()

	s := &storefront.Server{
		Cart:      cart.NewStore(),
		Favorites: favorites.NewStore(),
		Log:       log,
	}

	reg := prometheus.NewRegistry()
	h := storefront.NewHandler(s, storefront.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       reg,
		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsToken:   cfg.Metrics.Token,
	})

	if err := kit.RunHTTPServer(":"+cfg.App.PortOr("8083"), h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}
