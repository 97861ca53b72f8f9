package main

import (
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"AquaKart/internal/gateway"
	"AquaKart/pkg/config"
	"AquaKart/pkg/kit"
)

func main() {
	service := "gateway"
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		kit.NewLogger(service, "info").Fatal("load config", zap.Error(err))
	}

	log := kit.NewLogger(service, cfg.App.LogLevel)
	defer func() { _ = log.Sync() }()

	if !cfg.App.IsDev() && len(cfg.JWT.Secret) < 32 {
		log.Fatal("AQUAKART_JWT_SECRET must be at least 32 chars outside dev")
	}

	deps := gateway.Deps{
		JWTSecret:     cfg.JWT.Secret,
		AuthURL:       cfg.Gateway.AuthURL,
		CatalogURL:    cfg.Gateway.CatalogURL,
		StorefrontURL: cfg.Gateway.StorefrontURL,
		ProfileURL:    cfg.Gateway.ProfileURL,
	}

	reg := prometheus.NewRegistry()
	h, err := gateway.NewHandler(deps, gateway.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       reg,
		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsToken:   cfg.Metrics.Token,
	})
	if err != nil {
		log.Fatal("init gateway handler failed", zap.Error(err))
	}

	if err := kit.RunHTTPServer(":"+cfg.App.PortOr("8080"), h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}
