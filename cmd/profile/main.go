package main

import (
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"AquaKart/internal/profile"
	"AquaKart/pkg/config"
	"AquaKart/pkg/kit"
)

func main() {
	service := "profile"
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		kit.NewLogger(service, "info").Fatal("load config", zap.Error(err))
	}

	log := kit.NewLogger(service, cfg.App.LogLevel)
	defer func() { _ = log.Sync() }()

	var store profile.Store
	if cfg.DB.DSN != "" {
		db, err := sql.Open("pgx", cfg.DB.DSN)
		if err != nil {
			log.Fatal("open db", zap.Error(err))
		}
		defer func() { _ = db.Close() }()

		store = profile.NewPostgresStore(db)
		log.Info("using postgres profile store")
	} else {
		store = profile.NewMemStore()
	}

	s := profile.NewServer(store, log)

	reg := prometheus.NewRegistry()
	h := profile.NewHandler(s, profile.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       reg,
		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsToken:   cfg.Metrics.Token,
	})

	if err := kit.RunHTTPServer(":"+cfg.App.PortOr("8084"), h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}
