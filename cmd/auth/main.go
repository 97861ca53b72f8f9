package main

import (
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"AquaKart/internal/auth"
	"AquaKart/pkg/config"
	"AquaKart/pkg/kit"
)

func main() {
	service := "auth"
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		kit.NewLogger(service, "info").Fatal("load config", zap.Error(err))
	}

	log := kit.NewLogger(service, cfg.App.LogLevel)
	defer func() { _ = log.Sync() }()

	var codes auth.CodeStore
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		codes = auth.NewRedisCodeStore(rdb)
		log.Info("using redis code store", zap.String("addr", cfg.Redis.Addr))
	} else {
		codes = auth.NewMemCodeStore()
	}

	otp := &auth.OTP{
		Codes:       codes,
		Users:       auth.NewMemUserStore(),
		Sender:      auth.LogSender{Log: log},
		Log:         log,
		TTL:         cfg.OTP.TTL,
		MaxAttempts: cfg.OTP.MaxAttempts,
	}

	s := &auth.Server{
		Log:      log,
		OTP:      otp,
		JWT:      auth.NewTokenMaker(cfg.JWT.Secret),
		TokenTTL: cfg.JWT.TTL,
		DevMode:  cfg.App.IsDev(),
	}

	reg := prometheus.NewRegistry()
	h := auth.NewHandler(s, auth.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       reg,
		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsToken:   cfg.Metrics.Token,
	})

	if err := kit.RunHTTPServer(":"+cfg.App.PortOr("8081"), h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}
