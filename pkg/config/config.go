package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config aggregates every knob the AquaKart services read from the
// environment. Each binary loads the full struct and picks what it needs.
type Config struct {
	App     AppConfig
	JWT     JWTConfig
	Catalog CatalogConfig
	Redis   RedisConfig
	DB      DBConfig
	Gateway GatewayConfig
	Metrics MetricsConfig
	OTP     OTPConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env      string `envconfig:"AQUAKART_APP_ENV" default:"dev"`
	Port     string `envconfig:"AQUAKART_APP_PORT"`
	LogLevel string `envconfig:"AQUAKART_LOG_LEVEL" default:"info"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, "dev")
}

// PortOr lets each binary fall back to its conventional port when
// AQUAKART_APP_PORT is unset.
func (a AppConfig) PortOr(def string) string {
	if a.Port != "" {
		return a.Port
	}
	return def
}

type JWTConfig struct {
	Secret string        `envconfig:"AQUAKART_JWT_SECRET" default:"dev-secret"`
	TTL    time.Duration `envconfig:"AQUAKART_JWT_TTL" default:"15m"`
}

type CatalogConfig struct {
	// FeedURL points at the vendor product feed. Empty means serve the
	// built-in demo catalog.
	FeedURL         string        `envconfig:"AQUAKART_CATALOG_FEED_URL"`
	RefreshInterval time.Duration `envconfig:"AQUAKART_CATALOG_REFRESH_INTERVAL" default:"5m"`
}

type RedisConfig struct {
	// Addr selects the redis-backed code store when set; empty keeps
	// one-time codes in process memory.
	Addr     string `envconfig:"AQUAKART_REDIS_ADDR"`
	Password string `envconfig:"AQUAKART_REDIS_PASSWORD"`
	DB       int    `envconfig:"AQUAKART_REDIS_DB" default:"0"`
}

type DBConfig struct {
	// DSN selects the Postgres profile store when set; empty keeps
	// profiles in process memory.
	DSN string `envconfig:"AQUAKART_DB_DSN"`
}

type GatewayConfig struct {
	AuthURL       string `envconfig:"AQUAKART_AUTH_URL" default:"http://auth:8081"`
	CatalogURL    string `envconfig:"AQUAKART_CATALOG_URL" default:"http://catalog:8082"`
	StorefrontURL string `envconfig:"AQUAKART_STOREFRONT_URL" default:"http://storefront:8083"`
	ProfileURL    string `envconfig:"AQUAKART_PROFILE_URL" default:"http://profile:8084"`
}

type MetricsConfig struct {
	Enabled bool   `envconfig:"AQUAKART_METRICS_ENABLED" default:"false"`
	Token   string `envconfig:"AQUAKART_METRICS_TOKEN"`
}

type OTPConfig struct {
	TTL         time.Duration `envconfig:"AQUAKART_OTP_TTL" default:"5m"`
	MaxAttempts int           `envconfig:"AQUAKART_OTP_MAX_ATTEMPTS" default:"5"`
}
