// Package config содержит логику чтения конфигурации сервиса химчистки.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const defaultRunAddress = "localhost:8080"

// Config содержит параметры конфигурации сервиса.
type Config struct {
	RunAddress             string        `env:"RUN_ADDRESS"`
	DatabaseURI            string        `env:"DATABASE_URI"`
	CustomerServiceAddress string        `env:"CUSTOMER_SERVICE_ADDRESS"`
	AuthSecret             string        `env:"AUTH_SECRET"`
	StatsRefreshInterval   time.Duration `env:"STATS_REFRESH_INTERVAL"`
	StatsRecomputeTimeout  time.Duration `env:"STATS_RECOMPUTE_TIMEOUT" envDefault:"5s"`
	AdminEmail             string        `env:"ADMIN_EMAIL"`
	AdminPassword          string        `env:"ADMIN_PASSWORD"`
	AdminPhone             string        `env:"ADMIN_PHONE"`
	CORSAllowedOrigins     []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

// Parse собирает конфигурацию в три слоя: значения флагов, затем файл .env
// (если он есть), затем переменные окружения. Заданная переменная окружения
// перекрывает флаг.
func Parse() (*Config, error) {
	cfg := &Config{}

	flag.StringVar(&cfg.RunAddress, "a", defaultRunAddress, "address and port for HTTP server")
	flag.StringVar(&cfg.DatabaseURI, "d", "", "database URI")
	flag.StringVar(&cfg.CustomerServiceAddress, "c", "", "customer directory address")
	flag.StringVar(&cfg.AuthSecret, "s", "", "token signing secret")
	flag.DurationVar(&cfg.StatsRefreshInterval, "r", time.Minute, "entry stats refresh interval, 0 disables")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	// env.Parse трогает только поля, для которых задана переменная или envDefault.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.RunAddress == "" {
		cfg.RunAddress = defaultRunAddress
	}

	return cfg, nil
}
