// Package config loads service configuration from the environment.
package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the full service configuration.
type Config struct {
	Service  ServiceConfig
	Server   ServerConfig
	Database DatabaseConfig
	NATS     NATSConfig
}

// ServiceConfig identifies the running service.
type ServiceConfig struct {
	Name        string `env:"SERVICE_NAME" envDefault:"be-hr-progression"`
	Version     string `env:"SERVICE_VERSION" envDefault:"dev"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `env:"HTTP_PORT" envDefault:"8086"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
	IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// DatabaseConfig holds PostgreSQL pool settings.
type DatabaseConfig struct {
	Host        string        `env:"DB_HOST" envDefault:"localhost"`
	Port        int           `env:"DB_PORT" envDefault:"5432"`
	User        string        `env:"DB_USER" envDefault:"postgres"`
	Password    string        `env:"DB_PASSWORD" envDefault:""`
	Database    string        `env:"DB_NAME" envDefault:"hr_progression"`
	SSLMode     string        `env:"DB_SSLMODE" envDefault:"disable"`
	MaxConns    int32         `env:"DB_MAX_CONNS" envDefault:"10"`
	MinConns    int32         `env:"DB_MIN_CONNS" envDefault:"2"`
	MaxConnLife time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"30m"`
	MaxIdleTime time.Duration `env:"DB_MAX_CONN_IDLE" envDefault:"5m"`
}

// NATSConfig holds notification publisher settings. An empty URL disables
// publishing entirely.
type NATSConfig struct {
	URL           string `env:"NATS_URL" envDefault:""`
	SubjectPrefix string `env:"NATS_SUBJECT_PREFIX" envDefault:"notifications.hr"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
