// Package config provides hierarchical configuration loading for lexgrid.
// Precedence: defaults < YAML file < environment variables.
package config

import "time"

// Config holds all runtime configuration for the lexgrid orchestrator.
type Config struct {
	Server  Server  `yaml:"server"`
	NATS    NATS    `yaml:"nats"`
	Backend Backend `yaml:"backend"`
	Cache   Cache   `yaml:"cache"`
	Logging Logging `yaml:"logging"`
	Breaker Breaker `yaml:"breaker"`
	Otel    Otel    `yaml:"otel"`
}

// Server holds HTTP server configuration.
type Server struct {
	Port       string `yaml:"port"`
	CORSOrigin string `yaml:"cors_origin"`
}

// NATS holds event bus configuration.
type NATS struct {
	URL string `yaml:"url"`
}

// Backend holds analysis backend configuration. ServiceKey is the shared
// secret sent on every outbound call; Timeout is the per-call ceiling.
type Backend struct {
	URL        string        `yaml:"url"`
	ServiceKey string        `yaml:"service_key"`
	Timeout    time.Duration `yaml:"timeout"`
}

// Cache holds the orchestration result cache configuration.
type Cache struct {
	MaxSizeMB int64         `yaml:"max_size_mb"`
	ResultTTL time.Duration `yaml:"result_ttl"`
}

// Logging holds structured logging configuration.
type Logging struct {
	Level   string `yaml:"level"`
	Service string `yaml:"service"`
}

// Breaker holds circuit breaker configuration for backend calls.
type Breaker struct {
	MaxFailures int           `yaml:"max_failures"`
	Timeout     time.Duration `yaml:"timeout"`
}

// Otel holds OpenTelemetry export configuration. When disabled, no-op
// providers are installed.
type Otel struct {
	Enabled  bool   `yaml:"enabled"`
	Endpoint string `yaml:"endpoint"`
}

// Defaults returns a Config with sensible default values for local development.
func Defaults() Config {
	return Config{
		Server: Server{
			Port:       "8081",
			CORSOrigin: "http://localhost:3000",
		},
		NATS: NATS{
			URL: "nats://localhost:4222",
		},
		Backend: Backend{
			URL:     "http://localhost:8000",
			Timeout: 2 * time.Minute,
		},
		Cache: Cache{
			MaxSizeMB: 64,
			ResultTTL: time.Hour,
		},
		Logging: Logging{
			Level:   "info",
			Service: "lexgrid-orchestrator",
		},
		Breaker: Breaker{
			MaxFailures: 5,
			Timeout:     30 * time.Second,
		},
		Otel: Otel{
			Enabled:  false,
			Endpoint: "localhost:4317",
		},
	}
}
