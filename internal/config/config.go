// Package config loads server configuration from the environment, with
// optional .env support for local development.
package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	DefaultPort          = "8080"
	DefaultLogLevel      = "info"
	DefaultCarrierPrefix = "SW"
	// DefaultLatency stands in for the network round trip of the
	// simulated search and payment boundaries.
	DefaultLatency = 2 * time.Second
)

// Config holds everything the server needs at startup.
type Config struct {
	Port          string
	LogLevel      logrus.Level
	CarrierPrefix string
	Latency       time.Duration
	// DatabaseURL switches the catalog to the Postgres provider when
	// set; empty means the in-memory demo inventory.
	DatabaseURL string
	// UserSlotPath backs the current-user slot with a file when set.
	UserSlotPath string
}

// Load reads the environment. A missing .env file is fine.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Port:          envOr("API_PORT", DefaultPort),
		CarrierPrefix: envOr("CARRIER_PREFIX", DefaultCarrierPrefix),
		Latency:       DefaultLatency,
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		UserSlotPath:  os.Getenv("USER_SLOT_PATH"),
	}

	level, err := logrus.ParseLevel(envOr("LOG_LEVEL", DefaultLogLevel))
	if err != nil {
		level = logrus.InfoLevel
	}
	cfg.LogLevel = level

	if raw := os.Getenv("SIMULATED_LATENCY"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			cfg.Latency = d
		}
	}

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
