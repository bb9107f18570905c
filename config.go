package main

import (
	"os"
	"strings"
)

// config is read from the environment (after .env is loaded).
type config struct {
	storeDriver    string // "postgres" or "sqlite"
	dbURL          string
	sqlitePath     string
	listenAddr     string
	corsOrigins    []string
	expirySchedule string // cron spec for the plan expiry sweep; empty disables it
	logUseCases    bool
}

func loadConfig() config {
	cfg := config{
		storeDriver:    envOr("STORE_DRIVER", "postgres"),
		dbURL:          os.Getenv("DB_URL"),
		sqlitePath:     envOr("SQLITE_PATH", "data/fitplan.db"),
		listenAddr:     envOr("LISTEN_ADDR", "localhost:3000"),
		expirySchedule: envOr("PLAN_EXPIRY_SCHEDULE", "@daily"),
		logUseCases:    os.Getenv("LOG_USE_CASES") == "true",
	}
	for _, o := range strings.Split(envOr("CORS_ALLOWED_ORIGINS", "http://localhost:5173"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.corsOrigins = append(cfg.corsOrigins, o)
		}
	}
	if cfg.expirySchedule == "off" {
		cfg.expirySchedule = ""
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
