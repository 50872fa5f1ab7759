// Package config loads the relay server's runtime configuration, following
// the env-or-default shape of freeeve-polite-betrayal's internal/config,
// scoped down to what a room-based relay actually needs — no database URL,
// JWT secret, or OAuth client, since accounts and persistence beyond a
// match-history log are out of scope.
package config

import (
	"os"
	"strconv"
)

// Config holds the server's runtime configuration.
type Config struct {
	// Port is the TCP listen port. Spec §6: single optional positional CLI
	// argument, default 9999.
	Port int

	MaxClients int
	MaxRooms   int

	// DBPath is the sqlite match-history log path. Empty disables
	// persistence.
	DBPath string

	LogLevel string
}

// Load builds a Config from environment variables and the given positional
// port argument (0 to use the default). Environment variables let the
// container/ops layer override without touching the CLI invocation, the
// same envOrDefault pattern freeeve-polite-betrayal uses.
func Load(positionalPort int) *Config {
	cfg := &Config{
		Port:       positionalPort,
		MaxClients: envInt("GOMOKU_MAX_CLIENTS", 20),
		MaxRooms:   envInt("GOMOKU_MAX_ROOMS", 10),
		DBPath:     "data/games.db",
		LogLevel:   envOrDefault("LOG_LEVEL", "info"),
	}
	// An explicitly empty GOMOKU_DB_PATH disables persistence.
	if v, ok := os.LookupEnv("GOMOKU_DB_PATH"); ok {
		cfg.DBPath = v
	}
	if cfg.Port == 0 {
		cfg.Port = envInt("GOMOKU_PORT", 9999)
	}
	return cfg
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
