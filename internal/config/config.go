package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

const (
	EnvDB       = "FLSTATS_DB"
	EnvLogLevel = "FLSTATS_LOG_LEVEL"
	EnvWorkers  = "FLSTATS_WORKERS"

	DefaultWorkers = 4
)

// Config stores the application configuration.
// It's populated from environment variables, optionally via a .env file.
type Config struct {
	DBPath   string
	LogLevel log.Level
	Workers  int
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		DBPath:   filepath.Join(userHome(), ".flstats", "stats.db"),
		LogLevel: log.InfoLevel,
		Workers:  DefaultWorkers,
	}
}

// Load reads .env (when present) and the environment. Invalid values are
// reported and replaced by their defaults; Load never fails.
func Load() Config {
	// For local use only; a missing .env is not an error.
	_ = godotenv.Load()
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from a lookup function such as os.LookupEnv.
func FromEnv(lookup func(string) (string, bool)) Config {
	cfg := Default()

	if v, ok := lookup(EnvDB); ok && strings.TrimSpace(v) != "" {
		cfg.DBPath = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvLogLevel); ok && strings.TrimSpace(v) != "" {
		if lvl, err := ParseLevel(v); err == nil {
			cfg.LogLevel = lvl
		} else {
			log.Warn("invalid log level, using default", "env", EnvLogLevel, "value", v)
		}
	}
	if v, ok := lookup(EnvWorkers); ok && strings.TrimSpace(v) != "" {
		if n, err := ParseWorkers(v); err == nil {
			cfg.Workers = n
		} else {
			log.Warn("invalid worker count, using default", "env", EnvWorkers, "value", v)
		}
	}
	return cfg
}

// ParseLevel accepts debug, info, warn and error in any case.
func ParseLevel(s string) (log.Level, error) {
	return log.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
}

// ParseWorkers accepts a positive integer.
func ParseWorkers(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, strconv.ErrRange
	}
	return n, nil
}

func userHome() string {
	h, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return h
}
