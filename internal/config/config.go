// Package config loads run defaults from the environment, with an optional
// .env file for local use.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// LoggingConfig holds logging-related configuration.
type LoggingConfig struct {
	Level      string
	Pretty     bool
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// DefaultsConfig holds the conversion settings applied when a flag is not
// given on the command line.
type DefaultsConfig struct {
	PageSize    string
	Orientation string
	Quality     string
}

// ProofConfig holds defaults for rendering proof images from a PDF.
type ProofConfig struct {
	DPI     int
	Format  string
	Workers int
}

// Config is the top-level configuration.
type Config struct {
	Defaults DefaultsConfig
	Proof    ProofConfig
	Logging  LoggingConfig
}

// FromEnv loads configuration from the environment with sensible defaults.
// A .env file in the working directory is honored when present.
func FromEnv() Config {
	_ = godotenv.Load()

	return Config{
		Defaults: DefaultsConfig{
			PageSize:    getEnv("PLATEN_PAGE_SIZE", "a4"),
			Orientation: getEnv("PLATEN_ORIENTATION", "auto"),
			Quality:     getEnv("PLATEN_QUALITY", "high"),
		},
		Proof: ProofConfig{
			DPI:     parseInt(getEnv("PLATEN_PROOF_DPI", "150"), 150),
			Format:  getEnv("PLATEN_PROOF_FORMAT", "png"),
			Workers: parseInt(getEnv("PLATEN_WORKERS", "4"), 4),
		},
		Logging: LoggingConfig{
			Level:      getEnv("LOG_LEVEL", "warn"),
			Pretty:     parseBool(getEnv("LOG_PRETTY", "true")),
			File:       getEnv("LOG_FILE", ""),
			MaxSizeMB:  parseInt(getEnv("LOG_MAX_SIZE_MB", "100"), 100),
			MaxBackups: parseInt(getEnv("LOG_MAX_BACKUPS", "10"), 10),
			MaxAgeDays: parseInt(getEnv("LOG_MAX_AGE_DAYS", "30"), 30),
			Compress:   parseBool(getEnv("LOG_COMPRESS", "true")),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

func parseBool(s string) bool {
	v := strings.ToLower(strings.TrimSpace(s))
	return v == "1" || v == "true" || v == "yes" || v == "on"
}
