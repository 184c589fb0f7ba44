// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds the settings shared by the rumble commands. Empty file paths
// select the embedded catalog and decks.
type Config struct {
	DecksFile   string
	CatalogFile string
	LogLevel    string
	LogFormat   string // "text" or "json"
	Seed        int64  // 0 seeds from the clock
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Load reads .env from the working directory if one exists, then applies
// RUMBLE_* environment variables over the defaults.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}
	return FromEnv(), nil
}

// FromEnv applies RUMBLE_* environment variables over the defaults.
func FromEnv() Config {
	cfg := Default()

	if val := os.Getenv("RUMBLE_DECKS_FILE"); val != "" {
		cfg.DecksFile = val
	}
	if val := os.Getenv("RUMBLE_CATALOG_FILE"); val != "" {
		cfg.CatalogFile = val
	}
	if val := os.Getenv("RUMBLE_LOG_LEVEL"); val != "" {
		cfg.LogLevel = strings.ToLower(val)
	}
	if val := os.Getenv("RUMBLE_LOG_FORMAT"); val != "" {
		cfg.LogFormat = strings.ToLower(val)
	}
	if val := getEnvInt64("RUMBLE_SEED"); val != 0 {
		cfg.Seed = val
	}
	return cfg
}

// SetupLogging configures logger's level and formatter from cfg.
func SetupLogging(logger *logrus.Logger, cfg Config) error {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger.SetLevel(level)

	switch cfg.LogFormat {
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return errors.New("unknown log format " + strconv.Quote(cfg.LogFormat))
	}
	return nil
}

func getEnvInt64(key string) int64 {
	val := os.Getenv(key)
	if val == "" {
		return 0
	}
	num, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0
	}
	return num
}
