// Package config reads the service configuration from the environment, optionally seeded from
// a .env file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/aouyang1/go-evforecaster/forecast"
	"github.com/joho/godotenv"
)

const (
	DefaultPort       = "8080"
	DefaultDataPath   = "preprocessed_ev_data.csv"
	DefaultMaxCompare = 3
)

var (
	ErrNoModelSource   = errors.New("one of EV_MODEL_PATH or EV_MODEL_URL must be set")
	ErrInvalidNumber   = errors.New("must be a positive integer")
	ErrInvalidLogLevel = errors.New("unknown log level")
	ErrNoDataPath      = errors.New("EV_DATA_PATH must be set")
)

// Config holds the service configuration
type Config struct {
	Port      string
	DataPath  string
	DataSheet string

	// ModelURL points at a remote predictor and takes precedence over ModelPath
	ModelPath string
	ModelURL  string

	Horizon    int
	MaxCompare int
	LogLevel   slog.Level
}

// Load reads the configuration from the environment after loading any of the given env files.
// Without files a .env in the working directory is tried. A missing env file is not an error.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		slog.Debug("env file not loaded", "files", envFiles, "error", err.Error())
	}

	horizon, err := getEnvInt("EV_FORECAST_HORIZON", forecast.DefaultHorizon)
	if err != nil {
		return nil, err
	}
	maxCompare, err := getEnvInt("EV_MAX_COMPARE", DefaultMaxCompare)
	if err != nil {
		return nil, err
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL %q, %w", os.Getenv("LOG_LEVEL"), ErrInvalidLogLevel)
	}

	cfg := &Config{
		Port:       getEnv("PORT", DefaultPort),
		DataPath:   getEnv("EV_DATA_PATH", DefaultDataPath),
		DataSheet:  getEnv("EV_DATA_SHEET", ""),
		ModelPath:  getEnv("EV_MODEL_PATH", ""),
		ModelURL:   getEnv("EV_MODEL_URL", ""),
		Horizon:    horizon,
		MaxCompare: maxCompare,
		LogLevel:   level,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that a model source is configured and every number is positive
func (c *Config) Validate() error {
	if c.DataPath == "" {
		return ErrNoDataPath
	}
	if c.ModelPath == "" && c.ModelURL == "" {
		return ErrNoModelSource
	}
	if c.Horizon < 1 {
		return fmt.Errorf("EV_FORECAST_HORIZON got %d, %w", c.Horizon, ErrInvalidNumber)
	}
	if c.MaxCompare < 1 {
		return fmt.Errorf("EV_MAX_COMPARE got %d, %w", c.MaxCompare, ErrInvalidNumber)
	}
	return nil
}

// Addr returns the listen address for the configured port
func (c *Config) Addr() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(value)
	if err != nil || v < 1 {
		return 0, fmt.Errorf("%s got %q, %w", key, value, ErrInvalidNumber)
	}
	return v, nil
}
