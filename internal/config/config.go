package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Log output formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

const (
	DefaultEndpoint  = "https://api.weather.gov/alerts/active"
	DefaultUserAgent = "state-alerts/1.0 (github.com/Zachdehooge/state-alerts)"
)

// Config holds all settings, populated from environment variables.
type Config struct {
	Endpoint     string
	UserAgent    string
	FetchTimeout time.Duration

	HTTPAddr        string
	ShutdownTimeout time.Duration
	RateLimitRPS    int
	RateLimitBurst  int

	LogLevel  logrus.Level
	LogFormat string
}

// Load reads an optional .env file and then the environment, applying
// defaults where unset.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	fetchTimeout, err := envDuration("FETCH_TIMEOUT", 0)
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := envDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	rps, err := envPositiveInt("RATE_LIMIT_RPS", 2)
	if err != nil {
		return nil, err
	}
	burst, err := envPositiveInt("RATE_LIMIT_BURST", 5)
	if err != nil {
		return nil, err
	}

	level, err := logrus.ParseLevel(envOrDefault("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	format := envOrDefault("LOG_FORMAT", LogFormatText)
	if format != LogFormatText && format != LogFormatJSON {
		return nil, fmt.Errorf("invalid LOG_FORMAT %q", format)
	}

	return &Config{
		Endpoint:        envOrDefault("ALERTS_ENDPOINT", DefaultEndpoint),
		UserAgent:       envOrDefault("ALERTS_USER_AGENT", DefaultUserAgent),
		FetchTimeout:    fetchTimeout,
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		ShutdownTimeout: shutdownTimeout,
		RateLimitRPS:    rps,
		RateLimitBurst:  burst,
		LogLevel:        level,
		LogFormat:       format,
	}, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid %s %q", key, s)
	}
	return d, nil
}

func envPositiveInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s %q", key, s)
	}
	return n, nil
}
