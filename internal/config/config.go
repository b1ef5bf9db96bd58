package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// defaultEndpoint is the NOAA NCEI geomagnetic field calculator. If this
// changes, the response decoding convention (data row second-to-last) will
// likely need revisiting.
const defaultEndpoint = "https://www.ngdc.noaa.gov/geomag-web/calculators/calculateDeclination"

// Config holds all tool settings. Environment variables supply defaults;
// command-line flags override them at the entry point.
type Config struct {
	// Infile and Outfile are file paths; empty means stdin/stdout. Set by
	// flags only — they are per-invocation, not environment concerns.
	Infile  string
	Outfile string

	EndpointURL    string
	RequestTimeout time.Duration
	// RequestRate caps remote calls per second. Zero disables throttling.
	RequestRate float64

	LogLevel  string
	LogFormat string

	// MetricsAddr enables the operational HTTP server when non-empty.
	MetricsAddr string

	// NoHeader suppresses the column-label header line.
	NoHeader bool
	// FailFast stops the batch on the first transport or decode failure
	// instead of reporting it inline and continuing.
	FailFast bool
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	timeout, err := parseDuration("GEOMAG_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	rate, err := parseRate("GEOMAG_RATE_LIMIT", 0)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		EndpointURL:    envOrDefault("GEOMAG_URL", defaultEndpoint),
		RequestTimeout: timeout,
		RequestRate:    rate,
		LogLevel:       envOrDefault("LOG_LEVEL", "info"),
		LogFormat:      envOrDefault("LOG_FORMAT", "text"),
		MetricsAddr:    os.Getenv("METRICS_ADDR"),
	}

	if cfg.EndpointURL == "" {
		return nil, errors.New("GEOMAG_URL must not be empty")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	s := envOrDefault(key, fallback)
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return d, nil
}

func parseRate(key string, fallback float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return v, nil
}
