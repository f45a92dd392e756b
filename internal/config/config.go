// Package config reads server settings from the environment.
package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/ironsheep/print-advisor-mcp/internal/complexity"
	"github.com/ironsheep/print-advisor-mcp/internal/imaging"
)

// EnvPrefix is prepended to every variable name read by Load.
const EnvPrefix = "PRINT_ADVISOR_"

type Config struct {
	LogLevel  string
	LogFormat string

	Tolerance     int
	AnalysisSize  int
	GradientSize  int
	EdgeThreshold float64
	TopColors     int
	MaxImageBytes int64
	MaxPixels     int64
	Workers       int
}

// Default returns the configuration used when no variable is set.
func Default() *Config {
	return &Config{
		LogLevel:      "info",
		LogFormat:     "text",
		Tolerance:     imaging.DefaultTolerance,
		AnalysisSize:  complexity.DefaultAnalysisSize,
		GradientSize:  imaging.DefaultGradientSize,
		EdgeThreshold: imaging.DefaultEdgeThreshold,
		TopColors:     complexity.DefaultTopColors,
		MaxImageBytes: complexity.DefaultMaxImageBytes,
		MaxPixels:     complexity.DefaultMaxPixels,
		Workers:       runtime.NumCPU(),
	}
}

// Load reads an optional .env file from the working directory, then the
// PRINT_ADVISOR_* environment variables. Variables already set in the
// environment take precedence over the .env file.
func Load() (*Config, error) {
	// A missing .env is normal
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the environment alone.
func FromEnv() (*Config, error) {
	cfg := Default()
	cfg.LogLevel = strings.ToLower(getEnvOrDefault("LOG_LEVEL", cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(getEnvOrDefault("LOG_FORMAT", cfg.LogFormat))

	var err error
	if cfg.Tolerance, err = parseInt("TOLERANCE", cfg.Tolerance); err != nil {
		return nil, err
	}
	if cfg.AnalysisSize, err = parseInt("ANALYSIS_SIZE", cfg.AnalysisSize); err != nil {
		return nil, err
	}
	if cfg.GradientSize, err = parseInt("GRADIENT_SIZE", cfg.GradientSize); err != nil {
		return nil, err
	}
	if cfg.EdgeThreshold, err = parseFloat("EDGE_THRESHOLD", cfg.EdgeThreshold); err != nil {
		return nil, err
	}
	if cfg.TopColors, err = parseInt("TOP_COLORS", cfg.TopColors); err != nil {
		return nil, err
	}
	if cfg.MaxImageBytes, err = parseInt64("MAX_IMAGE_BYTES", cfg.MaxImageBytes); err != nil {
		return nil, err
	}
	if cfg.MaxPixels, err = parseInt64("MAX_PIXELS", cfg.MaxPixels); err != nil {
		return nil, err
	}
	if cfg.Workers, err = parseInt("WORKERS", cfg.Workers); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the logging settings and the derived analysis options.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid %sLOG_LEVEL: %q (valid: debug, info, warn, error)", EnvPrefix, c.LogLevel)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid %sLOG_FORMAT: %q (valid: text, json)", EnvPrefix, c.LogFormat)
	}
	if c.MaxImageBytes <= 0 {
		return fmt.Errorf("%sMAX_IMAGE_BYTES must be > 0 (got %d)", EnvPrefix, c.MaxImageBytes)
	}
	if c.MaxPixels <= 0 {
		return fmt.Errorf("%sMAX_PIXELS must be > 0 (got %d)", EnvPrefix, c.MaxPixels)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("%sWORKERS must be > 0 (got %d)", EnvPrefix, c.Workers)
	}
	return c.AnalysisOptions().Validate()
}

// AnalysisOptions converts the configuration into analyzer options. Score
// weights are not configurable and keep their defaults.
func (c *Config) AnalysisOptions() complexity.Options {
	opts := complexity.DefaultOptions()
	opts.Tolerance = c.Tolerance
	opts.AnalysisSize = c.AnalysisSize
	opts.GradientSize = c.GradientSize
	opts.EdgeThreshold = c.EdgeThreshold
	opts.TopColors = c.TopColors
	opts.Limits = imaging.DecodeLimits{
		MaxBytes:  c.MaxImageBytes,
		MaxPixels: c.MaxPixels,
	}
	opts.Workers = c.Workers
	return opts
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(EnvPrefix + key)); value != "" {
		return value
	}
	return defaultValue
}

func parseInt(key string, defaultValue int) (int, error) {
	v, err := parseInt64(key, int64(defaultValue))
	return int(v), err
}

func parseInt64(key string, defaultValue int64) (int64, error) {
	value := strings.TrimSpace(os.Getenv(EnvPrefix + key))
	if value == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s%s: %q is not an integer", EnvPrefix, key, value)
	}
	return v, nil
}

func parseFloat(key string, defaultValue float64) (float64, error) {
	value := strings.TrimSpace(os.Getenv(EnvPrefix + key))
	if value == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s%s: %q is not a number", EnvPrefix, key, value)
	}
	return v, nil
}
