package config

import (
	"runtime"
	"strings"
	"testing"

	"github.com/ironsheep/print-advisor-mcp/internal/complexity"
)

var allKeys = []string{
	"LOG_LEVEL", "LOG_FORMAT", "TOLERANCE", "ANALYSIS_SIZE", "GRADIENT_SIZE",
	"EDGE_THRESHOLD", "TOP_COLORS", "MAX_IMAGE_BYTES", "MAX_PIXELS", "WORKERS",
}

// clearEnv blanks every variable so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allKeys {
		t.Setenv(EnvPrefix+k, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}

	if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Errorf("log settings: got %s/%s, want info/text", cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.Tolerance != 8 {
		t.Errorf("Tolerance: got %d, want 8", cfg.Tolerance)
	}
	if cfg.AnalysisSize != 256 || cfg.GradientSize != 128 {
		t.Errorf("sizes: got %d/%d, want 256/128", cfg.AnalysisSize, cfg.GradientSize)
	}
	if cfg.EdgeThreshold != 50 {
		t.Errorf("EdgeThreshold: got %v, want 50", cfg.EdgeThreshold)
	}
	if cfg.MaxImageBytes != 20<<20 {
		t.Errorf("MaxImageBytes: got %d, want %d", cfg.MaxImageBytes, 20<<20)
	}
	if cfg.Workers != runtime.NumCPU() {
		t.Errorf("Workers: got %d, want %d", cfg.Workers, runtime.NumCPU())
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PRINT_ADVISOR_LOG_LEVEL", "DEBUG")
	t.Setenv("PRINT_ADVISOR_LOG_FORMAT", "json")
	t.Setenv("PRINT_ADVISOR_TOLERANCE", "16")
	t.Setenv("PRINT_ADVISOR_EDGE_THRESHOLD", "32.5")
	t.Setenv("PRINT_ADVISOR_MAX_IMAGE_BYTES", " 1048576 ")
	t.Setenv("PRINT_ADVISOR_WORKERS", "3")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel: got %s, want debug", cfg.LogLevel)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat: got %s, want json", cfg.LogFormat)
	}
	if cfg.Tolerance != 16 {
		t.Errorf("Tolerance: got %d, want 16", cfg.Tolerance)
	}
	if cfg.EdgeThreshold != 32.5 {
		t.Errorf("EdgeThreshold: got %v, want 32.5", cfg.EdgeThreshold)
	}
	if cfg.MaxImageBytes != 1048576 {
		t.Errorf("MaxImageBytes: got %d, want 1048576", cfg.MaxImageBytes)
	}
	if cfg.Workers != 3 {
		t.Errorf("Workers: got %d, want 3", cfg.Workers)
	}
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{"log level", "LOG_LEVEL", "verbose", "LOG_LEVEL"},
		{"log format", "LOG_FORMAT", "xml", "LOG_FORMAT"},
		{"tolerance not a number", "TOLERANCE", "eight", "TOLERANCE"},
		{"tolerance out of range", "TOLERANCE", "300", "tolerance"},
		{"edge threshold", "EDGE_THRESHOLD", "-1", "edge threshold"},
		{"gradient size", "GRADIENT_SIZE", "2", "gradient size"},
		{"max bytes", "MAX_IMAGE_BYTES", "0", "MAX_IMAGE_BYTES"},
		{"max pixels", "MAX_PIXELS", "abc", "MAX_PIXELS"},
		{"workers", "WORKERS", "-2", "WORKERS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(EnvPrefix+tt.key, tt.value)

			_, err := FromEnv()
			if err == nil {
				t.Fatalf("expected error for %s=%s", tt.key, tt.value)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestAnalysisOptions(t *testing.T) {
	cfg := Default()
	cfg.Tolerance = 4
	cfg.TopColors = 10
	cfg.MaxPixels = 1000
	cfg.Workers = 2

	opts := cfg.AnalysisOptions()
	if err := opts.Validate(); err != nil {
		t.Fatalf("options should be valid: %v", err)
	}
	if opts.Tolerance != 4 || opts.TopColors != 10 || opts.Workers != 2 {
		t.Errorf("options not copied: %+v", opts)
	}
	if opts.Limits.MaxPixels != 1000 {
		t.Errorf("Limits.MaxPixels: got %d, want 1000", opts.Limits.MaxPixels)
	}
	if opts.Weights != complexity.DefaultWeights() {
		t.Errorf("Weights: got %+v, want defaults", opts.Weights)
	}
}
