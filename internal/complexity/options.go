package complexity

import (
	"fmt"
	"math"
	"runtime"

	"github.com/ironsheep/print-advisor-mcp/internal/imaging"
)

const (
	// DefaultAnalysisSize is the side of the sampled color buffer.
	DefaultAnalysisSize = 256

	// DefaultTopColors is the number of dominant colors included in reports.
	DefaultTopColors = 5

	// DefaultMaxImageBytes caps the encoded input size (20 MiB).
	DefaultMaxImageBytes = 20 << 20

	// DefaultMaxPixels caps the decoded pixel count.
	DefaultMaxPixels = 40_000_000
)

// Weights are the contributions of each normalized metric to the score.
type Weights struct {
	Colors   float64 `json:"colors"`
	Entropy  float64 `json:"entropy"`
	Gradient float64 `json:"gradient"`
	Edge     float64 `json:"edge"`
}

// DefaultWeights returns the calibrated weights 0.30/0.25/0.25/0.20.
func DefaultWeights() Weights {
	return Weights{Colors: 0.30, Entropy: 0.25, Gradient: 0.25, Edge: 0.20}
}

// Validate checks that the weights are non-negative and sum to 1.
func (w Weights) Validate() error {
	named := []struct {
		name  string
		value float64
	}{
		{"colors", w.Colors},
		{"entropy", w.Entropy},
		{"gradient", w.Gradient},
		{"edge", w.Edge},
	}
	for _, n := range named {
		if n.value < 0 || math.IsNaN(n.value) {
			return fmt.Errorf("weight %s must be >= 0 (got %v)", n.name, n.value)
		}
	}
	if sum := w.Colors + w.Entropy + w.Gradient + w.Edge; math.Abs(sum-1) > 1e-9 {
		return fmt.Errorf("weights must sum to 1 (got %v)", sum)
	}
	return nil
}

// Options configures an Analyzer.
type Options struct {
	// Tolerance is the per-channel quantization step for the color histogram.
	Tolerance int

	// AnalysisSize is the side of the sampled color buffer.
	AnalysisSize int

	// GradientSize is the side of the grayscale image used by the gradient
	// and edge analyzers.
	GradientSize int

	// EdgeThreshold is the absolute Laplacian response (0-255) above which a
	// pixel counts as an edge.
	EdgeThreshold float64

	// Weights combine the normalized metrics into the score.
	Weights Weights

	// TopColors is the number of dominant colors reported.
	TopColors int

	// Limits bound each decode.
	Limits imaging.DecodeLimits

	// Workers is the default parallelism of AnalyzeBatch.
	Workers int
}

// DefaultOptions returns the calibrated analysis settings.
func DefaultOptions() Options {
	return Options{
		Tolerance:     imaging.DefaultTolerance,
		AnalysisSize:  DefaultAnalysisSize,
		GradientSize:  imaging.DefaultGradientSize,
		EdgeThreshold: imaging.DefaultEdgeThreshold,
		Weights:       DefaultWeights(),
		TopColors:     DefaultTopColors,
		Limits: imaging.DecodeLimits{
			MaxBytes:  DefaultMaxImageBytes,
			MaxPixels: DefaultMaxPixels,
		},
		Workers: runtime.NumCPU(),
	}
}

// Validate reports the first invalid setting.
func (o Options) Validate() error {
	if o.Tolerance < 1 || o.Tolerance > 255 {
		return fmt.Errorf("tolerance must be in 1-255 (got %d)", o.Tolerance)
	}
	if o.AnalysisSize < 1 {
		return fmt.Errorf("analysis size must be > 0 (got %d)", o.AnalysisSize)
	}
	if o.GradientSize < 3 {
		return fmt.Errorf("gradient size must be >= 3 (got %d)", o.GradientSize)
	}
	if o.EdgeThreshold < 0 || o.EdgeThreshold > 255 {
		return fmt.Errorf("edge threshold must be in 0-255 (got %v)", o.EdgeThreshold)
	}
	if o.TopColors < 0 {
		return fmt.Errorf("top colors must be >= 0 (got %d)", o.TopColors)
	}
	if o.Limits.MaxBytes < 0 || o.Limits.MaxPixels < 0 {
		return fmt.Errorf("decode limits must be >= 0 (got bytes=%d, pixels=%d)", o.Limits.MaxBytes, o.Limits.MaxPixels)
	}
	return o.Weights.Validate()
}

// WithTolerance returns options with a different quantization step.
func (o Options) WithTolerance(tolerance int) Options {
	o.Tolerance = tolerance
	return o
}

// WithEdgeThreshold returns options with a different edge threshold.
func (o Options) WithEdgeThreshold(threshold float64) Options {
	o.EdgeThreshold = threshold
	return o
}

// WithWeights returns options with custom score weights.
func (o Options) WithWeights(w Weights) Options {
	o.Weights = w
	return o
}

// WithLimits returns options with different decode limits.
func (o Options) WithLimits(limits imaging.DecodeLimits) Options {
	o.Limits = limits
	return o
}
