package complexity

import (
	"fmt"
	"image"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/print-advisor-mcp/internal/imaging"
)

// FallbackRationale explains an OptimalColorResult produced after a failed
// analysis.
const FallbackRationale = "analysis failed, using standard settings"

// Source describes the decoded input image.
type Source struct {
	Format string `json:"format"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Analysis holds the diagnostic detail of a report.
type Analysis struct {
	Entropy            float64                  `json:"entropy"`
	GradientComplexity float64                  `json:"gradient_complexity"`
	EdgeComplexity     float64                  `json:"edge_complexity"`
	DominantColors     []imaging.ColorFrequency `json:"dominant_colors"`
}

// Report is the full result of analyzing one image.
type Report struct {
	Complexity      Score            `json:"complexity"`
	UniqueColors    int              `json:"unique_colors"`
	Recommendations []Recommendation `json:"recommendations"`
	Analysis        Analysis         `json:"analysis"`
	Metrics         Metrics          `json:"metrics"`
	Source          Source           `json:"source"`

	// Degraded names the metrics that could not be computed and were
	// replaced with 0.
	Degraded []string `json:"degraded,omitempty"`
}

// OptimalColorResult is the color count to reduce an image to for a given
// technique family.
type OptimalColorResult struct {
	ColorCount      int     `json:"color_count"`
	Technique       string  `json:"technique"`
	ComplexityLevel Level   `json:"complexity_level"`
	Rationale       string  `json:"rationale"`
	Metrics         Metrics `json:"metrics"`

	// Fallback is true when the result is the standard default rather than
	// the outcome of an analysis; Reason then says why.
	Fallback bool   `json:"fallback"`
	Reason   string `json:"reason,omitempty"`
}

// Analyzer measures image complexity and recommends print techniques.
//
// An Analyzer holds only its configuration and is safe for concurrent use.
type Analyzer struct {
	opts Options
	log  logrus.FieldLogger
}

// NewAnalyzer validates opts and returns an Analyzer. A nil logger discards
// all log output.
func NewAnalyzer(opts Options, log logrus.FieldLogger) (*Analyzer, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid analysis options: %w", err)
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Analyzer{opts: opts, log: log}, nil
}

// Options returns the analyzer's configuration.
func (a *Analyzer) Options() Options {
	return a.opts
}

// AnalyzeImageComplexity decodes data and returns its complexity report.
//
// Decode failures are returned as *imaging.AnalysisError with KindDecode or
// KindUnsupportedFormat. Gradient and edge failures do not fail the call;
// the metric is reported as 0 and listed in Report.Degraded.
func (a *Analyzer) AnalyzeImageComplexity(data []byte) (*Report, error) {
	decoded, err := imaging.Decode(data, a.opts.Limits)
	if err != nil {
		return nil, err
	}
	report, err := a.AnalyzeImage(decoded.Image)
	if err != nil {
		return nil, err
	}
	report.Source.Format = decoded.Format
	return report, nil
}

// AnalyzeImage runs the analysis on an already decoded image.
func (a *Analyzer) AnalyzeImage(img image.Image) (*Report, error) {
	if img == nil {
		return nil, imaging.NewDecodeError("nil image", nil)
	}
	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, imaging.NewDecodeError(fmt.Sprintf("invalid image dimensions %dx%d", bounds.Dx(), bounds.Dy()), nil)
	}

	pixels, err := imaging.SamplePixels(img, a.opts.AnalysisSize)
	if err != nil {
		return nil, err
	}
	hist, err := imaging.BuildHistogram(pixels, a.opts.Tolerance)
	if err != nil {
		return nil, err
	}
	entropy := imaging.Entropy(hist)

	var degraded []string
	gradient, edge := 0.0, 0.0
	gray, err := imaging.GraySample(img, a.opts.GradientSize)
	if err != nil {
		a.log.WithError(err).Warn("grayscale sampling failed, gradient and edge complexity set to 0")
		degraded = append(degraded, "gradient_complexity", "edge_complexity")
	} else {
		if gradient, err = imaging.GradientComplexity(gray); err != nil {
			a.log.WithError(err).Warn("gradient analysis failed, using 0")
			degraded = append(degraded, "gradient_complexity")
		}
		if edge, err = imaging.EdgeDensity(gray, a.opts.EdgeThreshold); err != nil {
			a.log.WithError(err).Warn("edge analysis failed, using 0")
			degraded = append(degraded, "edge_complexity")
		}
	}

	metrics := NewMetrics(hist.Len(), entropy, gradient, edge)
	score := ScoreMetrics(metrics, a.opts.Weights)

	a.log.WithFields(logrus.Fields{
		"unique_colors": metrics.UniqueColors,
		"entropy":       metrics.Entropy,
		"gradient":      metrics.GradientComplexity,
		"edge":          metrics.EdgeComplexity,
		"score":         score.Value,
		"level":         score.Level,
	}).Debug("complexity analysis complete")

	return &Report{
		Complexity:      score,
		UniqueColors:    metrics.UniqueColors,
		Recommendations: Recommend(score, metrics.UniqueColors, FamilyAny),
		Analysis: Analysis{
			Entropy:            entropy,
			GradientComplexity: gradient,
			EdgeComplexity:     edge,
			DominantColors:     imaging.TopColors(hist, a.opts.TopColors),
		},
		Metrics:  metrics,
		Source:   Source{Width: bounds.Dx(), Height: bounds.Dy()},
		Degraded: degraded,
	}, nil
}

// GetOptimalColorCount returns the color count and technique to use for data
// within the given family.
//
// It never fails. Any error, including a panic inside the analysis, yields
// a fallback result with ColorCount 4, Fallback set and Reason describing
// the failure.
func (a *Analyzer) GetOptimalColorCount(data []byte, family Family) (result OptimalColorResult) {
	defer func() {
		if r := recover(); r != nil {
			result = a.Fallback(fmt.Errorf("analysis panicked: %v", r))
		}
	}()

	report, err := a.AnalyzeImageComplexity(data)
	if err != nil {
		return a.Fallback(err)
	}
	return optimalFromReport(report, family)
}

// DominantColors returns the n most frequent colors of data after
// quantization with the given tolerance. tolerance <= 0 uses
// Options.Tolerance and n <= 0 uses Options.TopColors.
func (a *Analyzer) DominantColors(data []byte, n, tolerance int) ([]imaging.ColorFrequency, error) {
	if tolerance <= 0 {
		tolerance = a.opts.Tolerance
	}
	if n <= 0 {
		n = a.opts.TopColors
	}
	decoded, err := imaging.Decode(data, a.opts.Limits)
	if err != nil {
		return nil, err
	}
	pixels, err := imaging.SamplePixels(decoded.Image, a.opts.AnalysisSize)
	if err != nil {
		return nil, err
	}
	hist, err := imaging.BuildHistogram(pixels, tolerance)
	if err != nil {
		return nil, err
	}
	return imaging.TopColors(hist, n), nil
}

func optimalFromReport(report *Report, family Family) OptimalColorResult {
	top := FilterByFamily(report.Recommendations, family)[0]
	return OptimalColorResult{
		ColorCount:      top.ColorCount.Palette(),
		Technique:       top.Technique,
		ComplexityLevel: report.Complexity.Level,
		Rationale:       top.Rationale,
		Metrics:         report.Metrics,
	}
}

// Fallback returns the standard result used when err prevents an analysis.
func (a *Analyzer) Fallback(err error) OptimalColorResult {
	a.log.WithError(err).Warn("complexity analysis failed, returning default color count")
	rec := fallbackRecommendation()
	return OptimalColorResult{
		ColorCount:      FallbackColorCount,
		Technique:       rec.Technique,
		ComplexityLevel: LevelMedium,
		Rationale:       FallbackRationale,
		Fallback:        true,
		Reason:          err.Error(),
	}
}
