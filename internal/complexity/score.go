package complexity

import "math"

const (
	// ColorSaturation is the unique-color count at which the color signal
	// reaches 1.
	ColorSaturation = 100

	// EntropySaturation is the entropy in bits at which the entropy signal
	// reaches 1.
	EntropySaturation = 8
)

// Normalized holds the four metrics mapped to [0,1].
type Normalized struct {
	Colors   float64 `json:"colors"`
	Entropy  float64 `json:"entropy"`
	Gradient float64 `json:"gradient"`
	Edge     float64 `json:"edge"`
}

// Metrics are the raw complexity measurements of one image and their
// normalized counterparts.
type Metrics struct {
	UniqueColors       int        `json:"unique_colors"`
	Entropy            float64    `json:"entropy"`
	GradientComplexity float64    `json:"gradient_complexity"`
	EdgeComplexity     float64    `json:"edge_complexity"`
	Normalized         Normalized `json:"normalized"`
}

// NewMetrics builds Metrics and derives the normalized components:
//
//	colors   = min(uniqueColors / 100, 1)
//	entropy  = min(entropy / 8, 1)
//	gradient = min(gradient, 1)
//	edge     = min(edge, 1)
func NewMetrics(uniqueColors int, entropy, gradient, edge float64) Metrics {
	return Metrics{
		UniqueColors:       uniqueColors,
		Entropy:            entropy,
		GradientComplexity: gradient,
		EdgeComplexity:     edge,
		Normalized: Normalized{
			Colors:   unit(float64(uniqueColors) / ColorSaturation),
			Entropy:  unit(entropy / EntropySaturation),
			Gradient: unit(gradient),
			Edge:     unit(edge),
		},
	}
}

// unit clamps v to [0,1]; NaN maps to 0.
func unit(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return math.Min(v, 1)
}

// Level is the discrete complexity bucket of a score.
type Level string

const (
	LevelSimple      Level = "simple"
	LevelMedium      Level = "medium"
	LevelComplex     Level = "complex"
	LevelVeryComplex Level = "very_complex"
)

// Levels lists every level in ascending order.
func Levels() []Level {
	return []Level{LevelSimple, LevelMedium, LevelComplex, LevelVeryComplex}
}

// LevelFor maps a score to its level. Intervals are closed below and open
// above, so 0.3, 0.6 and 0.8 belong to the higher level:
//
//	[0, 0.3) simple | [0.3, 0.6) medium | [0.6, 0.8) complex | [0.8, 1] very_complex
func LevelFor(score float64) Level {
	switch {
	case score < 0.3:
		return LevelSimple
	case score < 0.6:
		return LevelMedium
	case score < 0.8:
		return LevelComplex
	default:
		return LevelVeryComplex
	}
}

// Description returns a short human-readable summary of the level.
func (l Level) Description() string {
	switch l {
	case LevelSimple:
		return "limited palette, simple shapes"
	case LevelMedium:
		return "several colors, moderate detail"
	case LevelComplex:
		return "many colors and transitions, detailed"
	case LevelVeryComplex:
		return "rich, high-detail palette"
	default:
		return "unknown"
	}
}

// Score is the combined complexity of an image.
type Score struct {
	Value       float64 `json:"score"`
	Level       Level   `json:"level"`
	Description string  `json:"description"`
}

// Apply returns the weighted sum of the normalized metrics, clamped to [0,1].
func (w Weights) Apply(n Normalized) float64 {
	return unit(w.Colors*n.Colors + w.Entropy*n.Entropy + w.Gradient*n.Gradient + w.Edge*n.Edge)
}

// ScoreMetrics combines m into a Score using w.
func ScoreMetrics(m Metrics, w Weights) Score {
	v := w.Apply(m.Normalized)
	level := LevelFor(v)
	return Score{
		Value:       v,
		Level:       level,
		Description: level.Description(),
	}
}
