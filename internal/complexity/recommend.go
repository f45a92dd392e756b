package complexity

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	// FullColorPaletteSize is the palette size reported for full-color
	// techniques when an integer color count is required.
	FullColorPaletteSize = 256

	// FallbackColorCount is used whenever no recommendation can be made.
	FallbackColorCount = 4

	// multiColorScreenMax caps the ink count of multi-color screen-print.
	multiColorScreenMax = 6
)

// Family groups printing techniques used by one production process.
type Family string

const (
	FamilyAny         Family = ""
	FamilyScreenPrint Family = "screen-print"
	FamilyDTF         Family = "dtf"
)

// ParseFamily accepts "screen-print" (also "screenprint", "screen",
// "шелкография"), "dtf" and the empty string.
func ParseFamily(s string) (Family, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return FamilyAny, nil
	case "screen-print", "screenprint", "screen", "шелкография":
		return FamilyScreenPrint, nil
	case "dtf":
		return FamilyDTF, nil
	default:
		return FamilyAny, fmt.Errorf("unknown technique family %q (valid: screen-print, dtf)", s)
	}
}

// Matches reports whether r belongs to the family. FamilyAny matches
// everything.
func (f Family) Matches(r Recommendation) bool {
	technique := strings.ToLower(r.Technique)
	switch f {
	case FamilyAny:
		return true
	case FamilyScreenPrint:
		return strings.Contains(technique, "screen-print") || strings.Contains(technique, "шелкография")
	case FamilyDTF:
		return strings.Contains(technique, "dtf") || r.ColorCount.FullColor
	default:
		return false
	}
}

// CostTier is the relative production cost of a technique.
type CostTier string

const (
	CostLow    CostTier = "low"
	CostMedium CostTier = "medium"
	CostHigh   CostTier = "high"
)

// QualityTier is the expected print quality of a technique.
type QualityTier string

const (
	QualityGood      QualityTier = "good"
	QualityExcellent QualityTier = "excellent"
)

// ColorCount is either a number of inks or full color.
//
// It encodes to JSON as a number, or as the string "full-color".
type ColorCount struct {
	N         int
	FullColor bool
}

// Inks returns a ColorCount of n inks.
func Inks(n int) ColorCount { return ColorCount{N: n} }

// FullColor is the ColorCount of a continuous-tone technique.
var FullColor = ColorCount{FullColor: true}

// Palette returns the number of palette colors to reduce an image to.
func (c ColorCount) Palette() int {
	if c.FullColor {
		return FullColorPaletteSize
	}
	return c.N
}

func (c ColorCount) String() string {
	if c.FullColor {
		return "full-color"
	}
	return fmt.Sprintf("%d", c.N)
}

// MarshalJSON implements json.Marshaler.
func (c ColorCount) MarshalJSON() ([]byte, error) {
	if c.FullColor {
		return json.Marshal("full-color")
	}
	return json.Marshal(c.N)
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *ColorCount) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if s != "full-color" {
			return fmt.Errorf("invalid color count %q", s)
		}
		*c = FullColor
		return nil
	}
	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("invalid color count: %w", err)
	}
	*c = Inks(n)
	return nil
}

// Recommendation is one candidate printing technique.
type Recommendation struct {
	Technique   string      `json:"technique"`
	ColorCount  ColorCount  `json:"color_count"`
	CostTier    CostTier    `json:"cost_tier"`
	QualityTier QualityTier `json:"quality_tier"`
	Rationale   string      `json:"rationale"`
}

// fallbackRecommendation is returned when nothing else applies.
func fallbackRecommendation() Recommendation {
	return Recommendation{
		Technique:   "screen-print (CMYK process, 4 colors)",
		ColorCount:  Inks(FallbackColorCount),
		CostTier:    CostMedium,
		QualityTier: QualityGood,
		Rationale:   "fallback default",
	}
}

// Candidates returns the ordered technique candidates for a level, highest
// priority first.
func Candidates(level Level, uniqueColors int) []Recommendation {
	switch level {
	case LevelSimple:
		return []Recommendation{
			{
				Technique:   "screen-print (1 color)",
				ColorCount:  Inks(1),
				CostTier:    CostLow,
				QualityTier: QualityExcellent,
				Rationale:   "simple design with a limited palette, one screen is enough",
			},
			{
				Technique:   "screen-print (2 colors)",
				ColorCount:  Inks(2),
				CostTier:    CostLow,
				QualityTier: QualityExcellent,
				Rationale:   "adds an accent color at low cost",
			},
		}
	case LevelMedium:
		return []Recommendation{
			{
				Technique:   "screen-print (3 colors)",
				ColorCount:  Inks(3),
				CostTier:    CostMedium,
				QualityTier: QualityExcellent,
				Rationale:   "moderate detail reproduces well with three spot colors",
			},
			{
				Technique:   "screen-print (CMYK process, 4 colors)",
				ColorCount:  Inks(4),
				CostTier:    CostMedium,
				QualityTier: QualityGood,
				Rationale:   "process colors cover a wider range of tones",
			},
		}
	case LevelComplex:
		n := uniqueColors
		if n > multiColorScreenMax {
			n = multiColorScreenMax
		}
		if n < 1 {
			n = 1
		}
		return []Recommendation{
			{
				Technique:   fmt.Sprintf("screen-print (%d colors)", n),
				ColorCount:  Inks(n),
				CostTier:    CostHigh,
				QualityTier: QualityGood,
				Rationale:   "many colors need several screens; palette reduction will lose some transitions",
			},
			{
				Technique:   "DTF (full-color)",
				ColorCount:  FullColor,
				CostTier:    CostMedium,
				QualityTier: QualityExcellent,
				Rationale:   "direct-to-film prints detailed artwork without color separation",
			},
		}
	case LevelVeryComplex:
		return []Recommendation{
			{
				Technique:   "DTF (full-color)",
				ColorCount:  FullColor,
				CostTier:    CostMedium,
				QualityTier: QualityExcellent,
				Rationale:   "photographic detail and gradients require full-color printing",
			},
			{
				Technique:   "sublimation (full-color)",
				ColorCount:  FullColor,
				CostTier:    CostMedium,
				QualityTier: QualityExcellent,
				Rationale:   "full-color alternative for polyester garments only",
			},
		}
	default:
		return nil
	}
}

// FilterByFamily keeps the candidates that belong to family.
//
// If nothing matches, the first unfiltered candidate is returned instead.
// The result is never empty: an empty candidate list yields the fallback
// default of 4 colors.
func FilterByFamily(recs []Recommendation, family Family) []Recommendation {
	if len(recs) == 0 {
		return []Recommendation{fallbackRecommendation()}
	}
	if family == FamilyAny {
		return recs
	}

	filtered := make([]Recommendation, 0, len(recs))
	for _, r := range recs {
		if family.Matches(r) {
			filtered = append(filtered, r)
		}
	}
	if len(filtered) == 0 {
		return recs[:1]
	}
	return filtered
}

// Recommend returns the ordered recommendations for a score, optionally
// restricted to a technique family.
func Recommend(score Score, uniqueColors int, family Family) []Recommendation {
	return FilterByFamily(Candidates(score.Level, uniqueColors), family)
}
