package imaging

import (
	"fmt"
	"math"
	"sort"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// DefaultTolerance is the default quantization step per channel.
const DefaultTolerance = 8

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorKey is a quantized RGB triple used as a histogram bucket.
type ColorKey struct {
	R, G, B uint8
}

func (k ColorKey) less(o ColorKey) bool {
	if k.R != o.R {
		return k.R < o.R
	}
	if k.G != o.G {
		return k.G < o.G
	}
	return k.B < o.B
}

// Quantize floors v to the nearest multiple of tolerance.
//
// A tolerance below 2 leaves v unchanged.
func Quantize(v uint8, tolerance int) uint8 {
	if tolerance < 2 {
		return v
	}
	return v - uint8(int(v)%tolerance)
}

// Histogram counts pixels per quantized color.
//
// A Histogram is built once by BuildHistogram and is not modified afterwards.
type Histogram struct {
	tolerance int
	counts    map[ColorKey]int
	total     int
}

// BuildHistogram quantizes every pixel of buf and counts the buckets.
//
// Alpha is ignored: a fully transparent pixel is counted by its color
// channels like any other.
func BuildHistogram(buf *PixelBuffer, tolerance int) (*Histogram, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	if tolerance < 1 || tolerance > 255 {
		return nil, NewInternalError(fmt.Sprintf("tolerance %d outside 1-255", tolerance), nil)
	}

	h := &Histogram{
		tolerance: tolerance,
		counts:    make(map[ColorKey]int),
	}
	n := buf.Pixels()
	for i := 0; i < n; i++ {
		r, g, b := buf.RGB(i)
		key := ColorKey{
			R: Quantize(r, tolerance),
			G: Quantize(g, tolerance),
			B: Quantize(b, tolerance),
		}
		h.counts[key]++
	}
	h.total = n
	return h, nil
}

// Len returns the number of distinct quantized colors.
func (h *Histogram) Len() int { return len(h.counts) }

// Total returns the number of pixels counted.
func (h *Histogram) Total() int { return h.total }

// Tolerance returns the quantization step the histogram was built with.
func (h *Histogram) Tolerance() int { return h.tolerance }

// Count returns the number of pixels in the given bucket.
func (h *Histogram) Count(key ColorKey) int { return h.counts[key] }

// Keys returns the bucket keys in ascending R, G, B order.
func (h *Histogram) Keys() []ColorKey {
	keys := make([]ColorKey, 0, len(h.counts))
	for k := range h.counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].less(keys[j]) })
	return keys
}

// ColorFrequency is a quantized color and how often it occurs.
type ColorFrequency struct {
	Hex        string   `json:"hex"`        // Hex color "#RRGGBB" (quantized)
	RGB        RGBColor `json:"rgb"`        // RGB components (quantized)
	HSL        HSLColor `json:"hsl"`        // HSL representation
	Count      int      `json:"count"`      // Number of pixels in the bucket
	Frequency  float64  `json:"frequency"`  // Fraction of pixels (0-1)
	Percentage float64  `json:"percentage"` // Frequency * 100, rounded to 0.01
}

// TopColors returns up to n buckets sorted by frequency, most common first.
//
// Buckets with equal counts are ordered by ascending color so that results
// are reproducible. A non-positive n returns every bucket.
func TopColors(h *Histogram, n int) []ColorFrequency {
	if h == nil || h.total == 0 {
		return []ColorFrequency{}
	}

	keys := h.Keys()
	sort.SliceStable(keys, func(i, j int) bool {
		return h.counts[keys[i]] > h.counts[keys[j]]
	})
	if n > 0 && len(keys) > n {
		keys = keys[:n]
	}

	colors := make([]ColorFrequency, 0, len(keys))
	for _, k := range keys {
		cnt := h.counts[k]
		freq := float64(cnt) / float64(h.total)
		c := colorful.Color{R: float64(k.R) / 255.0, G: float64(k.G) / 255.0, B: float64(k.B) / 255.0}
		hue, sat, light := c.Hsl()

		colors = append(colors, ColorFrequency{
			Hex:        strings.ToUpper(c.Hex()),
			RGB:        RGBColor{R: k.R, G: k.G, B: k.B},
			HSL:        HSLColor{H: int(hue), S: int(sat * 100), L: int(light * 100)},
			Count:      cnt,
			Frequency:  freq,
			Percentage: math.Round(freq*10000) / 100,
		})
	}
	return colors
}
