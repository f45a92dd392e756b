package imaging

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Distribution converts histogram counts to probabilities.
//
// Probabilities are returned in Keys() order and sum to 1 for a non-empty
// histogram.
func Distribution(h *Histogram) []float64 {
	if h == nil || h.total == 0 {
		return nil
	}
	keys := h.Keys()
	p := make([]float64, len(keys))
	total := float64(h.total)
	for i, k := range keys {
		p[i] = float64(h.counts[k]) / total
	}
	return p
}

// Entropy returns the Shannon entropy of the histogram in bits:
//
//	-Σ p_i * log2(p_i)   over buckets with p_i > 0
//
// A single-color histogram has entropy 0.
func Entropy(h *Histogram) float64 {
	p := Distribution(h)
	if len(p) <= 1 {
		return 0
	}
	bits := stat.Entropy(p) / math.Ln2
	if bits <= 0 || math.IsNaN(bits) {
		return 0
	}
	return bits
}
