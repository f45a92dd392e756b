// Package complexity turns image measurements into a complexity score and
// printing-technique recommendations.
//
// An Analyzer decodes image bytes, collects four signals through the imaging
// package (unique quantized colors, color entropy, gradient energy and edge
// density), normalizes them to [0,1] and combines them with fixed weights:
//
//	score = 0.30*colors + 0.25*entropy + 0.25*gradient + 0.20*edge
//
// The score falls into one of four levels, and each level maps to an ordered
// list of techniques (screen-print with a given ink count, DTF, sublimation).
//
// GetOptimalColorCount is the entry point for palette-reduction pipelines:
// it returns a single integer color count and never fails, falling back to
// 4 colors when the image cannot be analyzed.
//
// Analyzers are stateless apart from their Options and may be shared between
// goroutines. AnalyzeBatch spreads many images over a WorkerPool.
package complexity
