// Package imaging provides the pixel-level measurements behind print
// complexity analysis.
//
// This package decodes encoded image bytes, samples them to fixed analysis
// resolutions, and computes the individual signals that the complexity
// package combines into a score: quantized color cardinality, Shannon
// entropy of the color histogram, horizontal gradient energy, and
// Laplacian edge density.
//
// # Pipeline
//
//	Decode        bytes -> image.Image (header checked against DecodeLimits)
//	SamplePixels  image -> 256x256 PixelBuffer (RGB or RGBA)
//	GraySample    image -> 128x128 *image.Gray
//	BuildHistogram / Entropy / TopColors   on the PixelBuffer
//	GradientComplexity / EdgeDensity       on the grayscale image
//
// # Thread Safety
//
// Every function is stateless. Values returned by one call are never shared
// with another, so images may be analyzed concurrently without locking.
//
// # Color Representation
//
// Quantized colors are reported as:
//   - Hex: 6-character format "#RRGGBB"
//   - RGB: 8-bit components (0-255)
//   - HSL: Hue (0-360), Saturation (0-100), Lightness (0-100)
//
// # Error Handling
//
// Errors are *AnalysisError values with one of three kinds:
//   - KindDecode: the bytes are empty, corrupt, unrecognized or over a limit
//   - KindUnsupportedFormat: the image has no RGB channels or its format is
//     not accepted
//   - KindInternal: a metric could not be computed from its input
//
// GradientComplexity and EdgeDensity return 0 alongside a KindInternal
// error so callers can substitute the neutral value and keep going.
package imaging
