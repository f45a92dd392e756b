package imaging

import (
	"fmt"
	"image"
	"math"

	"github.com/anthonynsimon/bild/convolution"
	"gonum.org/v1/gonum/stat"
)

const (
	// DefaultGradientSize is the side of the grayscale image used for
	// gradient and edge analysis.
	DefaultGradientSize = 128

	// DefaultEdgeThreshold is the absolute Laplacian response above which a
	// pixel counts as an edge.
	DefaultEdgeThreshold = 50
)

// Horizontal Sobel operator.
var gradientKernel = [9]float64{
	-1, 0, 1,
	-2, 0, 2,
	-1, 0, 1,
}

// 8-neighbour Laplacian.
var laplacianKernel = [9]float64{
	-1, -1, -1,
	-1, 8, -1,
	-1, -1, -1,
}

// GradientComplexity returns the mean absolute horizontal Sobel response of
// gray, scaled to [0,1]:
//
//	mean(|gradient pixel|) / 255
//
// Flat artwork scores near 0, photographic texture scores high.
//
// On malformed input the result is 0 together with a KindInternal error;
// callers are expected to keep the 0 and carry on.
func GradientComplexity(gray *image.Gray) (float64, error) {
	response, err := absResponse(gray, gradientKernel)
	if err != nil {
		return 0, err
	}

	mean := stat.Mean(response, nil) / 255
	if math.IsNaN(mean) || math.IsInf(mean, 0) {
		return 0, NewInternalError("gradient mean is not finite", nil)
	}
	return math.Min(math.Max(mean, 0), 1), nil
}

// EdgeDensity returns the fraction of pixels whose absolute Laplacian
// response exceeds threshold (0-255).
//
// Same degradation policy as GradientComplexity.
func EdgeDensity(gray *image.Gray, threshold float64) (float64, error) {
	response, err := absResponse(gray, laplacianKernel)
	if err != nil {
		return 0, err
	}

	edges := 0
	for _, v := range response {
		if v > threshold {
			edges++
		}
	}
	return float64(edges) / float64(len(response)), nil
}

// absResponse convolves gray with k and returns min(|response|, 255) per
// pixel in row-major order.
//
// bild clamps each output channel to [0,255], which drops negative
// responses. Convolving with k and -k and adding the two clamped results
// recovers the absolute value: one of the two is always 0.
func absResponse(gray *image.Gray, k [9]float64) ([]float64, error) {
	if err := validateGray(gray); err != nil {
		return nil, err
	}

	pos := convolution.NewKernel(3, 3)
	neg := convolution.NewKernel(3, 3)
	for i, v := range k {
		pos.Matrix[i] = v
		neg.Matrix[i] = -v
	}

	opts := &convolution.Options{Bias: 0, Wrap: false, KeepAlpha: true}
	up := convolution.Convolve(gray, pos, opts)
	down := convolution.Convolve(gray, neg, opts)

	bounds := gray.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if up.Bounds().Dx() != w || up.Bounds().Dy() != h || down.Bounds().Dx() != w || down.Bounds().Dy() != h {
		return nil, NewInternalError("convolution output size mismatch", nil)
	}

	out := make([]float64, 0, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			u := up.Pix[y*up.Stride+x*4]
			d := down.Pix[y*down.Stride+x*4]
			out = append(out, math.Min(float64(u)+float64(d), 255))
		}
	}
	return out, nil
}

// validateGray rejects images the 3x3 kernels cannot run on.
func validateGray(gray *image.Gray) error {
	if gray == nil {
		return NewInternalError("nil grayscale image", nil)
	}
	bounds := gray.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w < 3 || h < 3 {
		return NewInternalError(fmt.Sprintf("grayscale image %dx%d is smaller than the 3x3 kernel", w, h), nil)
	}
	if gray.Stride < w || len(gray.Pix) < (h-1)*gray.Stride+w {
		return NewInternalError(fmt.Sprintf("grayscale buffer holds %d bytes, too few for %dx%d", len(gray.Pix), w, h), nil)
	}
	return nil
}
