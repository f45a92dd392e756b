package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// ImageInfo contains metadata read from an encoded image header.
//
// It is produced without decoding pixel data, so it is cheap to compute even
// for very large inputs.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the registered decoder name: "png", "jpeg", "gif", "bmp",
	// "tiff" or "webp".
	Format string `json:"format"`

	// ColorDepth indicates the bit depth per channel: "8-bit" or "16-bit".
	ColorDepth string `json:"color_depth"`

	// HasAlpha indicates whether the color model carries an alpha channel.
	HasAlpha bool `json:"has_alpha"`

	// SizeBytes is the length of the encoded data.
	SizeBytes int64 `json:"size_bytes"`
}

// Inspect reads the image header and returns its metadata.
//
// Returns a KindDecode error if the data is empty or not a registered format.
func Inspect(data []byte) (*ImageInfo, error) {
	if len(data) == 0 {
		return nil, NewDecodeError("empty image data", nil)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, NewDecodeError("failed to read image header", err)
	}

	hasAlpha := false
	colorDepth := "8-bit"
	switch m := cfg.ColorModel.(type) {
	case color.Palette:
		for _, c := range m {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				hasAlpha = true
				break
			}
		}
	default:
		switch cfg.ColorModel {
		case color.RGBAModel, color.NRGBAModel, color.NYCbCrAModel:
			hasAlpha = true
		case color.RGBA64Model, color.NRGBA64Model:
			hasAlpha = true
			colorDepth = "16-bit"
		case color.Gray16Model:
			colorDepth = "16-bit"
		}
	}

	return &ImageInfo{
		Width:      cfg.Width,
		Height:     cfg.Height,
		Format:     format,
		ColorDepth: colorDepth,
		HasAlpha:   hasAlpha,
		SizeBytes:  int64(len(data)),
	}, nil
}

// DecodeLimits bounds the cost of a single decode.
//
// Zero values disable the corresponding check.
type DecodeLimits struct {
	// MaxBytes is the largest accepted encoded size.
	MaxBytes int64

	// MaxPixels is the largest accepted width*height, checked from the header
	// before any pixel data is decoded.
	MaxPixels int64

	// AllowedFormats restricts the accepted decoder names. Empty allows all
	// registered formats.
	AllowedFormats []string
}

func (l DecodeLimits) allows(format string) bool {
	if len(l.AllowedFormats) == 0 {
		return true
	}
	for _, f := range l.AllowedFormats {
		if strings.EqualFold(f, format) {
			return true
		}
	}
	return false
}

// Decoded is a fully decoded source image together with its header data.
type Decoded struct {
	Image  image.Image
	Format string
	Width  int
	Height int
}

// Decode validates data against limits and decodes it.
//
// The header is checked first (size, pixel count, format, color model) so an
// oversized or unsupported image is rejected before its pixels are decoded.
// JPEG EXIF orientation is applied.
//
// # Errors
//
//   - KindDecode: empty, corrupt or unrecognized data, or a limit exceeded
//   - KindUnsupportedFormat: format not in AllowedFormats, or a color model
//     without RGB channels
func Decode(data []byte, limits DecodeLimits) (*Decoded, error) {
	if len(data) == 0 {
		return nil, NewDecodeError("empty image data", nil)
	}
	if limits.MaxBytes > 0 && int64(len(data)) > limits.MaxBytes {
		return nil, NewDecodeError(fmt.Sprintf("image is %d bytes, limit is %d", len(data), limits.MaxBytes), nil)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, NewDecodeError("failed to read image header", err)
	}
	if !limits.allows(format) {
		return nil, NewUnsupportedFormatError(fmt.Sprintf("format %q is not accepted", format), nil)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, NewDecodeError(fmt.Sprintf("invalid image dimensions %dx%d", cfg.Width, cfg.Height), nil)
	}
	if limits.MaxPixels > 0 && int64(cfg.Width)*int64(cfg.Height) > limits.MaxPixels {
		return nil, NewDecodeError(fmt.Sprintf("image is %dx%d pixels, limit is %d", cfg.Width, cfg.Height, limits.MaxPixels), nil)
	}
	if err := checkColorModel(cfg.ColorModel); err != nil {
		return nil, err
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, NewDecodeError("failed to decode image", err)
	}

	bounds := img.Bounds()
	return &Decoded{
		Image:  img,
		Format: format,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}

// checkColorModel rejects color models that cannot be normalized to RGB.
func checkColorModel(m color.Model) error {
	if _, ok := m.(color.Palette); ok {
		return nil
	}
	switch m {
	case color.RGBAModel, color.RGBA64Model, color.NRGBAModel, color.NRGBA64Model,
		color.GrayModel, color.Gray16Model, color.YCbCrModel, color.NYCbCrAModel,
		color.CMYKModel:
		return nil
	case color.AlphaModel, color.Alpha16Model:
		return NewUnsupportedFormatError("alpha-only image has no color channels", nil)
	}
	return NewUnsupportedFormatError(fmt.Sprintf("color model %T cannot be normalized to RGB", m), nil)
}

// PixelBuffer holds 8-bit pixel data in row-major order.
//
// Channels is 3 (RGB) for opaque sources and 4 (RGBA) otherwise. The alpha
// channel is carried but ignored by every metric.
type PixelBuffer struct {
	Width    int
	Height   int
	Channels int
	Pix      []uint8
}

// Validate checks that the buffer's dimensions agree with its data.
func (b *PixelBuffer) Validate() error {
	if b == nil {
		return NewInternalError("nil pixel buffer", nil)
	}
	if b.Channels != 3 && b.Channels != 4 {
		return NewUnsupportedFormatError(fmt.Sprintf("unsupported channel count %d", b.Channels), nil)
	}
	if b.Width <= 0 || b.Height <= 0 {
		return NewInternalError(fmt.Sprintf("invalid buffer dimensions %dx%d", b.Width, b.Height), nil)
	}
	if len(b.Pix) != b.Width*b.Height*b.Channels {
		return NewInternalError(fmt.Sprintf("buffer holds %d bytes, want %d", len(b.Pix), b.Width*b.Height*b.Channels), nil)
	}
	return nil
}

// Pixels returns the number of pixels in the buffer.
func (b *PixelBuffer) Pixels() int {
	return b.Width * b.Height
}

// RGB returns the color channels of pixel i (0-based, row-major).
func (b *PixelBuffer) RGB(i int) (r, g, bl uint8) {
	off := i * b.Channels
	return b.Pix[off], b.Pix[off+1], b.Pix[off+2]
}

// SamplePixels resizes img to size×size and returns its pixels.
//
// Resampling uses a Lanczos filter. The aspect ratio is not preserved: the
// whole frame is analyzed. A source that already has the target size is
// copied without resampling.
func SamplePixels(img image.Image, size int) (*PixelBuffer, error) {
	if img == nil {
		return nil, NewInternalError("nil image", nil)
	}
	if size <= 0 {
		return nil, NewInternalError(fmt.Sprintf("invalid analysis size %d", size), nil)
	}

	resized := imaging.Resize(img, size, size, imaging.Lanczos)

	channels := 4
	if resized.Opaque() {
		channels = 3
	}

	pix := make([]uint8, 0, size*size*channels)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			i := resized.PixOffset(x, y)
			pix = append(pix, resized.Pix[i:i+channels]...)
		}
	}

	return &PixelBuffer{
		Width:    size,
		Height:   size,
		Channels: channels,
		Pix:      pix,
	}, nil
}

// GraySample converts img to an 8-bit grayscale image of size×size.
//
// Downsampling uses nearest-neighbour point sampling so that pixel-to-pixel
// transitions are kept rather than averaged away before the gradient and
// edge kernels run. Luminance uses ITU-R BT.601 weights.
func GraySample(img image.Image, size int) (*image.Gray, error) {
	if img == nil {
		return nil, NewInternalError("nil image", nil)
	}
	if size <= 0 {
		return nil, NewInternalError(fmt.Sprintf("invalid gray sample size %d", size), nil)
	}

	small := imaging.Grayscale(imaging.Resize(img, size, size, imaging.NearestNeighbor))

	gray := image.NewGray(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			gray.Pix[y*gray.Stride+x] = small.Pix[small.PixOffset(x, y)]
		}
	}
	return gray, nil
}
