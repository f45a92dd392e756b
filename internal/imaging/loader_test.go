package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// createInMemoryImage creates a solid-color RGBA image.
func createInMemoryImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createPatternImage creates red, green, blue and white quadrants.
func createPatternImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c color.Color
			if x < width/2 && y < height/2 {
				c = color.RGBA{255, 0, 0, 255} // Red
			} else if x >= width/2 && y < height/2 {
				c = color.RGBA{0, 255, 0, 255} // Green
			} else if x < width/2 && y >= height/2 {
				c = color.RGBA{0, 0, 255, 255} // Blue
			} else {
				c = color.RGBA{255, 255, 255, 255} // White
			}
			img.Set(x, y, c)
		}
	}
	return img
}

// encodePNG returns img as PNG bytes.
func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode PNG: %v", err)
	}
	return buf.Bytes()
}

func TestInspect(t *testing.T) {
	data := encodePNG(t, createInMemoryImage(120, 80, color.RGBA{10, 20, 30, 255}))

	info, err := Inspect(data)
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}

	if info.Width != 120 || info.Height != 80 {
		t.Errorf("dimensions: got %dx%d, want 120x80", info.Width, info.Height)
	}
	if info.Format != "png" {
		t.Errorf("format: got %s, want png", info.Format)
	}
	if info.ColorDepth != "8-bit" {
		t.Errorf("color depth: got %s, want 8-bit", info.ColorDepth)
	}
	if info.SizeBytes != int64(len(data)) {
		t.Errorf("size: got %d, want %d", info.SizeBytes, len(data))
	}
}

func TestInspect_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"garbage", []byte("this is not an image")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Inspect(tt.data)
			if !IsKind(err, KindDecode) {
				t.Errorf("expected decode error, got %v", err)
			}
		})
	}
}

func TestDecode_FormatDetection(t *testing.T) {
	src := createPatternImage(16, 16)

	encoders := []struct {
		name   string
		encode func(*bytes.Buffer) error
	}{
		{"png", func(b *bytes.Buffer) error { return png.Encode(b, src) }},
		{"jpeg", func(b *bytes.Buffer) error { return jpeg.Encode(b, src, &jpeg.Options{Quality: 90}) }},
		{"gif", func(b *bytes.Buffer) error { return gif.Encode(b, src, nil) }},
		{"bmp", func(b *bytes.Buffer) error { return bmp.Encode(b, src) }},
		{"tiff", func(b *bytes.Buffer) error { return tiff.Encode(b, src, nil) }},
	}

	for _, tt := range encoders {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := tt.encode(&buf); err != nil {
				t.Fatalf("failed to encode %s: %v", tt.name, err)
			}

			decoded, err := Decode(buf.Bytes(), DecodeLimits{})
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if decoded.Format != tt.name {
				t.Errorf("format: got %s, want %s", decoded.Format, tt.name)
			}
			if decoded.Width != 16 || decoded.Height != 16 {
				t.Errorf("dimensions: got %dx%d, want 16x16", decoded.Width, decoded.Height)
			}
		})
	}
}

func TestDecode_Errors(t *testing.T) {
	valid := encodePNG(t, createInMemoryImage(20, 10, color.RGBA{0, 0, 0, 255}))
	corrupt := append([]byte(nil), valid[:len(valid)/2]...)

	tests := []struct {
		name   string
		data   []byte
		limits DecodeLimits
		kind   ErrorKind
	}{
		{"empty", []byte{}, DecodeLimits{}, KindDecode},
		{"not an image", []byte("GIF-ish but not really"), DecodeLimits{}, KindDecode},
		{"truncated png", corrupt, DecodeLimits{}, KindDecode},
		{"too many bytes", valid, DecodeLimits{MaxBytes: 10}, KindDecode},
		{"too many pixels", valid, DecodeLimits{MaxPixels: 199}, KindDecode},
		{"format not allowed", valid, DecodeLimits{AllowedFormats: []string{"jpeg"}}, KindUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.data, tt.limits)
			if err == nil {
				t.Fatal("expected error")
			}
			if !IsKind(err, tt.kind) {
				t.Errorf("kind: got %v, want %s", err, tt.kind)
			}
		})
	}
}

func TestDecode_WithinLimits(t *testing.T) {
	data := encodePNG(t, createInMemoryImage(20, 10, color.RGBA{0, 0, 0, 255}))

	limits := DecodeLimits{
		MaxBytes:       int64(len(data)),
		MaxPixels:      200,
		AllowedFormats: []string{"PNG"},
	}
	if _, err := Decode(data, limits); err != nil {
		t.Errorf("Decode at the exact limits failed: %v", err)
	}
}

func TestCheckColorModel(t *testing.T) {
	tests := []struct {
		name  string
		model color.Model
		ok    bool
	}{
		{"rgba", color.RGBAModel, true},
		{"nrgba64", color.NRGBA64Model, true},
		{"gray", color.GrayModel, true},
		{"ycbcr", color.YCbCrModel, true},
		{"cmyk", color.CMYKModel, true},
		{"palette", color.Palette{color.Black, color.White}, true},
		{"alpha", color.AlphaModel, false},
		{"alpha16", color.Alpha16Model, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkColorModel(tt.model)
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && !IsKind(err, KindUnsupportedFormat) {
				t.Errorf("expected unsupported_format error, got %v", err)
			}
		})
	}
}

func TestPixelBuffer_Validate(t *testing.T) {
	tests := []struct {
		name string
		buf  *PixelBuffer
		kind ErrorKind
	}{
		{"nil", nil, KindInternal},
		{"two channels", &PixelBuffer{Width: 1, Height: 1, Channels: 2, Pix: []uint8{0, 0}}, KindUnsupportedFormat},
		{"zero width", &PixelBuffer{Width: 0, Height: 1, Channels: 3}, KindInternal},
		{"short data", &PixelBuffer{Width: 2, Height: 2, Channels: 3, Pix: make([]uint8, 11)}, KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.buf.Validate(); !IsKind(err, tt.kind) {
				t.Errorf("got %v, want %s", err, tt.kind)
			}
		})
	}

	ok := &PixelBuffer{Width: 2, Height: 2, Channels: 4, Pix: make([]uint8, 16)}
	if err := ok.Validate(); err != nil {
		t.Errorf("valid buffer rejected: %v", err)
	}
}

func TestSamplePixels(t *testing.T) {
	t.Run("opaque", func(t *testing.T) {
		buf, err := SamplePixels(createInMemoryImage(100, 50, color.RGBA{255, 0, 0, 255}), 32)
		if err != nil {
			t.Fatalf("SamplePixels failed: %v", err)
		}
		if buf.Width != 32 || buf.Height != 32 || buf.Channels != 3 {
			t.Errorf("buffer: got %dx%dx%d, want 32x32x3", buf.Width, buf.Height, buf.Channels)
		}
		if err := buf.Validate(); err != nil {
			t.Fatalf("invalid buffer: %v", err)
		}
		for i := 0; i < buf.Pixels(); i++ {
			if r, g, b := buf.RGB(i); r != 255 || g != 0 || b != 0 {
				t.Fatalf("pixel %d: got (%d,%d,%d), want (255,0,0)", i, r, g, b)
			}
		}
	})

	t.Run("translucent", func(t *testing.T) {
		img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
		for i := range img.Pix {
			img.Pix[i] = 128
		}
		buf, err := SamplePixels(img, 8)
		if err != nil {
			t.Fatalf("SamplePixels failed: %v", err)
		}
		if buf.Channels != 4 {
			t.Errorf("channels: got %d, want 4", buf.Channels)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		if _, err := SamplePixels(nil, 8); err == nil {
			t.Error("expected error for nil image")
		}
		if _, err := SamplePixels(createInMemoryImage(4, 4, color.White), 0); err == nil {
			t.Error("expected error for size 0")
		}
	})
}

func TestGraySample(t *testing.T) {
	gray, err := GraySample(createInMemoryImage(300, 200, color.RGBA{128, 128, 128, 255}), 64)
	if err != nil {
		t.Fatalf("GraySample failed: %v", err)
	}
	if gray.Bounds().Dx() != 64 || gray.Bounds().Dy() != 64 {
		t.Fatalf("dimensions: got %v, want 64x64", gray.Bounds())
	}
	for i, v := range gray.Pix {
		if v != 128 {
			t.Fatalf("pixel %d: got %d, want 128", i, v)
		}
	}

	if _, err := GraySample(nil, 64); err == nil {
		t.Error("expected error for nil image")
	}
}
