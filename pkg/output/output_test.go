package output

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/tagcloud/tagcloud/pkg/errors"
	"github.com/tagcloud/tagcloud/pkg/geom"
)

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"png", false},
		{"jpeg", false},
		{"gif", false},
		{"bmp", false},
		{"tiff", false},
		{"svg", true},
		{"PNG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"cloud.png", "png"},
		{"cloud.JPG", "jpeg"},
		{"out/cloud.tif", "tiff"},
		{"cloud.bmp", "bmp"},
		{"cloud.txt", ""},
		{"cloud", ""},
	}

	for _, tt := range tests {
		if got := FormatFromPath(tt.path); got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	img := solid(8, 6, color.RGBA{10, 200, 30, 255})

	for format := range ValidFormats {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, img, format); err != nil {
				t.Fatalf("Encode(%s) error: %v", format, err)
			}
			cfg, name, err := image.DecodeConfig(bytes.NewReader(buf.Bytes()))
			if err != nil {
				t.Fatalf("DecodeConfig(%s) error: %v", format, err)
			}
			if name != format {
				t.Errorf("decoded format = %q, want %q", name, format)
			}
			if cfg.Width != 8 || cfg.Height != 6 {
				t.Errorf("decoded size = %dx%d, want 8x6", cfg.Width, cfg.Height)
			}
		})
	}
}

func TestEncodeEmptyImage(t *testing.T) {
	_, err := EncodeBytes(image.NewRGBA(image.Rectangle{}), FormatPNG)
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("EncodeBytes(empty) error = %v, want INVALID_INPUT", err)
	}
}

func TestEncodeInvalidFormat(t *testing.T) {
	_, err := EncodeBytes(solid(1, 1, color.White), "webp")
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("EncodeBytes(webp) error = %v, want INVALID_FORMAT", err)
	}
}

func TestResizer(t *testing.T) {
	r, err := NewResizer("")
	if err != nil {
		t.Fatal(err)
	}
	out := r.Resize(solid(40, 20, color.White), geom.Sz(10, 5))
	if out.Bounds().Dx() != 10 || out.Bounds().Dy() != 5 {
		t.Errorf("Resize() size = %v, want 10x5", out.Bounds().Size())
	}

	for _, name := range []string{FilterNearest, FilterLinear, FilterCatmull, FilterLanczos} {
		if _, err := NewResizer(name); err != nil {
			t.Errorf("NewResizer(%q) error: %v", name, err)
		}
	}
	if _, err := NewResizer("bicubic-ish"); err == nil {
		t.Error("NewResizer(unknown) should fail")
	}
}
