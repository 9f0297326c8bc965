// Package output encodes finished images and resizes drawn images.
//
// Supported formats are png, jpeg, gif, bmp and tiff. The renderer hands
// over a fully composited image; this package only picks the encoder.
package output

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/tagcloud/tagcloud/pkg/errors"
)

// Format constants for output formats.
const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
	FormatGIF  = "gif"
	FormatBMP  = "bmp"
	FormatTIFF = "tiff"
)

// DefaultFormat is the format used when none is requested.
const DefaultFormat = FormatPNG

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPNG:  true,
	FormatJPEG: true,
	FormatGIF:  true,
	FormatBMP:  true,
	FormatTIFF: true,
}

var aliases = map[string]string{
	"jpg": FormatJPEG,
	"tif": FormatTIFF,
}

// NormalizeFormat lowercases f and resolves aliases (jpg, tif).
func NormalizeFormat(f string) string {
	f = strings.ToLower(strings.TrimPrefix(f, "."))
	if a, ok := aliases[f]; ok {
		return a
	}
	return f
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: png, jpeg, gif, bmp, tiff)", format)
	}
	return nil
}

// FormatFromPath derives the format from a file extension.
// It returns "" when the extension is not a known format.
func FormatFromPath(path string) string {
	f := NormalizeFormat(filepath.Ext(path))
	if ValidFormats[f] {
		return f
	}
	return ""
}

// Extension returns the file extension (with dot) for format.
func Extension(format string) string {
	return "." + format
}

// ContentType returns the MIME type for format.
func ContentType(format string) string {
	return "image/" + format
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, format string) error {
	if err := ValidateFormat(format); err != nil {
		return err
	}
	if img.Bounds().Empty() {
		return errors.New(errors.ErrCodeInvalidInput, "cannot encode empty %dx%d image",
			img.Bounds().Dx(), img.Bounds().Dy())
	}

	var err error
	switch format {
	case FormatPNG:
		err = png.Encode(w, img)
	case FormatJPEG:
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: 92})
	case FormatGIF:
		err = gif.Encode(w, img, &gif.Options{NumColors: 256})
	case FormatBMP:
		err = bmp.Encode(w, img)
	case FormatTIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", format, err)
	}
	return nil
}

// EncodeBytes encodes img into a byte slice.
func EncodeBytes(img image.Image, format string) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, img, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
