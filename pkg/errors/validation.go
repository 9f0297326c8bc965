package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxDimension bounds every user-supplied pixel dimension.
const maxDimension = 16384

// ValidateSpacing validates the minimum spacing between placed words.
// Both axes must be positive.
func ValidateSpacing(w, h int) error {
	if w <= 0 || h <= 0 {
		return New(ErrCodeInvalidSpacing, "spacing must be positive, got %dx%d", w, h)
	}
	if w > maxDimension || h > maxDimension {
		return New(ErrCodeInvalidSpacing, "spacing too large (max %d)", maxDimension)
	}
	return nil
}

// ValidateOutputSize validates the optional output size.
// (0,0) means "keep the drawn size". Otherwise both dimensions must be
// positive.
func ValidateOutputSize(w, h int) error {
	if w == 0 && h == 0 {
		return nil
	}
	if w <= 0 || h <= 0 {
		return New(ErrCodeInvalidSize, "output size must be 0x0 or positive in both dimensions, got %dx%d", w, h)
	}
	if w > maxDimension || h > maxDimension {
		return New(ErrCodeInvalidSize, "output size too large (max %dx%d)", maxDimension, maxDimension)
	}
	return nil
}

// ValidateFontSizes validates the font size range in pixels.
func ValidateFontSizes(minSize, maxSize float64) error {
	if minSize <= 0 {
		return New(ErrCodeInvalidConfig, "minimum font size must be positive, got %g", minSize)
	}
	if maxSize < minSize {
		return New(ErrCodeInvalidConfig, "maximum font size %g is below minimum %g", maxSize, minSize)
	}
	if maxSize > 1024 {
		return New(ErrCodeInvalidConfig, "maximum font size too large (max 1024)")
	}
	return nil
}

// fontNameRegex matches registered font family names.
var fontNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// ValidateFontName validates a font family reference.
// A missing family is a configuration error, never silently defaulted.
func ValidateFontName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidFont, "font family is required")
	}
	if !fontNameRegex.MatchString(name) {
		return New(ErrCodeInvalidFont, "invalid font family name: %q", name)
	}
	return nil
}

// ValidatePath validates an output file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") {
		return New(ErrCodeInvalidPath, "path must name a file, not a directory")
	}

	return nil
}
