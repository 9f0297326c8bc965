// Package fonts provides the font families available for rendering.
//
// Families are compiled into the binary: the Go fonts from
// golang.org/x/image/font/gofont and a subset of Latin Modern from
// github.com/go-fonts/latin-modern. Additional TrueType or OpenType files
// can be registered at runtime with [LoadFile].
//
// Parsed fonts are cached per family; faces are created per pixel size and
// must be closed by the caller.
package fonts

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/go-fonts/latin-modern/lmmono10regular"
	"github.com/go-fonts/latin-modern/lmroman10regular"
	"github.com/go-fonts/latin-modern/lmsans10regular"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/tagcloud/tagcloud/pkg/errors"
)

// DefaultFamily is the family used when none is configured.
const DefaultFamily = "go"

// Family is a named, parsed font.
type Family struct {
	Name string
	font *opentype.Font
}

// Face returns a face rendering the family at size pixels.
// The caller must Close the face.
func (f *Family) Face(size float64) (font.Face, error) {
	face, err := opentype.NewFace(f.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFont, err, "create %s face at %gpx", f.Name, size)
	}
	return face, nil
}

var (
	builtin = map[string][]byte{
		"go":                 goregular.TTF,
		"go-bold":            gobold.TTF,
		"go-italic":          goitalic.TTF,
		"go-mono":            gomono.TTF,
		"latin-modern-roman": lmroman10regular.TTF,
		"latin-modern-sans":  lmsans10regular.TTF,
		"latin-modern-mono":  lmmono10regular.TTF,
	}

	mu     sync.Mutex
	parsed = map[string]*Family{}
	extra  = map[string][]byte{}
)

// Names returns the registered family names in sorted order.
func Names() []string {
	mu.Lock()
	defer mu.Unlock()
	names := make([]string, 0, len(builtin)+len(extra))
	for n := range builtin {
		names = append(names, n)
	}
	for n := range extra {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Lookup returns the family registered under name, parsing it on first use.
func Lookup(name string) (*Family, error) {
	if err := errors.ValidateFontName(name); err != nil {
		return nil, err
	}

	mu.Lock()
	defer mu.Unlock()

	if f, ok := parsed[name]; ok {
		return f, nil
	}
	data, ok := builtin[name]
	if !ok {
		data, ok = extra[name]
	}
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidFont, "unknown font family %q", name)
	}

	fnt, err := opentype.Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFont, err, "parse font %q", name)
	}
	f := &Family{Name: name, font: fnt}
	parsed[name] = f
	return f, nil
}

// FileData returns the contents of a family registered with LoadFile.
// Built-in families report false.
func FileData(name string) ([]byte, bool) {
	mu.Lock()
	defer mu.Unlock()
	data, ok := extra[name]
	return data, ok
}

// LoadFile registers the font at path under a name derived from its base
// name (lowercased, extension stripped, spaces and underscores as hyphens).
// Names of built-in families are rejected.
func LoadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeFileNotFound, err, "read font %s", path)
	}
	if _, err := opentype.Parse(data); err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidFont, err, "parse font %s", path)
	}

	name := familyName(path)
	if err := errors.ValidateFontName(name); err != nil {
		return "", err
	}
	if _, ok := builtin[name]; ok {
		return "", errors.New(errors.ErrCodeInvalidFont,
			"font %s clashes with built-in family %q; rename the file", path, name)
	}

	mu.Lock()
	defer mu.Unlock()
	extra[name] = data
	delete(parsed, name)
	return name, nil
}

func familyName(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	base = strings.ToLower(base)
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '_' {
			return '-'
		}
		return r
	}, base)
}
