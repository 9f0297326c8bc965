package fonts

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/tagcloud/tagcloud/pkg/errors"
)

func TestNamesIncludesBuiltins(t *testing.T) {
	names := Names()
	for _, want := range []string{"go", "go-bold", "go-mono", "latin-modern-roman", "latin-modern-sans"} {
		if !slices.Contains(names, want) {
			t.Errorf("Names() missing %q: %v", want, names)
		}
	}
	if !slices.IsSorted(names) {
		t.Errorf("Names() not sorted: %v", names)
	}
}

func TestLookupAndFace(t *testing.T) {
	f, err := Lookup(DefaultFamily)
	if err != nil {
		t.Fatalf("Lookup(%q) error: %v", DefaultFamily, err)
	}

	face, err := f.Face(32)
	if err != nil {
		t.Fatalf("Face(32) error: %v", err)
	}
	defer face.Close()

	bounds, advance := font.BoundString(face, "hello")
	if advance <= 0 {
		t.Errorf("advance = %v, want positive", advance)
	}
	if bounds.Max.X <= bounds.Min.X || bounds.Max.Y <= bounds.Min.Y {
		t.Errorf("empty bounds %v", bounds)
	}
}

func TestLookupCachesFamily(t *testing.T) {
	a, err := Lookup("go-mono")
	if err != nil {
		t.Fatal(err)
	}
	b, _ := Lookup("go-mono")
	if a != b {
		t.Error("Lookup should return the cached family")
	}
}

func TestLookupErrors(t *testing.T) {
	tests := []struct {
		name string
		font string
	}{
		{"empty", ""},
		{"unknown", "comic-sans"},
		{"invalid name", "../etc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Lookup(tt.font)
			if !errors.Is(err, errors.ErrCodeInvalidFont) {
				t.Errorf("Lookup(%q) error = %v, want INVALID_FONT", tt.font, err)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "My_Mono.ttf")
	if err := os.WriteFile(path, gomono.TTF, 0644); err != nil {
		t.Fatal(err)
	}

	name, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if name != "my-mono" {
		t.Errorf("LoadFile() name = %q, want my-mono", name)
	}
	if _, err := Lookup(name); err != nil {
		t.Errorf("Lookup(%q) after LoadFile error: %v", name, err)
	}
}

func TestLoadFileRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.ttf")
	if err := os.WriteFile(path, []byte("not a font"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); !errors.Is(err, errors.ErrCodeInvalidFont) {
		t.Errorf("LoadFile(garbage) error = %v, want INVALID_FONT", err)
	}
}

func TestLoadFileRejectsBuiltinName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Go.ttf")
	if err := os.WriteFile(path, gomono.TTF, 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); !errors.Is(err, errors.ErrCodeInvalidFont) {
		t.Errorf("LoadFile(%s) error = %v, want INVALID_FONT", path, err)
	}
	if _, ok := FileData("go"); ok {
		t.Error("built-in family must not report file data")
	}
}

func TestFileData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data-mono.otf")
	if err := os.WriteFile(path, gomono.TTF, 0644); err != nil {
		t.Fatal(err)
	}
	name, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	data, ok := FileData(name)
	if !ok || len(data) != len(gomono.TTF) {
		t.Errorf("FileData(%q) = %d bytes, ok=%v", name, len(data), ok)
	}
}
