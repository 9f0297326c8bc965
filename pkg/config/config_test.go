package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tagcloud/tagcloud/pkg/errors"
	"github.com/tagcloud/tagcloud/pkg/pipeline"
)

const tomlConfig = `
font = "latin-modern-sans"
palette = ["#264653", "#2a9d8f"]
background = "#fdfdfd"
max_words = 80
keep_stop_words = true
spacing = [4, 2]
width = 640
height = 480
cache_dir = "~/tagcloud-cache"

[serve]
addr = ":9090"
redis = "redis://localhost:6379/1"
`

const yamlConfig = `
font: go-mono
scale: log
min_font_size: 8
max_font_size: 40
center: [100, 50]
keep_numbers: false
serve:
  addr: ":7070"
`

func TestParseTOML(t *testing.T) {
	f, err := Parse([]byte(tomlConfig), ".toml")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if f.Font != "latin-modern-sans" || f.MaxWords != 80 || f.Serve.Addr != ":9090" {
		t.Errorf("unexpected file: %+v", f)
	}
	if f.Spacing == nil || *f.Spacing != [2]int{4, 2} {
		t.Errorf("Spacing = %v", f.Spacing)
	}
}

func TestParseYAML(t *testing.T) {
	f, err := Parse([]byte(yamlConfig), ".yml")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if f.Font != "go-mono" || f.Scale != "log" || f.Serve.Addr != ":7070" {
		t.Errorf("unexpected file: %+v", f)
	}
	if f.KeepNumbers == nil || *f.KeepNumbers {
		t.Errorf("KeepNumbers = %v, want explicit false", f.KeepNumbers)
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	if _, err := Parse([]byte("colour = \"red\"\n"), ".toml"); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("toml: err = %v, want INVALID_CONFIG", err)
	}
	if _, err := Parse([]byte("colour: red\n"), ".yaml"); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("yaml: err = %v, want INVALID_CONFIG", err)
	}
}

func TestParseUnsupportedExtension(t *testing.T) {
	if _, err := Parse([]byte("{}"), ".json"); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("err = %v, want INVALID_CONFIG", err)
	}
}

func TestParseEmptyYAML(t *testing.T) {
	f, err := Parse(nil, ".yaml")
	if err != nil {
		t.Fatalf("empty yaml should parse: %v", err)
	}
	if f.Font != "" {
		t.Errorf("Font = %q", f.Font)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tagcloud.yaml")
	if err := os.WriteFile(path, []byte(yamlConfig), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if f.Font != "go-mono" {
		t.Errorf("Font = %q", f.Font)
	}
}

func TestLoadMissingExplicitPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestApply(t *testing.T) {
	f, err := Parse([]byte(tomlConfig), ".toml")
	if err != nil {
		t.Fatal(err)
	}
	opts := pipeline.Options{Font: "go", Format: "jpeg", MinLength: 5}
	f.Apply(&opts)

	if opts.Font != "latin-modern-sans" {
		t.Errorf("Font = %q, want config value", opts.Font)
	}
	if opts.Format != "jpeg" {
		t.Errorf("Format = %q, unset config values must not overwrite", opts.Format)
	}
	if opts.MinLength != 5 {
		t.Errorf("MinLength = %d", opts.MinLength)
	}
	if !opts.KeepStopWords || opts.SpacingW != 4 || opts.SpacingH != 2 {
		t.Errorf("opts = %+v", opts)
	}
	if opts.Width != 640 || opts.Height != 480 {
		t.Errorf("size = %dx%d", opts.Width, opts.Height)
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("applied options should validate: %v", err)
	}
}

func TestExpandCacheDir(t *testing.T) {
	f := &File{CacheDir: "~/tagcloud-cache"}
	dir, err := f.ExpandCacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir == f.CacheDir || filepath.Base(dir) != "tagcloud-cache" {
		t.Errorf("ExpandCacheDir = %q", dir)
	}

	empty := &File{}
	if dir, _ := empty.ExpandCacheDir(); dir != "" {
		t.Errorf("unset CacheDir expanded to %q", dir)
	}
}

func TestApplyMinLengthZero(t *testing.T) {
	f, err := Parse([]byte("min_length = 0\n"), ".toml")
	if err != nil {
		t.Fatal(err)
	}
	opts := pipeline.Options{}
	f.Apply(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.MinLength != 1 {
		t.Errorf("MinLength = %d, want 1 (no length filter)", opts.MinLength)
	}
}
