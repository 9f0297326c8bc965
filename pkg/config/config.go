// Package config loads the optional tagcloud configuration file.
//
// The file is TOML or YAML, chosen by extension. Without an explicit path
// the loader looks for ~/.config/tagcloud/config.toml and treats a missing
// file as empty. Values from the file are applied to pipeline.Options
// first; command-line flags override them.
//
//	font = "latin-modern-sans"
//	palette = ["#264653", "#2a9d8f", "#e9c46a"]
//	background = "#fdfdfd"
//	max_words = 80
//
//	[serve]
//	addr = ":9090"
package config

import (
	"bytes"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	"github.com/tagcloud/tagcloud/pkg/errors"
	"github.com/tagcloud/tagcloud/pkg/pipeline"
)

// DefaultPath is the config file read when no path is given.
const DefaultPath = "~/.config/tagcloud/config.toml"

// File mirrors the config file. Zero values and nil pointers mean unset.
type File struct {
	MinLength     *int     `toml:"min_length" yaml:"min_length"`
	KeepStopWords *bool    `toml:"keep_stop_words" yaml:"keep_stop_words"`
	StopWords     []string `toml:"stop_words" yaml:"stop_words"`
	KeepNumbers   *bool    `toml:"keep_numbers" yaml:"keep_numbers"`
	MaxWords      int      `toml:"max_words" yaml:"max_words"`

	Strategy string  `toml:"strategy" yaml:"strategy"`
	Spacing  *[2]int `toml:"spacing" yaml:"spacing"`
	Center   *[2]int `toml:"center" yaml:"center"`

	Font        string   `toml:"font" yaml:"font"`
	FontFiles   []string `toml:"font_files" yaml:"font_files"`
	MinFontSize float64  `toml:"min_font_size" yaml:"min_font_size"`
	MaxFontSize float64  `toml:"max_font_size" yaml:"max_font_size"`
	Scale       string   `toml:"scale" yaml:"scale"`
	Palette     []string `toml:"palette" yaml:"palette"`
	PaletteSize int      `toml:"palette_size" yaml:"palette_size"`
	Seed        uint64   `toml:"seed" yaml:"seed"`
	Background  string   `toml:"background" yaml:"background"`
	Width       int      `toml:"width" yaml:"width"`
	Height      int      `toml:"height" yaml:"height"`
	Filter      string   `toml:"filter" yaml:"filter"`
	Format      string   `toml:"format" yaml:"format"`

	CacheDir string `toml:"cache_dir" yaml:"cache_dir"`

	Serve Serve `toml:"serve" yaml:"serve"`
}

// Serve holds settings for the HTTP server.
type Serve struct {
	Addr  string `toml:"addr" yaml:"addr"`
	Redis string `toml:"redis" yaml:"redis"`
}

// Load reads the config file at path, or DefaultPath when path is empty.
// A missing DefaultPath yields an empty File; a missing explicit path is
// an error.
func Load(path string) (*File, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "expand %s", path)
	}

	data, err := os.ReadFile(expanded)
	if stderrors.Is(err, fs.ErrNotExist) {
		if explicit {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return &File{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	return Parse(data, filepath.Ext(expanded))
}

// Parse decodes data as TOML (".toml") or YAML (".yaml", ".yml"). Unknown
// keys are rejected.
func Parse(data []byte, ext string) (*File, error) {
	var f File
	switch strings.ToLower(ext) {
	case ".toml", "":
		md, err := toml.Decode(string(data), &f)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse toml config")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && len(bytes.TrimSpace(data)) > 0 {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse yaml config")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unsupported config extension %q (use .toml, .yaml or .yml)", ext)
	}
	return &f, nil
}

// Apply copies every set value into opts.
func (f *File) Apply(opts *pipeline.Options) {
	if f.MinLength != nil {
		opts.MinLength = pipeline.MinLengthFor(*f.MinLength)
	}
	if f.KeepStopWords != nil {
		opts.KeepStopWords = *f.KeepStopWords
	}
	if len(f.StopWords) > 0 {
		opts.ExtraStopWords = f.StopWords
	}
	if f.KeepNumbers != nil {
		opts.KeepNumbers = *f.KeepNumbers
	}
	if f.MaxWords != 0 {
		opts.MaxWords = f.MaxWords
	}
	if f.Strategy != "" {
		opts.Strategy = f.Strategy
	}
	if f.Spacing != nil {
		opts.SpacingW, opts.SpacingH = f.Spacing[0], f.Spacing[1]
	}
	if f.Center != nil {
		opts.CenterX, opts.CenterY = f.Center[0], f.Center[1]
	}
	if f.Font != "" {
		opts.Font = f.Font
	}
	if f.MinFontSize != 0 {
		opts.MinFontSize = f.MinFontSize
	}
	if f.MaxFontSize != 0 {
		opts.MaxFontSize = f.MaxFontSize
	}
	if f.Scale != "" {
		opts.Scale = f.Scale
	}
	if len(f.Palette) > 0 {
		opts.Palette = f.Palette
	}
	if f.PaletteSize != 0 {
		opts.PaletteSize = f.PaletteSize
	}
	if f.Seed != 0 {
		opts.Seed = f.Seed
	}
	if f.Background != "" {
		opts.Background = f.Background
	}
	if f.Width != 0 || f.Height != 0 {
		opts.Width, opts.Height = f.Width, f.Height
	}
	if f.Filter != "" {
		opts.Filter = f.Filter
	}
	if f.Format != "" {
		opts.Format = f.Format
	}
}

// ExpandCacheDir returns CacheDir with a leading ~ expanded, or "" when
// unset.
func (f *File) ExpandCacheDir() (string, error) {
	if f.CacheDir == "" {
		return "", nil
	}
	dir, err := homedir.Expand(f.CacheDir)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "expand cache_dir")
	}
	return dir, nil
}
