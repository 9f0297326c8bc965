// Package pipeline runs the tagcloud stages end to end: read and count the
// words of an input text, render them, and encode the image.
//
// The CLI and the HTTP server share this package so both apply the same
// defaults, validation and caching.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, input, pipeline.Options{
//	    Font:   "latin-modern-sans",
//	    Format: "png",
//	})
//	if err != nil {
//	    return err
//	}
//	if result.Cancelled {
//	    return context.Canceled
//	}
//	os.WriteFile("cloud.png", result.Artifact, 0o644)
//
// # Validation
//
// Every option is checked, and the font, palette and strategy are
// resolved, before the input is read. A bad option never costs a run.
//
// # Cancellation
//
// ctx is the only cancellation source. Counting stops at the next token and
// keeps what it has; rendering checks ctx once before drawing. A run whose
// ctx is done when it finishes is reported through [Result.Cancelled]
// rather than an error, and its output is neither encoded nor cached.
package pipeline

import (
	"image"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tagcloud/tagcloud/pkg/cache"
	"github.com/tagcloud/tagcloud/pkg/errors"
	"github.com/tagcloud/tagcloud/pkg/fonts"
	"github.com/tagcloud/tagcloud/pkg/output"
	"github.com/tagcloud/tagcloud/pkg/palette"
	"github.com/tagcloud/tagcloud/pkg/placement"
	"github.com/tagcloud/tagcloud/pkg/sizing"
	"github.com/tagcloud/tagcloud/pkg/tokens"
	"github.com/tagcloud/tagcloud/pkg/wordfreq"
)

// Defaults shared by the CLI, the config file and the HTTP API.
const (
	DefaultMinLength   = 3
	DefaultMaxWords    = 150
	DefaultMinFontSize = 12.0
	DefaultMaxFontSize = 72.0
	DefaultBackground  = "white"
	DefaultSpacing     = 2

	DefaultFont     = fonts.DefaultFamily
	DefaultScale    = sizing.ScaleLinear
	DefaultStrategy = placement.NameSpiral
	DefaultFilter   = output.FilterLinear
	DefaultFormat   = output.DefaultFormat
)

// Options configures a run. It is JSON-encoded in HTTP requests.
type Options struct {
	// Token options
	MinLength      int      `json:"min_length,omitempty"`
	KeepStopWords  bool     `json:"keep_stop_words,omitempty"`
	ExtraStopWords []string `json:"stop_words,omitempty"`
	KeepNumbers    bool     `json:"keep_numbers,omitempty"`
	MaxWords       int      `json:"max_words,omitempty"`

	// Layout options
	Strategy string `json:"strategy,omitempty"`
	CenterX  int    `json:"center_x,omitempty"`
	CenterY  int    `json:"center_y,omitempty"`
	SpacingW int    `json:"spacing_w,omitempty"`
	SpacingH int    `json:"spacing_h,omitempty"`

	// Render options
	Font        string   `json:"font,omitempty"`
	MinFontSize float64  `json:"min_font_size,omitempty"`
	MaxFontSize float64  `json:"max_font_size,omitempty"`
	Scale       string   `json:"scale,omitempty"`
	Palette     []string `json:"palette,omitempty"`
	PaletteSize int      `json:"palette_size,omitempty"` // generate this many colors instead of Palette
	Seed        uint64   `json:"seed,omitempty"`
	Background  string   `json:"background,omitempty"`
	Width       int      `json:"width,omitempty"` // output size; 0x0 keeps the drawn size
	Height      int      `json:"height,omitempty"`
	Filter      string   `json:"filter,omitempty"`
	Format      string   `json:"format,omitempty"`

	// Refresh skips cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// Result holds the outputs of [Runner.Execute].
type Result struct {
	// Words is the ranked list that was drawn, after MaxWords truncation.
	Words []wordfreq.WordCount

	// Image is the composited image. It is nil when the artifact came from
	// the cache.
	Image *image.RGBA

	// Artifact is the encoded image in Format. Empty when Cancelled.
	Artifact []byte
	Format   string

	// Cancelled reports that ctx was done before the run finished.
	Cancelled bool

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats holds timing and size information for a run.
type Stats struct {
	UniqueWords   int // before MaxWords truncation
	DrawnWords    int
	Width         int
	Height        int
	AggregateTime time.Duration
	RenderTime    time.Duration
	EncodeTime    time.Duration
}

// CacheInfo records which stages were served from the cache.
type CacheInfo struct {
	WordsHit    bool
	ArtifactHit bool
}

// ValidateAndSetDefaults checks every option and fills in defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForWords(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// MinLengthFor converts an explicitly requested minimum word length into
// an option value. A zero MinLength option means "use the default", so an
// explicit 0 becomes 1, which keeps every word.
func MinLengthFor(n int) int {
	if n == 0 {
		return 1
	}
	return n
}

// SetWordsDefaults fills in token defaults.
func (o *Options) SetWordsDefaults() {
	if o.MinLength == 0 {
		o.MinLength = DefaultMinLength
	}
	if o.MaxWords == 0 {
		o.MaxWords = DefaultMaxWords
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForWords validates the options used by counting.
func (o *Options) ValidateForWords() error {
	if o.MinLength < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "min_length must be non-negative, got %d", o.MinLength)
	}
	if o.MaxWords < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "max_words must be non-negative, got %d", o.MaxWords)
	}
	o.SetWordsDefaults()
	return nil
}

// SetRenderDefaults fills in layout and render defaults.
func (o *Options) SetRenderDefaults() {
	if o.SpacingW == 0 && o.SpacingH == 0 {
		o.SpacingW, o.SpacingH = DefaultSpacing, DefaultSpacing
	}
	if o.Strategy == "" {
		o.Strategy = DefaultStrategy
	}
	if o.Font == "" {
		o.Font = DefaultFont
	}
	if o.MinFontSize == 0 {
		o.MinFontSize = DefaultMinFontSize
	}
	if o.MaxFontSize == 0 {
		o.MaxFontSize = max(DefaultMaxFontSize, o.MinFontSize)
	}
	if o.Scale == "" {
		o.Scale = DefaultScale
	}
	if o.Background == "" {
		o.Background = DefaultBackground
	}
	if o.Filter == "" {
		o.Filter = DefaultFilter
	}
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	o.Format = output.NormalizeFormat(o.Format)
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender sets render defaults and validates layout and render
// options. Fonts are checked by name only; [Runner] loads them.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()

	if _, ok := placement.ByName(o.Strategy); !ok {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown placement strategy %q", o.Strategy)
	}
	if err := errors.ValidateSpacing(o.SpacingW, o.SpacingH); err != nil {
		return err
	}
	if err := errors.ValidateFontName(o.Font); err != nil {
		return err
	}
	if err := errors.ValidateFontSizes(o.MinFontSize, o.MaxFontSize); err != nil {
		return err
	}
	if o.Scale != sizing.ScaleLinear && o.Scale != sizing.ScaleLog {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid scale %q (must be linear or log)", o.Scale)
	}
	if o.PaletteSize < 0 {
		return errors.New(errors.ErrCodeInvalidColor, "palette_size must be non-negative, got %d", o.PaletteSize)
	}
	if _, err := o.palette(); err != nil {
		return err
	}
	if _, err := palette.ParseColor(o.Background); err != nil {
		return err
	}
	if err := errors.ValidateOutputSize(o.Width, o.Height); err != nil {
		return err
	}
	if _, err := output.NewResizer(o.Filter); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid filter")
	}
	return output.ValidateFormat(o.Format)
}

// TokenOptions returns the tokenizer settings.
func (o *Options) TokenOptions() tokens.Options {
	return tokens.Options{
		MinLength:      o.MinLength,
		StopWords:      !o.KeepStopWords,
		ExtraStopWords: o.ExtraStopWords,
		KeepNumbers:    o.KeepNumbers,
	}
}

// WordsKeyOpts returns the cache key options for counting.
func (o *Options) WordsKeyOpts() cache.WordsKeyOpts {
	return cache.WordsKeyOpts{
		MinLength:      o.MinLength,
		StopWords:      !o.KeepStopWords,
		ExtraStopWords: o.ExtraStopWords,
		KeepNumbers:    o.KeepNumbers,
		MaxWords:       o.MaxWords,
	}
}

// ArtifactKeyOpts returns the cache key options for rendering. Families
// loaded from files are keyed by their content as well as their name.
func (o *Options) ArtifactKeyOpts() cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Words:       o.WordsKeyOpts(),
		Strategy:    o.Strategy,
		CenterX:     o.CenterX,
		CenterY:     o.CenterY,
		SpacingW:    o.SpacingW,
		SpacingH:    o.SpacingH,
		Font:        o.Font,
		MinFontSize: o.MinFontSize,
		MaxFontSize: o.MaxFontSize,
		Scale:       o.Scale,
		Palette:     o.Palette,
		PaletteSize: o.PaletteSize,
		Seed:        o.Seed,
		Background:  strings.ToLower(o.Background),
		Width:       o.Width,
		Height:      o.Height,
		Filter:      o.Filter,
		Format:      o.Format,
	}
	if data, ok := fonts.FileData(o.Font); ok {
		opts.FontDigest = cache.Hash(data)
	}
	return opts
}

func (o *Options) palette() (palette.Palette, error) {
	switch {
	case o.PaletteSize > 0:
		return palette.Generate(o.PaletteSize, o.Seed), nil
	case len(o.Palette) > 0:
		return palette.ParseHex(o.Palette)
	default:
		return palette.Default(), nil
	}
}
