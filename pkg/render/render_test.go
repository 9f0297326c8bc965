package render

import (
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tagcloud/tagcloud/pkg/errors"
	"github.com/tagcloud/tagcloud/pkg/fonts"
	"github.com/tagcloud/tagcloud/pkg/geom"
	"github.com/tagcloud/tagcloud/pkg/output"
	"github.com/tagcloud/tagcloud/pkg/palette"
	"github.com/tagcloud/tagcloud/pkg/placement"
	"github.com/tagcloud/tagcloud/pkg/sizing"
	"github.com/tagcloud/tagcloud/pkg/wordfreq"
)

var words = []wordfreq.WordCount{
	{Text: "gopher", Frequency: 9},
	{Text: "channel", Frequency: 5},
	{Text: "goroutine", Frequency: 3},
	{Text: "defer", Frequency: 1},
	{Text: "iota", Frequency: 0},
}

var black = color.NRGBA{A: 255}

func testConfig(t *testing.T) Config {
	t.Helper()
	family, err := fonts.Lookup(fonts.DefaultFamily)
	require.NoError(t, err)
	return Config{
		Sizer:      sizing.Linear{Min: 12, Max: 48, MaxFrequency: 9},
		Palette:    palette.RoundRobin{black},
		Family:     family,
		Origin:     geom.Pt(400, 300),
		Background: color.White,
	}
}

// recordingPlacer wraps a real placer and records every request.
type recordingPlacer struct {
	inner placement.Placer
	sizes []geom.Size
	rects []geom.Rect
}

func (p *recordingPlacer) PlaceNext(size geom.Size) (geom.Rect, error) {
	p.sizes = append(p.sizes, size)
	r, err := p.inner.PlaceNext(size)
	if err == nil {
		p.rects = append(p.rects, r)
	}
	return r, err
}

func newPlacer(cfg Config) *recordingPlacer {
	return &recordingPlacer{inner: placement.Spiral{}.NewPlacer(cfg.Origin, geom.Sz(2, 2))}
}

func TestRenderDrawsEveryWord(t *testing.T) {
	cfg := testConfig(t)
	p := newPlacer(cfg)

	img, err := Render(context.Background(), cfg, p, words)
	require.NoError(t, err)

	require.Len(t, p.sizes, len(words))
	assert.False(t, img.Bounds().Empty())

	// Largest word first; sizes follow rank order.
	assert.GreaterOrEqual(t, p.sizes[0].H, p.sizes[len(p.sizes)-1].H)

	// Every placed rectangle fits inside the final image around its center.
	half := geom.Sz(img.Bounds().Dx(), img.Bounds().Dy()).Half()
	for _, r := range p.rects {
		assert.True(t, r.Sub(cfg.Origin).Within(half), "rect %v outside image", r)
	}

	var ink, opaque int
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.RGBAAt(x, y)
			if c.A == 255 {
				opaque++
			}
			if c.R < 128 {
				ink++
			}
		}
	}
	assert.Equal(t, b.Dx()*b.Dy(), opaque, "flattened image must be opaque")
	assert.Positive(t, ink, "expected dark glyph pixels")
}

func TestRenderCancelledBeforeLoop(t *testing.T) {
	cfg := testConfig(t)
	p := newPlacer(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	img, err := Render(ctx, cfg, p, words)
	require.NoError(t, err)
	assert.Empty(t, p.sizes, "no placement should be requested")
	assert.True(t, img.Bounds().Empty())
}

func TestRenderEmptyWordList(t *testing.T) {
	cfg := testConfig(t)
	img, err := Render(context.Background(), cfg, newPlacer(cfg), nil)
	require.NoError(t, err)
	assert.True(t, img.Bounds().Empty())
}

func TestRenderResizesBeforeFlatten(t *testing.T) {
	cfg := testConfig(t)
	resizer, err := output.NewResizer(output.FilterLinear)
	require.NoError(t, err)
	cfg.Resizer = resizer
	cfg.OutputSize = geom.Sz(64, 48)

	img, err := Render(context.Background(), cfg, newPlacer(cfg), words)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 64, 48), img.Bounds())

	_, _, _, a := img.At(0, 0).RGBA()
	assert.Equal(t, uint32(0xffff), a)
}

func TestRenderPlacementFailurePropagates(t *testing.T) {
	cfg := testConfig(t)
	boom := errors.New(errors.ErrCodePlacementFailed, "full")
	calls := 0
	p := placement.PlacerFunc(func(geom.Size) (geom.Rect, error) {
		calls++
		return geom.Rect{}, boom
	})

	_, err := Render(context.Background(), cfg, p, words)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls, "placements must not be retried")
}

func TestRenderAllocationFailurePropagates(t *testing.T) {
	cfg := testConfig(t)
	cfg.MaxDimension = 8

	_, err := Render(context.Background(), cfg, newPlacer(cfg), words)
	assert.True(t, errors.Is(err, errors.ErrCodeAllocationFailed), "got %v", err)
}

func TestRenderValidation(t *testing.T) {
	base := testConfig(t)

	tests := []struct {
		name   string
		mutate func(*Config)
		code   errors.Code
	}{
		{"missing family", func(c *Config) { c.Family = nil }, errors.ErrCodeInvalidFont},
		{"missing sizer", func(c *Config) { c.Sizer = nil }, errors.ErrCodeInvalidConfig},
		{"missing palette", func(c *Config) { c.Palette = nil }, errors.ErrCodeInvalidConfig},
		{"half output size", func(c *Config) { c.OutputSize = geom.Sz(10, 0) }, errors.ErrCodeInvalidSize},
		{"size without resizer", func(c *Config) { c.OutputSize = geom.Sz(10, 10) }, errors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			_, err := Render(context.Background(), cfg, newPlacer(cfg), words)
			assert.True(t, errors.Is(err, tt.code), "got %v, want %s", err, tt.code)
		})
	}
}

func TestFlatten(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 3))
	src.Set(1, 1, color.RGBA{255, 0, 0, 255})

	out := Flatten(src, color.White)
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, out.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, out.RGBAAt(1, 1))
	assert.Equal(t, src.Bounds(), out.Bounds())
}

func TestFlattenEmpty(t *testing.T) {
	out := Flatten(image.NewRGBA(image.Rectangle{}), color.White)
	assert.True(t, out.Bounds().Empty())
}
