// Package render draws a ranked word list onto an image.
//
// [Render] drives one run: for every word, in rank order, it asks the sizer
// for a pixel size, measures the glyphs, asks the placer for a free
// rectangle, commits that rectangle to a [canvas.Surface] and paints the
// word inside it. Afterwards the drawn image is optionally resized and then
// flattened onto the background color.
//
// # Cancellation
//
// ctx is checked once, before the word loop. If it is already done, no word
// is drawn and the result is the background-filled snapshot of an empty
// surface (0x0). Once the loop has started it runs to completion.
//
// # Ordering
//
// Resizing happens on the transparent drawn image, before the background
// is applied, so interpolation blends against transparency rather than the
// background color.
package render

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/charmbracelet/log"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/tagcloud/tagcloud/pkg/canvas"
	"github.com/tagcloud/tagcloud/pkg/errors"
	"github.com/tagcloud/tagcloud/pkg/fonts"
	"github.com/tagcloud/tagcloud/pkg/geom"
	"github.com/tagcloud/tagcloud/pkg/output"
	"github.com/tagcloud/tagcloud/pkg/palette"
	"github.com/tagcloud/tagcloud/pkg/placement"
	"github.com/tagcloud/tagcloud/pkg/sizing"
	"github.com/tagcloud/tagcloud/pkg/wordfreq"
)

// Config holds the collaborators and settings for one run.
type Config struct {
	Sizer      sizing.Sizer
	Palette    palette.Palette
	Family     *fonts.Family
	Origin     geom.Point  // center the placer was created with
	Background color.Color // defaults to white
	OutputSize geom.Size   // (0,0) keeps the drawn size
	Resizer    output.Resizer

	// MaxDimension bounds the draw surface; 0 uses canvas.DefaultMaxDimension.
	MaxDimension int

	Logger *log.Logger
}

// Validate reports configuration errors before any drawing starts.
func (c *Config) Validate() error {
	if c.Family == nil {
		return errors.New(errors.ErrCodeInvalidFont, "font family is required")
	}
	if c.Sizer == nil {
		return errors.New(errors.ErrCodeInvalidConfig, "font sizer is required")
	}
	if c.Palette == nil {
		return errors.New(errors.ErrCodeInvalidConfig, "palette is required")
	}
	if err := errors.ValidateOutputSize(c.OutputSize.W, c.OutputSize.H); err != nil {
		return err
	}
	if !c.OutputSize.Empty() && c.Resizer == nil {
		return errors.New(errors.ErrCodeInvalidConfig, "output size %s set without a resizer", c.OutputSize)
	}
	if c.Background == nil {
		c.Background = color.White
	}
	if c.Logger == nil {
		c.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// Render draws words and returns the flattened image.
//
// Placement, allocation and paint failures abort the run and are returned
// as is; nothing is retried. The draw surface and all font faces are
// released on every return path.
func Render(ctx context.Context, cfg Config, placer placement.Placer, words []wordfreq.WordCount) (*image.RGBA, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if placer == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "placer is required")
	}

	opts := []canvas.Option{
		canvas.WithGrowHook(func(from, to geom.Size) {
			cfg.Logger.Debug("surface grew", "from", from, "to", to)
		}),
	}
	if cfg.MaxDimension > 0 {
		opts = append(opts, canvas.WithMaxDimension(cfg.MaxDimension))
	}
	surface := canvas.New(cfg.Origin, opts...)
	defer surface.Release()

	faces := newFaceCache(cfg.Family)
	defer faces.Close()

	if ctx.Err() != nil {
		cfg.Logger.Debug("cancelled before drawing", "words", len(words))
	} else {
		for i, w := range words {
			if err := drawWord(surface, faces, placer, cfg, i, w); err != nil {
				return nil, fmt.Errorf("draw %q: %w", w.Text, err)
			}
		}
		cfg.Logger.Debug("drew words", "count", len(words), "size", surface.Size(), "grows", surface.Grows())
	}

	img := surface.Snapshot()
	if !cfg.OutputSize.Empty() && !img.Bounds().Empty() {
		img = cfg.Resizer.Resize(img, cfg.OutputSize)
	}
	return Flatten(img, cfg.Background), nil
}

func drawWord(s *canvas.Surface, faces *faceCache, placer placement.Placer, cfg Config, index int, w wordfreq.WordCount) error {
	face, err := faces.get(cfg.Sizer.FontSize(w))
	if err != nil {
		return err
	}

	bounds, _ := font.BoundString(face, w.Text)
	minX, minY := bounds.Min.X.Floor(), bounds.Min.Y.Floor()
	extent := geom.Sz(bounds.Max.X.Ceil()-minX, bounds.Max.Y.Ceil()-minY)
	if extent.Empty() {
		cfg.Logger.Debug("skipping word without visible glyphs", "word", w.Text)
		return nil
	}

	rect, err := placer.PlaceNext(extent)
	if err != nil {
		return err
	}

	src := image.NewUniform(cfg.Palette.Color(index, w))
	return s.Commit(rect, func(dst draw.Image, r image.Rectangle) error {
		d := font.Drawer{
			Dst:  dst,
			Src:  src,
			Face: face,
			Dot:  fixed.P(r.Min.X-minX, r.Min.Y-minY),
		}
		d.DrawString(w.Text)
		return nil
	})
}

// Flatten returns a new image of img's size filled with bg and with img
// drawn over it.
func Flatten(img image.Image, bg color.Color) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Over)
	return out
}

// faceCache keeps one face per pixel size for the duration of a run.
type faceCache struct {
	family *fonts.Family
	faces  map[float64]font.Face
}

func newFaceCache(f *fonts.Family) *faceCache {
	return &faceCache{family: f, faces: make(map[float64]font.Face)}
}

func (c *faceCache) get(size float64) (font.Face, error) {
	if size <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "font size must be positive, got %g", size)
	}
	if f, ok := c.faces[size]; ok {
		return f, nil
	}
	f, err := c.family.Face(size)
	if err != nil {
		return nil, err
	}
	c.faces[size] = f
	return f, nil
}

// Close releases every cached face.
func (c *faceCache) Close() {
	for _, f := range c.faces {
		_ = f.Close()
	}
	clear(c.faces)
}
