package pipeline

import (
	"context"
	"image"
	"image/color"
	"time"

	"github.com/tagcloud/tagcloud/pkg/fonts"
	"github.com/tagcloud/tagcloud/pkg/observability"
	"github.com/tagcloud/tagcloud/pkg/output"
	"github.com/tagcloud/tagcloud/pkg/palette"
	"github.com/tagcloud/tagcloud/pkg/render"
	"github.com/tagcloud/tagcloud/pkg/sizing"
	"github.com/tagcloud/tagcloud/pkg/wordfreq"
)

// renderPlan holds the collaborators resolved from Options before any
// input is read.
type renderPlan struct {
	family     *fonts.Family
	palette    palette.Palette
	background color.Color
	resizer    output.Resizer
}

func newRenderPlan(opts *Options) (*renderPlan, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	family, err := fonts.Lookup(opts.Font)
	if err != nil {
		return nil, err
	}
	pal, err := opts.palette()
	if err != nil {
		return nil, err
	}
	bg, err := palette.ParseColor(opts.Background)
	if err != nil {
		return nil, err
	}
	p := &renderPlan{family: family, palette: pal, background: bg}
	if opts.Width > 0 {
		rs, err := output.NewResizer(opts.Filter)
		if err != nil {
			return nil, err
		}
		p.resizer = rs
	}
	return p, nil
}

func (p *renderPlan) render(ctx context.Context, words []wordfreq.WordCount, opts Options) (*image.RGBA, error) {
	sizer, err := sizing.ForWords(opts.Scale, opts.MinFontSize, opts.MaxFontSize, words)
	if err != nil {
		return nil, err
	}
	placer, err := NewPlacer(opts)
	if err != nil {
		return nil, err
	}

	cfg := render.Config{
		Sizer:      sizer,
		Palette:    p.palette,
		Family:     p.family,
		Origin:     opts.Center(),
		Background: p.background,
		OutputSize: opts.OutputSize(),
		Resizer:    p.resizer,
		Logger:     opts.Logger,
	}

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, len(words))
	img, err := render.Render(ctx, cfg, placer, words)
	w, h := 0, 0
	if img != nil {
		w, h = img.Bounds().Dx(), img.Bounds().Dy()
	}
	observability.Pipeline().OnRenderComplete(ctx, w, h, time.Since(start), err)
	return img, err
}

// Render draws an already ranked word list with opts. It is the render
// stage of Execute without caching or encoding.
func Render(ctx context.Context, words []wordfreq.WordCount, opts Options) (*image.RGBA, error) {
	plan, err := newRenderPlan(&opts)
	if err != nil {
		return nil, err
	}
	return plan.render(ctx, words, opts)
}
