package pipeline

import (
	"github.com/tagcloud/tagcloud/pkg/errors"
	"github.com/tagcloud/tagcloud/pkg/geom"
	"github.com/tagcloud/tagcloud/pkg/placement"
)

// Center returns the configured center offset.
func (o *Options) Center() geom.Point { return geom.Pt(o.CenterX, o.CenterY) }

// OutputSize returns the requested output size; 0x0 keeps the drawn size.
func (o *Options) OutputSize() geom.Size { return geom.Sz(o.Width, o.Height) }

// Spacing returns the minimum gap kept between word boxes.
func (o *Options) Spacing() geom.Size { return geom.Sz(o.SpacingW, o.SpacingH) }

// NewPlacer returns a fresh placer for one run. Placers are stateful and
// must not be shared between runs.
func NewPlacer(opts Options) (placement.Placer, error) {
	strategy, ok := placement.ByName(opts.Strategy)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown placement strategy %q", opts.Strategy)
	}
	return strategy.NewPlacer(opts.Center(), opts.Spacing()), nil
}
