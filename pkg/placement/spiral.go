package placement

import (
	"math"

	"github.com/tagcloud/tagcloud/pkg/errors"
	"github.com/tagcloud/tagcloud/pkg/geom"
)

const (
	// DefaultStep is the angular increment between spiral samples, in radians.
	DefaultStep = 0.05

	// DefaultPitch is the radial distance gained per radian.
	DefaultPitch = 0.5

	// DefaultMaxSteps bounds the search for a single rectangle.
	DefaultMaxSteps = 2_000_000
)

// Spiral walks an Archimedean spiral r = Pitch*θ outward from the center and
// accepts the first position whose spacing-inflated box clears every
// previously placed box. Zero fields take the Default* values.
type Spiral struct {
	Step     float64
	Pitch    float64
	MaxSteps int
}

// NewPlacer returns a fresh spiral placer rooted at center.
func (s Spiral) NewPlacer(center geom.Point, spacing geom.Size) Placer {
	if s.Step <= 0 {
		s.Step = DefaultStep
	}
	if s.Pitch <= 0 {
		s.Pitch = DefaultPitch
	}
	if s.MaxSteps <= 0 {
		s.MaxSteps = DefaultMaxSteps
	}
	return &spiralPlacer{cfg: s, center: center, spacing: spacing}
}

type spiralPlacer struct {
	cfg     Spiral
	center  geom.Point
	spacing geom.Size
	placed  []geom.Rect // inflated by spacing
	theta   float64     // resume point, keeps later words from rescanning the core
}

// PlaceNext returns the first free position along the spiral for size.
func (p *spiralPlacer) PlaceNext(size geom.Size) (geom.Rect, error) {
	if size.Empty() {
		return geom.Rect{}, errors.New(errors.ErrCodeInvalidSize, "cannot place empty rectangle %s", size)
	}

	theta := p.theta
	for i := 0; i < p.cfg.MaxSteps; i++ {
		r := p.cfg.Pitch * theta
		cx := p.center.X + int(math.Round(r*math.Cos(theta)))
		cy := p.center.Y + int(math.Round(r*math.Sin(theta)))

		cand := geom.Rect{
			Min:  geom.Pt(cx-size.W/2, cy-size.H/2),
			Size: size,
		}
		if p.fits(cand) {
			p.placed = append(p.placed, cand.Inflate(p.spacing))
			p.rewind(theta)
			return cand, nil
		}
		theta += p.cfg.Step
	}
	return geom.Rect{}, errors.New(errors.ErrCodePlacementFailed,
		"no free position for %s after %d steps", size, p.cfg.MaxSteps)
}

func (p *spiralPlacer) fits(cand geom.Rect) bool {
	for _, r := range p.placed {
		if r.Intersects(cand) {
			return false
		}
	}
	return true
}

// rewind moves the resume point back a full turn so smaller words can still
// fill gaps near the last placement.
func (p *spiralPlacer) rewind(theta float64) {
	p.theta = max(0, theta-2*math.Pi)
}
