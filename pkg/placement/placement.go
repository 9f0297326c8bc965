// Package placement defines the contract between the renderer and a word
// packing strategy, and provides an Archimedean spiral implementation.
//
// A [Strategy] creates one stateful [Placer] per rendering run. Each call to
// [Placer.PlaceNext] returns a rectangle that does not overlap any rectangle
// the same placer returned earlier. Rectangles are expressed in the same
// frame as the center passed to [Strategy.NewPlacer], so callers translate
// them into a center-relative frame by subtracting that center.
//
// The renderer treats placers as black boxes: it does no overlap checking of
// its own and never retries a failed placement.
package placement

import (
	"github.com/tagcloud/tagcloud/pkg/geom"
)

// Placer assigns positions to successive rectangles.
// Implementations are not safe for concurrent use.
type Placer interface {
	PlaceNext(size geom.Size) (geom.Rect, error)
}

// Strategy creates placers.
type Strategy interface {
	NewPlacer(center geom.Point, spacing geom.Size) Placer
}

// StrategyFunc adapts a function to the Strategy interface.
type StrategyFunc func(center geom.Point, spacing geom.Size) Placer

// NewPlacer calls f.
func (f StrategyFunc) NewPlacer(center geom.Point, spacing geom.Size) Placer {
	return f(center, spacing)
}

// PlacerFunc adapts a function to the Placer interface.
type PlacerFunc func(size geom.Size) (geom.Rect, error)

// PlaceNext calls f.
func (f PlacerFunc) PlaceNext(size geom.Size) (geom.Rect, error) {
	return f(size)
}

// Strategy names accepted by [ByName].
const (
	NameSpiral = "spiral"
)

// ByName returns the strategy registered under name.
func ByName(name string) (Strategy, bool) {
	switch name {
	case NameSpiral, "":
		return Spiral{}, true
	default:
		return nil, false
	}
}
