package output

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/transform"

	"github.com/tagcloud/tagcloud/pkg/geom"
)

// Resizer scales an image to an exact size.
type Resizer interface {
	Resize(img image.Image, size geom.Size) *image.RGBA
}

// Filter names accepted by [NewResizer].
const (
	FilterNearest = "nearest"
	FilterLinear  = "linear"
	FilterCatmull = "catmullrom"
	FilterLanczos = "lanczos"
)

// BildResizer resizes with github.com/anthonynsimon/bild.
type BildResizer struct {
	Filter transform.ResampleFilter
}

// NewResizer returns a BildResizer for the named filter. An empty name
// selects linear filtering.
func NewResizer(filter string) (BildResizer, error) {
	switch filter {
	case FilterLinear, "":
		return BildResizer{Filter: transform.Linear}, nil
	case FilterNearest:
		return BildResizer{Filter: transform.NearestNeighbor}, nil
	case FilterCatmull:
		return BildResizer{Filter: transform.CatmullRom}, nil
	case FilterLanczos:
		return BildResizer{Filter: transform.Lanczos}, nil
	default:
		return BildResizer{}, fmt.Errorf("unknown resize filter %q", filter)
	}
}

// Resize implements Resizer.
func (r BildResizer) Resize(img image.Image, size geom.Size) *image.RGBA {
	return transform.Resize(img, size.W, size.H, r.Filter)
}
