// Package canvas provides a growable raster draw surface with a centered
// coordinate system.
//
// Rectangles are committed in a frame whose origin is a fixed center point.
// The surface owns one RGBA buffer and keeps it large enough that every
// committed rectangle lies inside [-half, +half] on both axes, where half is
// the buffer's half-size. When a new rectangle would fall outside, the
// buffer is replaced by a larger one and the old pixels are pasted so that
// the two buffers' centers coincide.
//
// # Usage
//
//	s := canvas.New(center)
//	defer s.Release()
//	err := s.Commit(rect, func(dst draw.Image, r image.Rectangle) error {
//	    // paint inside r, which is in buffer pixel coordinates
//	    return nil
//	})
//	img := s.Snapshot()
//
// A Surface belongs to a single rendering run and is not safe for concurrent
// use.
package canvas

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/tagcloud/tagcloud/pkg/errors"
	"github.com/tagcloud/tagcloud/pkg/geom"
)

// DefaultMaxDimension bounds the buffer width and height.
const DefaultMaxDimension = 16384

// PaintFunc paints into dst inside r, given in buffer pixel coordinates.
type PaintFunc func(dst draw.Image, r image.Rectangle) error

// GrowFunc observes buffer replacements.
type GrowFunc func(from, to geom.Size)

// Option configures a Surface.
type Option func(*Surface)

// WithMaxDimension overrides the per-axis allocation limit.
func WithMaxDimension(n int) Option {
	return func(s *Surface) { s.maxDim = n }
}

// WithGrowHook registers fn to be called after every buffer replacement.
func WithGrowHook(fn GrowFunc) Option {
	return func(s *Surface) { s.onGrow = fn }
}

// Surface is a draw surface that grows around a fixed center.
type Surface struct {
	origin geom.Point
	buf    *image.RGBA
	maxDim int
	onGrow GrowFunc
	grows  int
}

// New creates an empty surface. origin is the source center that is
// subtracted from every committed rectangle. No buffer is allocated until
// the first commit.
func New(origin geom.Point, opts ...Option) *Surface {
	s := &Surface{origin: origin, maxDim: DefaultMaxDimension}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Commit guarantees capacity for r and then calls paint with r translated
// into buffer pixel coordinates. A nil paint only reserves capacity.
//
// If growing would exceed the allocation limit, Commit returns an
// ALLOCATION_FAILED error and the current buffer is left untouched.
func (s *Surface) Commit(r geom.Rect, paint PaintFunc) error {
	local := r.Sub(s.origin)

	if s.buf == nil {
		size := initialSize(local)
		buf, err := s.alloc(size)
		if err != nil {
			return err
		}
		s.buf = buf
	}
	if err := s.ensure(local); err != nil {
		return err
	}

	if paint == nil {
		return nil
	}
	half := s.Size().Half()
	return paint(s.buf, local.Add(half).Image())
}

// initialSize sizes the first buffer per axis as max(|min|, |max|) + extent.
func initialSize(r geom.Rect) geom.Size {
	return geom.Size{
		W: max(geom.Abs(r.Left()), geom.Abs(r.Right())) + r.Size.W,
		H: max(geom.Abs(r.Top()), geom.Abs(r.Bottom())) + r.Size.H,
	}
}

// ensure grows the buffer until r lies within its half-extent.
func (s *Surface) ensure(r geom.Rect) error {
	old := s.Size()
	cur := old.Half()
	req := geom.Point{
		X: max(geom.Abs(r.Left()), geom.Abs(r.Right()), cur.X),
		Y: max(geom.Abs(r.Top()), geom.Abs(r.Bottom()), cur.Y),
	}
	if req == cur {
		return nil
	}

	// An axis that already fits keeps its size; rounding an odd size down
	// to 2*half would shrink it by one pixel.
	size := old
	if req.X != cur.X {
		size.W = 2 * req.X
	}
	if req.Y != cur.Y {
		size.H = 2 * req.Y
	}
	buf, err := s.alloc(size)
	if err != nil {
		return err
	}
	// Frame coordinate c sits at buffer pixel c + size/2 in both buffers.
	d := size.Half().Sub(old.Half())
	offset := image.Pt(d.X, d.Y)
	draw.Draw(buf, s.buf.Bounds().Add(offset), s.buf, image.Point{}, draw.Src)

	s.buf = buf
	s.grows++
	if s.onGrow != nil {
		s.onGrow(old, size)
	}
	return nil
}

func (s *Surface) alloc(size geom.Size) (*image.RGBA, error) {
	if size.W > s.maxDim || size.H > s.maxDim {
		return nil, errors.New(errors.ErrCodeAllocationFailed,
			"surface %s exceeds limit %dx%d", size, s.maxDim, s.maxDim)
	}
	return image.NewRGBA(image.Rect(0, 0, size.W, size.H)), nil
}

// Size returns the current buffer size, or 0x0 before the first commit.
func (s *Surface) Size() geom.Size {
	if s.buf == nil {
		return geom.Size{}
	}
	b := s.buf.Bounds()
	return geom.Size{W: b.Dx(), H: b.Dy()}
}

// Grows returns how many times the buffer has been replaced.
func (s *Surface) Grows() int { return s.grows }

// Snapshot returns an independent copy of the buffer. Before the first
// commit it returns an empty 0x0 image.
func (s *Surface) Snapshot() *image.RGBA {
	if s.buf == nil {
		return image.NewRGBA(image.Rectangle{})
	}
	out := image.NewRGBA(s.buf.Bounds())
	copy(out.Pix, s.buf.Pix)
	return out
}

// Release drops the buffer. The surface can be reused afterwards and starts
// empty.
func (s *Surface) Release() {
	s.buf = nil
	s.grows = 0
}
