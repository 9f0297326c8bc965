// Package geom provides integer pixel geometry shared by the placement
// strategies, the draw surface and the renderer.
//
// Rectangles are half-open: a Rect covers [Left, Right) x [Top, Bottom).
// Coordinates may be negative; whether they are relative to a center point
// or to a buffer's top-left corner depends on the caller.
package geom

import (
	"fmt"
	"image"
)

// Point is a location in pixels.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point { return Point{X: x, Y: y} }

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Size is a width and height in pixels.
type Size struct {
	W, H int
}

// Sz is shorthand for Size{W: w, H: h}.
func Sz(w, h int) Size { return Size{W: w, H: h} }

// Empty reports whether either dimension is non-positive.
func (s Size) Empty() bool { return s.W <= 0 || s.H <= 0 }

// Half returns the half-extent of s, rounded down.
func (s Size) Half() Point { return Point{s.W / 2, s.H / 2} }

func (s Size) String() string { return fmt.Sprintf("%dx%d", s.W, s.H) }

// Rect is an axis-aligned rectangle given by its minimum corner and size.
type Rect struct {
	Min  Point
	Size Size
}

// R builds a Rect from its top-left corner and size.
func R(x, y, w, h int) Rect { return Rect{Min: Point{x, y}, Size: Size{w, h}} }

func (r Rect) Left() int   { return r.Min.X }
func (r Rect) Top() int    { return r.Min.Y }
func (r Rect) Right() int  { return r.Min.X + r.Size.W }
func (r Rect) Bottom() int { return r.Min.Y + r.Size.H }

// Max returns the exclusive bottom-right corner.
func (r Rect) Max() Point { return Point{r.Right(), r.Bottom()} }

// Add translates r by p.
func (r Rect) Add(p Point) Rect { return Rect{Min: r.Min.Add(p), Size: r.Size} }

// Sub translates r by -p.
func (r Rect) Sub(p Point) Rect { return Rect{Min: r.Min.Sub(p), Size: r.Size} }

// Inflate grows r by d.W on the left and right and d.H on the top and bottom.
func (r Rect) Inflate(d Size) Rect {
	return Rect{
		Min:  Point{r.Min.X - d.W, r.Min.Y - d.H},
		Size: Size{r.Size.W + 2*d.W, r.Size.H + 2*d.H},
	}
}

// Intersects reports whether r and s share at least one pixel.
func (r Rect) Intersects(s Rect) bool {
	return r.Left() < s.Right() && s.Left() < r.Right() &&
		r.Top() < s.Bottom() && s.Top() < r.Bottom()
}

// Within reports whether r lies inside [-half, +half] on both axes.
func (r Rect) Within(half Point) bool {
	return r.Left() >= -half.X && r.Right() <= half.X &&
		r.Top() >= -half.Y && r.Bottom() <= half.Y
}

// Image converts r to an image.Rectangle.
func (r Rect) Image() image.Rectangle {
	return image.Rect(r.Left(), r.Top(), r.Right(), r.Bottom())
}

func (r Rect) String() string { return fmt.Sprintf("%s+%s", r.Min, r.Size) }

// Abs returns the absolute value of v.
func Abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
