package common

import "math"

// Rect is an axis-aligned rectangle with its origin at the top-left corner.
type Rect struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	W float64 `json:"w" yaml:"w"`
	H float64 `json:"h" yaml:"h"`
}

// DefaultRect is the 16x16 box handed out when an editor adds a fresh source or bounds.
func DefaultRect() Rect {
	return Rect{W: 16, H: 16}
}

func (r Rect) Left() float64   { return r.X }
func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Top() float64    { return r.Y }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Combine returns the smallest rect covering both r and other.
func (r Rect) Combine(other Rect) Rect {
	x := math.Min(r.X, other.X)
	y := math.Min(r.Y, other.Y)
	w := math.Max(r.Right(), other.Right()) - x
	h := math.Max(r.Bottom(), other.Bottom()) - y
	return Rect{X: x, Y: y, W: w, H: h}
}

func (r Rect) Offset(v Vec2) Rect {
	return Rect{X: r.X + v.X, Y: r.Y + v.Y, W: r.W, H: r.H}
}

// Overlaps reports whether the two rects intersect. Touching edges count.
func (r Rect) Overlaps(other Rect) bool {
	return r.Left() <= other.Right() &&
		r.Right() >= other.Left() &&
		r.Top() <= other.Bottom() &&
		r.Bottom() >= other.Top()
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Left() && p.X <= r.Right() && p.Y >= r.Top() && p.Y <= r.Bottom()
}

func (r Rect) Scale(s float64) Rect {
	return Rect{X: r.X * s, Y: r.Y * s, W: r.W * s, H: r.H * s}
}

// Align snaps every edge to the nearest whole pixel.
func (r Rect) Align() Rect {
	left := math.Round(r.Left())
	right := math.Round(r.Right())
	top := math.Round(r.Top())
	bottom := math.Round(r.Bottom())
	return Rect{X: left, Y: top, W: right - left, H: bottom - top}
}

// Normalize turns negative widths and heights into positive ones covering the same area.
func (r Rect) Normalize() Rect {
	if r.W < 0 {
		r.X += r.W
		r.W = -r.W
	}
	if r.H < 0 {
		r.Y += r.H
		r.H = -r.H
	}
	return r
}
