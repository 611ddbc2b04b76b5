package paint

import "math"

// Rect represents an axis-aligned rectangle.
// Min is the top-left corner, Max the bottom-right (y grows downward).
//
// A Rect with Max < Min on either axis is negative: it contains nothing and
// intersects nothing. Clip-rect intersection collapses to such a rectangle
// instead of erroring, which suppresses rendering downstream.
type Rect struct {
	Min, Max Point
}

// RectFromMinMax creates a rectangle from two corner points without
// normalizing them. Use RectFromPoints if the corner order is unknown.
func RectFromMinMax(min, max Point) Rect {
	return Rect{Min: min, Max: max}
}

// RectFromPoints creates the smallest rectangle containing all given points.
func RectFromPoints(pts ...Point) Rect {
	r := Nothing()
	for _, p := range pts {
		r = r.ExtendWith(p)
	}
	return r
}

// RectFromCenterSize creates a rectangle centered on c with the given size.
func RectFromCenterSize(c Point, size Vec2) Rect {
	half := size.Mul(0.5)
	return Rect{
		Min: Point{X: c.X - half.X, Y: c.Y - half.Y},
		Max: Point{X: c.X + half.X, Y: c.Y + half.Y},
	}
}

// Everything returns the infinite rectangle containing all points.
func Everything() Rect {
	inf := float32(math.Inf(1))
	return Rect{
		Min: Point{X: -inf, Y: -inf},
		Max: Point{X: inf, Y: inf},
	}
}

// Nothing returns the inverted rectangle containing no points.
// It is the identity for ExtendWith and Union.
func Nothing() Rect {
	inf := float32(math.Inf(1))
	return Rect{
		Min: Point{X: inf, Y: inf},
		Max: Point{X: -inf, Y: -inf},
	}
}

// Width returns the width of the rectangle.
func (r Rect) Width() float32 { return r.Max.X - r.Min.X }

// Height returns the height of the rectangle.
func (r Rect) Height() float32 { return r.Max.Y - r.Min.Y }

// Size returns the dimensions of the rectangle as a vector.
func (r Rect) Size() Vec2 { return Vec2{X: r.Width(), Y: r.Height()} }

// Center returns the center point of the rectangle.
func (r Rect) Center() Point {
	return Point{X: (r.Min.X + r.Max.X) * 0.5, Y: (r.Min.Y + r.Max.Y) * 0.5}
}

// Area returns the area, or 0 for negative rectangles.
func (r Rect) Area() float32 {
	if r.IsNegative() {
		return 0
	}
	return r.Width() * r.Height()
}

// IsNegative returns true if the rectangle has negative width or height.
func (r Rect) IsNegative() bool {
	return r.Max.X < r.Min.X || r.Max.Y < r.Min.Y
}

// IsEmpty returns true if the rectangle covers zero area.
func (r Rect) IsEmpty() bool {
	return r.Max.X <= r.Min.X || r.Max.Y <= r.Min.Y
}

// Contains returns true if the point is inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// ContainsRect returns true if other lies entirely within r.
func (r Rect) ContainsRect(other Rect) bool {
	return r.Min.X <= other.Min.X && r.Min.Y <= other.Min.Y &&
		r.Max.X >= other.Max.X && r.Max.Y >= other.Max.Y
}

// Intersect returns the intersection of two rectangles.
// The result is negative (zero-area) when they do not overlap.
func (r Rect) Intersect(other Rect) Rect {
	return Rect{
		Min: Point{X: max(r.Min.X, other.Min.X), Y: max(r.Min.Y, other.Min.Y)},
		Max: Point{X: min(r.Max.X, other.Max.X), Y: min(r.Max.Y, other.Max.Y)},
	}
}

// Intersects returns true if the two rectangles share any area.
func (r Rect) Intersects(other Rect) bool {
	return !r.Intersect(other).IsEmpty()
}

// Union returns the smallest rectangle containing both r and other.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		Min: Point{X: min(r.Min.X, other.Min.X), Y: min(r.Min.Y, other.Min.Y)},
		Max: Point{X: max(r.Max.X, other.Max.X), Y: max(r.Max.Y, other.Max.Y)},
	}
}

// ExtendWith returns the rectangle grown to contain p.
func (r Rect) ExtendWith(p Point) Rect {
	return Rect{
		Min: Point{X: min(r.Min.X, p.X), Y: min(r.Min.Y, p.Y)},
		Max: Point{X: max(r.Max.X, p.X), Y: max(r.Max.Y, p.Y)},
	}
}

// Expand returns the rectangle grown by d on every side.
// Negative d shrinks it.
func (r Rect) Expand(d float32) Rect {
	return Rect{
		Min: Point{X: r.Min.X - d, Y: r.Min.Y - d},
		Max: Point{X: r.Max.X + d, Y: r.Max.Y + d},
	}
}

// Translate returns the rectangle moved by v.
func (r Rect) Translate(v Vec2) Rect {
	return Rect{Min: r.Min.Add(v), Max: r.Max.Add(v)}
}

// LeftTop returns the Min corner.
func (r Rect) LeftTop() Point { return r.Min }

// RightTop returns the top-right corner.
func (r Rect) RightTop() Point { return Point{X: r.Max.X, Y: r.Min.Y} }

// LeftBottom returns the bottom-left corner.
func (r Rect) LeftBottom() Point { return Point{X: r.Min.X, Y: r.Max.Y} }

// RightBottom returns the Max corner.
func (r Rect) RightBottom() Point { return r.Max }
