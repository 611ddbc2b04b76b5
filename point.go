package paint

import "math"

// Point represents a 2D position in logical coordinates.
// Positions are float32 because they feed GPU vertex buffers unchanged.
// For displacements and directions, see Vec2.
type Point struct {
	X, Y float32
}

// Pt is a convenience function to create a Point.
func Pt(x, y float32) Point {
	return Point{X: x, Y: y}
}

// Add returns the point translated by the vector.
func (p Point) Add(v Vec2) Point {
	return Point{X: p.X + v.X, Y: p.Y + v.Y}
}

// Sub returns the displacement from q to p.
func (p Point) Sub(q Point) Vec2 {
	return Vec2{X: p.X - q.X, Y: p.Y - q.Y}
}

// Lerp performs linear interpolation between two points.
// t=0 returns p, t=1 returns q.
func (p Point) Lerp(q Point, t float32) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

// Distance returns the Euclidean distance between two points.
func (p Point) Distance(q Point) float32 {
	dx := float64(p.X - q.X)
	dy := float64(p.Y - q.Y)
	return float32(math.Sqrt(dx*dx + dy*dy))
}

// DistanceSq returns the squared distance between two points.
// Faster than Distance when only comparing magnitudes.
func (p Point) DistanceSq(q Point) float32 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return dx*dx + dy*dy
}

// Round returns the point with both coordinates rounded to the nearest
// integer. Glyph quads are pixel-aligned with this to avoid blurry text.
func (p Point) Round() Point {
	return Point{
		X: float32(math.Round(float64(p.X))),
		Y: float32(math.Round(float64(p.Y))),
	}
}

// ToVec2 converts the position to a displacement from the origin.
func (p Point) ToVec2() Vec2 {
	return Vec2(p)
}
