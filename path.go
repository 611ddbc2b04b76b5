package paint

import "math"

// maxSubdivisions bounds recursive curve flattening.
// 2^16 segments per curve is far below visible error at any tolerance.
const maxSubdivisions = 16

// FlattenQuadBez flattens a quadratic bezier into line segments by recursive
// subdivision, appending the resulting points (excluding p0, including p1)
// to out.
//
// Subdivision stops once the control point's deviation from the chord is
// below tolerance, so visual error is bounded independent of curve size, and
// a smaller tolerance never produces fewer points.
func FlattenQuadBez(out []Point, p0, c, p1 Point, tolerance float32) []Point {
	if tolerance <= 0 {
		tolerance = defaultTolerance
	}
	return flattenQuad(out, p0, c, p1, tolerance, 0)
}

func flattenQuad(out []Point, p0, c, p1 Point, tol float32, depth int) []Point {
	if depth >= maxSubdivisions || quadFlatEnough(p0, c, p1, tol) {
		return append(out, p1)
	}
	// de Casteljau split at t=0.5
	c0 := p0.Lerp(c, 0.5)
	c1 := c.Lerp(p1, 0.5)
	mid := c0.Lerp(c1, 0.5)
	out = flattenQuad(out, p0, c0, mid, tol, depth+1)
	return flattenQuad(out, mid, c1, p1, tol, depth+1)
}

// quadFlatEnough bounds the curve's deviation from the chord by the control
// point's distance to the chord midpoint: the true maximum deviation of a
// quadratic is exactly half that distance.
func quadFlatEnough(p0, c, p1 Point, tol float32) bool {
	mid := p0.Lerp(p1, 0.5)
	return c.Sub(mid).Length()*0.5 <= tol
}

// FlattenCubicBez flattens a cubic bezier into line segments by recursive
// subdivision, appending the resulting points (excluding p0, including p1)
// to out. Same tolerance contract as FlattenQuadBez.
func FlattenCubicBez(out []Point, p0, c0, c1, p1 Point, tolerance float32) []Point {
	if tolerance <= 0 {
		tolerance = defaultTolerance
	}
	return flattenCubic(out, p0, c0, c1, p1, tolerance, 0)
}

func flattenCubic(out []Point, p0, c0, c1, p1 Point, tol float32, depth int) []Point {
	if depth >= maxSubdivisions || cubicFlatEnough(p0, c0, c1, p1, tol) {
		return append(out, p1)
	}
	// de Casteljau split at t=0.5
	ab := p0.Lerp(c0, 0.5)
	bc := c0.Lerp(c1, 0.5)
	cd := c1.Lerp(p1, 0.5)
	abc := ab.Lerp(bc, 0.5)
	bcd := bc.Lerp(cd, 0.5)
	mid := abc.Lerp(bcd, 0.5)
	out = flattenCubic(out, p0, ab, abc, mid, tol, depth+1)
	return flattenCubic(out, mid, bcd, cd, p1, tol, depth+1)
}

// cubicFlatEnough bounds deviation by the larger control-point distance from
// the thirds of the chord, a conservative standard flatness test.
func cubicFlatEnough(p0, c0, c1, p1 Point, tol float32) bool {
	t1 := p0.Lerp(p1, 1.0/3.0)
	t2 := p0.Lerp(p1, 2.0/3.0)
	d := max(c0.Sub(t1).Length(), c1.Sub(t2).Length())
	return d*0.75 <= tol
}

// circleSteps returns how many segments approximate a circle of the given
// radius so the sagitta stays below tolerance. More vertices for bigger
// circles, monotonically more for smaller tolerances.
func circleSteps(radius, tolerance float32) int {
	if radius <= 0 {
		return 0
	}
	if tolerance <= 0 {
		tolerance = defaultTolerance
	}
	if tolerance >= radius {
		return 4
	}
	// sagitta s = r(1-cos(θ/2)) <= tol  =>  θ = 2·acos(1 - tol/r)
	theta := 2 * math.Acos(1-float64(tolerance/radius))
	n := int(math.Ceil(2 * math.Pi / theta))
	if n < 4 {
		n = 4
	}
	if n > 512 {
		n = 512
	}
	return n
}

// appendCircle appends n points of a full circle, clockwise in screen space
// (y down), starting at angle 0.
func appendCircle(out []Point, center Point, radius float32, n int) []Point {
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		out = append(out, Point{
			X: center.X + radius*float32(math.Cos(a)),
			Y: center.Y + radius*float32(math.Sin(a)),
		})
	}
	return out
}

// appendArc appends points along the arc from startAngle to endAngle
// (radians, screen space), excluding the start point, including the end.
func appendArc(out []Point, center Point, radius float32, startAngle, endAngle float64, steps int) []Point {
	if steps < 1 {
		steps = 1
	}
	for i := 1; i <= steps; i++ {
		a := startAngle + (endAngle-startAngle)*float64(i)/float64(steps)
		out = append(out, Point{
			X: center.X + radius*float32(math.Cos(a)),
			Y: center.Y + radius*float32(math.Sin(a)),
		})
	}
	return out
}

// appendRoundedRect appends the closed outline of rect with the given corner
// rounding, clockwise in screen space. Square corners contribute a single
// point; round ones an arc sampled per tolerance.
func appendRoundedRect(out []Point, rect Rect, rounding Rounding, tolerance float32) []Point {
	r := rounding.clamped(rect)
	if r.IsZero() {
		return append(out,
			rect.LeftTop(), rect.RightTop(), rect.RightBottom(), rect.LeftBottom())
	}

	corner := func(at Point, center Point, radius float32, from, to float64) {
		if radius <= 0 {
			out = append(out, at)
			return
		}
		steps := circleSteps(radius, tolerance) / 4
		if steps < 1 {
			steps = 1
		}
		out = append(out, Point{
			X: center.X + radius*float32(math.Cos(from)),
			Y: center.Y + radius*float32(math.Sin(from)),
		})
		out = appendArc(out, center, radius, from, to, steps)
	}

	// Quarter arcs, clockwise in screen space from the top-left corner.
	// Angles follow the y-down convention: -π/2 is up, π/2 is down.
	corner(rect.LeftTop(),
		Point{X: rect.Min.X + r.NW, Y: rect.Min.Y + r.NW}, r.NW,
		math.Pi, 3*math.Pi/2)
	corner(rect.RightTop(),
		Point{X: rect.Max.X - r.NE, Y: rect.Min.Y + r.NE}, r.NE,
		-math.Pi/2, 0)
	corner(rect.RightBottom(),
		Point{X: rect.Max.X - r.SE, Y: rect.Max.Y - r.SE}, r.SE,
		0, math.Pi/2)
	corner(rect.LeftBottom(),
		Point{X: rect.Min.X + r.SW, Y: rect.Max.Y - r.SW}, r.SW,
		math.Pi/2, math.Pi)
	return out
}
