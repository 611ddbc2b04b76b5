package paint

import (
	"github.com/gogpu/paint/atlas"
)

// Tessellator converts shapes into anti-aliased triangle meshes.
//
// A Tessellator is cheap state: the options, the atlas white-texel UV and
// scratch buffers reused between shapes. It is not safe for concurrent use;
// parallel passes give each worker its own Tessellator (see
// TessellateShapes).
type Tessellator struct {
	opts    TessellationOptions
	atl     *atlas.Atlas
	whiteUV Point

	// scratch buffers, reused across shapes.
	points  []Point
	normals []Vec2
}

// NewTessellator creates a tessellator drawing flat colors from the atlas
// white texel.
func NewTessellator(a *atlas.Atlas, opts TessellationOptions) *Tessellator {
	if opts.Tolerance <= 0 {
		opts.Tolerance = defaultTolerance
	}
	if opts.FeatheringSize <= 0 {
		opts.Feathering = false
	}
	u, v := a.WhiteUV()
	return &Tessellator{
		opts:    opts,
		atl:     a,
		whiteUV: Point{X: u, Y: v},
	}
}

// Texture returns the texture a shape's geometry samples, which decides
// draw-job batching: flat-color geometry and text use the atlas, images and
// meshes bring their own.
func (t *Tessellator) Texture(shape Shape) atlas.TextureID {
	switch s := shape.(type) {
	case ImageShape:
		return s.Texture
	case MeshShape:
		if s.Mesh != nil {
			return s.Mesh.Texture
		}
		return atlas.AtlasTexture
	default:
		return atlas.AtlasTexture
	}
}

// Tessellate appends the shape's triangles to out.
// out.Texture must already equal Texture(shape); the caller (the batching
// pass) guarantees it. Degenerate shapes append nothing.
func (t *Tessellator) Tessellate(shape Shape, out *Mesh) {
	switch s := shape.(type) {
	case CircleShape:
		t.tessellateCircle(s, out)
	case RectShape:
		t.tessellateRect(s, out)
	case PathShape:
		t.tessellatePath(s, out)
	case TextShape:
		t.tessellateText(s, out)
	case ImageShape:
		t.tessellateImage(s, out)
	case MeshShape:
		if s.Mesh != nil && s.Mesh.validGeometry() {
			out.Append(s.Mesh)
		} else if s.Mesh != nil {
			Logger().Warn("malformed mesh shape dropped",
				"indices", len(s.Mesh.Indices), "vertices", len(s.Mesh.Vertices))
		}
	case CallbackShape:
		// Passed through as its own draw job by TessellateShapes.
	default:
		Logger().Warn("unknown shape kind dropped")
	}
}

func (t *Tessellator) tessellateCircle(s CircleShape, out *Mesh) {
	if s.Radius <= 0 {
		return
	}
	n := circleSteps(s.Radius, t.opts.Tolerance)
	t.points = appendCircle(t.points[:0], s.Center, s.Radius, n)
	t.fillClosed(t.points, s.Fill, out)
	t.strokeClosed(t.points, s.Stroke, out)
}

func (t *Tessellator) tessellateRect(s RectShape, out *Mesh) {
	if s.Rect.IsEmpty() {
		return
	}
	t.points = appendRoundedRect(t.points[:0], s.Rect, s.Rounding, t.opts.Tolerance)
	t.fillClosed(t.points, s.Fill, out)
	t.strokeClosed(t.points, s.Stroke, out)
}

func (t *Tessellator) tessellatePath(s PathShape, out *Mesh) {
	t.points = append(t.points[:0], s.Points...)
	pts := dedupePoints(t.points)
	if s.Closed {
		t.fillClosed(pts, s.Fill, out)
		t.strokeClosed(pts, s.Stroke, out)
	} else {
		t.strokeOpen(pts, s.Stroke, out)
	}
}

func (t *Tessellator) tessellateText(s TextShape, out *Mesh) {
	if s.Galley == nil || s.Color.IsTransparent() {
		return
	}
	if s.Galley.Epoch != t.atl.Epoch() {
		// Stale galleys reference dead UVs; the caller should have
		// re-requested it through Fonts.Layout after the rebuild signal.
		Logger().Warn("stale galley dropped", "epoch", s.Galley.Epoch)
		return
	}
	origin := s.Pos.Round().ToVec2()
	for i := range s.Galley.Rows {
		row := &s.Galley.Rows[i]
		for j := range row.Glyphs {
			gl := &row.Glyphs[j]
			if !gl.Visible {
				continue
			}
			out.AddRectWithUV(
				Rect{
					Min: Point{X: gl.MinX, Y: gl.MinY}.Add(origin),
					Max: Point{X: gl.MaxX, Y: gl.MaxY}.Add(origin),
				},
				Rect{
					Min: Point{X: gl.U0, Y: gl.V0},
					Max: Point{X: gl.U1, Y: gl.V1},
				},
				s.Color,
			)
		}
	}
}

func (t *Tessellator) tessellateImage(s ImageShape, out *Mesh) {
	if s.Rect.IsEmpty() {
		return
	}
	uv := s.UV
	if uv == (Rect{}) {
		uv = Rect{Max: Point{X: 1, Y: 1}}
	}
	tint := s.Tint
	if tint == (Color32{}) {
		tint = White
	}
	out.AddRectWithUV(s.Rect, uv, tint)
}

// fillClosed fan-triangulates a closed convex (or star-shaped) outline,
// with a feathered rim when anti-aliasing is on.
//
// With feathering, the fill is shrunk by half a feather and an alpha ramp is
// extruded half a feather outward, so the shape's perceived size is
// unchanged while its edge fades over exactly one feather width.
func (t *Tessellator) fillClosed(points []Point, color Color32, out *Mesh) {
	n := len(points)
	if n < 3 || color.IsTransparent() {
		return
	}

	if !t.opts.Feathering {
		base := uint32(len(out.Vertices))
		for _, p := range points {
			out.AddVertex(Vertex{Pos: p, UV: t.whiteUV, Color: color})
		}
		for i := 2; i < n; i++ {
			out.AddTriangle(base, base+uint32(i-1), base+uint32(i))
		}
		return
	}

	t.normals = outwardNormals(t.normals[:0], points)
	half := t.opts.FeatheringSize * 0.5
	base := uint32(len(out.Vertices))

	// Vertex layout: inner (full color) at base+2i, outer (transparent)
	// at base+2i+1.
	for i, p := range points {
		out.AddVertex(Vertex{Pos: p.Add(t.normals[i].Mul(-half)), UV: t.whiteUV, Color: color})
		out.AddVertex(Vertex{Pos: p.Add(t.normals[i].Mul(half)), UV: t.whiteUV, Color: Transparent})
	}

	// Interior fan over the inner ring.
	for i := 2; i < n; i++ {
		out.AddTriangle(base, base+uint32(2*(i-1)), base+uint32(2*i))
	}
	// Feather quad per edge.
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		inI := base + uint32(2*i)
		outI := inI + 1
		inJ := base + uint32(2*j)
		outJ := inJ + 1
		out.AddTriangle(inI, outI, outJ)
		out.AddTriangle(inI, outJ, inJ)
	}
}

// strokeClosed strokes a closed outline.
func (t *Tessellator) strokeClosed(points []Point, stroke Stroke, out *Mesh) {
	t.strokePath(points, stroke, true, out)
}

// strokeOpen strokes an open polyline with butt caps.
func (t *Tessellator) strokeOpen(points []Point, stroke Stroke, out *Mesh) {
	t.strokePath(points, stroke, false, out)
}

// strokePath expands a polyline of width w into a ribbon of paired vertices
// offset ±w/2 along the averaged segment normals (miter joins, clamped).
//
// With feathering there are three regimes:
//   - transparent/zero width: nothing
//   - w <= feather: a feather-wide line whose color alpha is scaled by
//     w/feather, so hairlines stay crisp instead of dropping out
//   - w > feather: a ribbon with a half-feather fade on both rims
func (t *Tessellator) strokePath(points []Point, stroke Stroke, closed bool, out *Mesh) {
	n := len(points)
	if n < 2 || stroke.IsEmpty() {
		return
	}

	t.normals = pathNormals(t.normals[:0], points, closed)
	feather := t.opts.FeatheringSize

	segs := n - 1
	if closed {
		segs = n
	}

	switch {
	case !t.opts.Feathering:
		base := uint32(len(out.Vertices))
		half := stroke.Width * 0.5
		for i, p := range points {
			out.AddVertex(Vertex{Pos: p.Add(t.normals[i].Mul(half)), UV: t.whiteUV, Color: stroke.Color})
			out.AddVertex(Vertex{Pos: p.Add(t.normals[i].Mul(-half)), UV: t.whiteUV, Color: stroke.Color})
		}
		for i := 0; i < segs; i++ {
			j := (i + 1) % n
			a := base + uint32(2*i)
			b := base + uint32(2*j)
			out.AddTriangle(a, a+1, b+1)
			out.AddTriangle(a, b+1, b)
		}

	case stroke.Width <= feather:
		// Thin stroke: feather-wide line, coverage folded into alpha.
		color := stroke.Color.MulAlpha(stroke.Width / feather)
		if color.IsTransparent() {
			return
		}
		base := uint32(len(out.Vertices))
		for i, p := range points {
			out.AddVertex(Vertex{Pos: p.Add(t.normals[i].Mul(feather)), UV: t.whiteUV, Color: Transparent})
			out.AddVertex(Vertex{Pos: p, UV: t.whiteUV, Color: color})
			out.AddVertex(Vertex{Pos: p.Add(t.normals[i].Mul(-feather)), UV: t.whiteUV, Color: Transparent})
		}
		for i := 0; i < segs; i++ {
			j := (i + 1) % n
			a := base + uint32(3*i)
			b := base + uint32(3*j)
			out.AddTriangle(a, a+1, b+1)
			out.AddTriangle(a, b+1, b)
			out.AddTriangle(a+1, a+2, b+2)
			out.AddTriangle(a+1, b+2, b+1)
		}

	default:
		// Thick stroke: solid core with a fade rim on both sides.
		inner := stroke.Width*0.5 - feather*0.5
		outer := stroke.Width*0.5 + feather*0.5
		base := uint32(len(out.Vertices))
		for i, p := range points {
			nrm := t.normals[i]
			out.AddVertex(Vertex{Pos: p.Add(nrm.Mul(outer)), UV: t.whiteUV, Color: Transparent})
			out.AddVertex(Vertex{Pos: p.Add(nrm.Mul(inner)), UV: t.whiteUV, Color: stroke.Color})
			out.AddVertex(Vertex{Pos: p.Add(nrm.Mul(-inner)), UV: t.whiteUV, Color: stroke.Color})
			out.AddVertex(Vertex{Pos: p.Add(nrm.Mul(-outer)), UV: t.whiteUV, Color: Transparent})
		}
		for i := 0; i < segs; i++ {
			j := (i + 1) % n
			a := base + uint32(4*i)
			b := base + uint32(4*j)
			for k := uint32(0); k < 3; k++ {
				out.AddTriangle(a+k, a+k+1, b+k+1)
				out.AddTriangle(a+k, b+k+1, b+k)
			}
		}
	}
}

// dedupePoints removes consecutive (near-)duplicate points in place,
// including a duplicated first/last pair. Duplicates produce zero-length
// edges whose normals are undefined.
func dedupePoints(pts []Point) []Point {
	const epsSq = 1e-8
	if len(pts) < 2 {
		return pts
	}
	kept := pts[:1]
	for _, p := range pts[1:] {
		if p.DistanceSq(kept[len(kept)-1]) > epsSq {
			kept = append(kept, p)
		}
	}
	if len(kept) > 1 && kept[0].DistanceSq(kept[len(kept)-1]) <= epsSq {
		kept = kept[:len(kept)-1]
	}
	return kept
}

// outwardNormals computes per-point normals of a closed outline pointing
// away from the interior, averaged over the two adjacent edges with miter
// scaling (clamped) so joins stay tight without spiking.
func outwardNormals(out []Vec2, points []Point) []Vec2 {
	n := len(points)
	sign := float32(-1)
	if signedArea(points) < 0 {
		sign = 1
	}
	for i := 0; i < n; i++ {
		prev := points[(i+n-1)%n]
		next := points[(i+1)%n]
		n0 := points[i].Sub(prev).Normalize().Perp()
		n1 := next.Sub(points[i]).Normalize().Perp()
		out = append(out, miter(n0, n1).Mul(sign))
	}
	return out
}

// pathNormals computes per-point normals for stroking. Endpoints of open
// paths take their single edge's normal; interior points get the clamped
// miter average.
func pathNormals(out []Vec2, points []Point, closed bool) []Vec2 {
	n := len(points)
	edge := func(i, j int) Vec2 {
		return points[j].Sub(points[i]).Normalize().Perp()
	}
	for i := 0; i < n; i++ {
		switch {
		case closed:
			n0 := edge((i+n-1)%n, i)
			n1 := edge(i, (i+1)%n)
			out = append(out, miter(n0, n1))
		case i == 0:
			out = append(out, edge(0, 1))
		case i == n-1:
			out = append(out, edge(n-2, n-1))
		default:
			out = append(out, miter(edge(i-1, i), edge(i, i+1)))
		}
	}
	return out
}

// miterLimit caps how far a miter join may extend, in multiples of the
// half-width. Sharper corners fall back toward a bevel.
const miterLimit = 2

// miter averages two unit edge normals into a join normal whose length
// compensates for the corner angle, clamped to miterLimit.
func miter(n0, n1 Vec2) Vec2 {
	avg := n0.Add(n1).Mul(0.5)
	lsq := avg.LengthSq()
	if lsq < 1e-6 {
		// 180° turn; any perpendicular works.
		return n0
	}
	scale := min(1/lsq, miterLimit)
	return avg.Mul(scale)
}

// signedArea is the shoelace sum of a closed outline. In this y-down
// coordinate system a visually clockwise outline has positive area.
func signedArea(points []Point) float32 {
	var sum float32
	n := len(points)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += points[i].X*points[j].Y - points[j].X*points[i].Y
	}
	return sum * 0.5
}
