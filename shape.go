package paint

import (
	"github.com/gogpu/paint/atlas"
	"github.com/gogpu/paint/text"
)

// Shape is one paint primitive submitted by the widget layer.
//
// The set of shapes is closed: the tessellator dispatches with an exhaustive
// type switch, and downstream everything is uniform Vertex/Mesh data. New
// kinds are added by defining a new variant here and a case there, not by
// implementing Shape outside this package.
type Shape interface {
	// VisualBounds returns the rectangle covering everything the shape
	// paints, including stroke width but excluding the feather. Used for
	// clip culling.
	VisualBounds() Rect

	// isShape seals the interface.
	isShape()
}

// Rounding describes per-corner radii of a rectangle.
type Rounding struct {
	// NW, NE, SW, SE are the corner radii in logical points.
	NW, NE, SW, SE float32
}

// EvenRounding gives all four corners the same radius.
func EvenRounding(r float32) Rounding {
	return Rounding{NW: r, NE: r, SW: r, SE: r}
}

// IsZero returns true if all corners are square.
func (r Rounding) IsZero() bool {
	return r.NW == 0 && r.NE == 0 && r.SW == 0 && r.SE == 0
}

// clamped limits every radius to half the rectangle's smaller dimension.
func (r Rounding) clamped(rect Rect) Rounding {
	m := min(rect.Width(), rect.Height()) * 0.5
	return Rounding{
		NW: min(r.NW, m), NE: min(r.NE, m),
		SW: min(r.SW, m), SE: min(r.SE, m),
	}
}

// CircleShape paints a filled and/or stroked circle.
type CircleShape struct {
	Center Point
	Radius float32
	Fill   Color32
	Stroke Stroke
}

// VisualBounds implements Shape.
func (s CircleShape) VisualBounds() Rect {
	return RectFromCenterSize(s.Center, V2(s.Radius*2, s.Radius*2)).Expand(s.Stroke.Width / 2)
}

func (CircleShape) isShape() {}

// RectShape paints a filled and/or stroked rectangle with optional rounded
// corners.
type RectShape struct {
	Rect     Rect
	Rounding Rounding
	Fill     Color32
	Stroke   Stroke
}

// VisualBounds implements Shape.
func (s RectShape) VisualBounds() Rect {
	return s.Rect.Expand(s.Stroke.Width / 2)
}

func (RectShape) isShape() {}

// PathShape paints an arbitrary polyline, optionally closed, optionally
// filled.
//
// Filling triangulates with a fan, so filled paths must be convex (or at
// least star-shaped around their first point). Self-intersecting paths are
// a caller contract violation: the tessellator produces best-effort output
// and will not detect them.
type PathShape struct {
	// Points are the polyline vertices. Curves must be flattened before
	// submission (see FlattenQuadBez / FlattenCubicBez).
	Points []Point

	// Closed connects the last point back to the first.
	Closed bool

	// Fill fills the polygon interior. Only meaningful when Closed.
	Fill Color32

	Stroke Stroke
}

// VisualBounds implements Shape.
func (s PathShape) VisualBounds() Rect {
	return RectFromPoints(s.Points...).Expand(s.Stroke.Width / 2)
}

func (PathShape) isShape() {}

// TextShape paints a laid-out galley at a position.
type TextShape struct {
	// Pos is the galley origin (top-left corner) in logical points.
	Pos Point

	// Galley is the shaped layout, produced by Fonts.Layout.
	Galley *text.Galley

	// Color overrides the paint color of every glyph.
	Color Color32
}

// VisualBounds implements Shape.
func (s TextShape) VisualBounds() Rect {
	if s.Galley == nil {
		return Nothing()
	}
	return Rect{
		Min: s.Pos,
		Max: s.Pos.Add(V2(s.Galley.Width, s.Galley.Height)),
	}
}

func (TextShape) isShape() {}

// ImageShape paints a registered texture into a rectangle.
type ImageShape struct {
	// Texture identifies a texture registered with atlas.Manager.
	Texture atlas.TextureID

	// Rect is the destination in logical points.
	Rect Rect

	// UV selects the texture sub-rectangle in normalized coordinates.
	// The zero value is replaced by the full texture.
	UV Rect

	// Tint multiplies the texture; White paints it unchanged.
	Tint Color32
}

// VisualBounds implements Shape.
func (s ImageShape) VisualBounds() Rect { return s.Rect }

func (ImageShape) isShape() {}

// MeshShape submits pre-built triangle geometry unchanged.
type MeshShape struct {
	Mesh *Mesh
}

// VisualBounds implements Shape.
func (s MeshShape) VisualBounds() Rect {
	if s.Mesh == nil {
		return Nothing()
	}
	return s.Mesh.Bounds()
}

func (MeshShape) isShape() {}

// CallbackShape reserves a screen rectangle for custom rendering by the
// consuming backend. The engine passes it through untessellated, in paint
// order, as its own draw job.
type CallbackShape struct {
	// Rect is the screen area the callback may paint.
	Rect Rect

	// Callback is an opaque value handed to the renderer.
	Callback any
}

// VisualBounds implements Shape.
func (s CallbackShape) VisualBounds() Rect { return s.Rect }

func (CallbackShape) isShape() {}
