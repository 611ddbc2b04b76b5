package paint

// Stroke describes how a shape outline is painted.
// The zero value paints nothing.
type Stroke struct {
	// Width is the stroke width in logical pixels.
	Width float32

	// Color is the stroke color.
	Color Color32
}

// NewStroke creates a stroke.
func NewStroke(width float32, color Color32) Stroke {
	return Stroke{Width: width, Color: color}
}

// IsEmpty returns true if the stroke paints nothing.
func (s Stroke) IsEmpty() bool {
	return s.Width <= 0 || s.Color.IsTransparent()
}
