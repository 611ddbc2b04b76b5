package paint

// defaultTolerance is the curve flattening tolerance in logical points.
const defaultTolerance = 0.1

// TessellationOptions configures how shapes become triangles.
type TessellationOptions struct {
	// Feathering extrudes every filled and stroked edge by a thin
	// alpha-faded border, anti-aliasing without multisampling.
	Feathering bool

	// FeatheringSize is the width of the fade in logical points.
	// Normally the size of one physical pixel (1 / pixels-per-point).
	FeatheringSize float32

	// Tolerance bounds the deviation of flattened curves from the true
	// curve, in logical points. Smaller values mean more vertices.
	Tolerance float32

	// Workers sets how many goroutines tessellate shape slices in
	// parallel; values below 2 run serially. Output is identical
	// regardless (see TessellateShapes).
	Workers int
}

// DefaultTessellationOptions returns options for a 1:1 pixel ratio.
func DefaultTessellationOptions() TessellationOptions {
	return TessellationOptions{
		Feathering:     true,
		FeatheringSize: 1,
		Tolerance:      defaultTolerance,
		Workers:        1,
	}
}

// ForPixelsPerPoint scales the feather to one physical pixel.
func (o TessellationOptions) ForPixelsPerPoint(ppp float32) TessellationOptions {
	if ppp > 0 {
		o.FeatheringSize = 1 / ppp
	}
	return o
}
