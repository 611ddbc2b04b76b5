package paint

// PaintCallback is the untessellated pass-through of a CallbackShape.
type PaintCallback struct {
	// Rect is the screen area the callback may paint, in logical points.
	Rect Rect

	// Callback is the opaque value from the submitting CallbackShape.
	Callback any
}

// ClippedPrimitive is one draw job for the consuming renderer: either a
// mesh to rasterize or a callback to invoke, under a clip rectangle.
// Jobs paint in slice order.
type ClippedPrimitive struct {
	// ClipRect is the scissor rectangle in logical points.
	ClipRect Rect

	// Mesh is the triangle geometry. Nil for callback jobs.
	Mesh *Mesh

	// Callback is set instead of Mesh for custom-rendered jobs.
	Callback *PaintCallback
}

// IsCallback reports whether the job is a callback rather than a mesh.
func (p ClippedPrimitive) IsCallback() bool { return p.Callback != nil }

// builder accumulates tessellated meshes into the final draw-job list.
//
// Consecutive meshes sharing a clip rect and texture coalesce into one job.
// A job is closed when the clip or texture changes, when a callback
// interposes, or when appending would push the index count past MaxIndices.
// Splits land on triangle boundaries only, so every emitted mesh satisfies
// Mesh.Validate.
type builder struct {
	out []ClippedPrimitive

	clip    Rect
	current *Mesh
}

// add appends a tessellated mesh under a clip rect, coalescing with the
// running job when clip and texture match.
func (b *builder) add(clip Rect, mesh *Mesh) {
	if mesh.IsEmpty() {
		return
	}
	if b.current != nil && (b.clip != clip || b.current.Texture != mesh.Texture) {
		b.flush()
	}
	for _, chunk := range mesh.Split() {
		if b.current != nil && len(b.current.Indices)+len(chunk.Indices) > MaxIndices {
			b.flush()
		}
		if b.current == nil {
			b.clip = clip
			b.current = &Mesh{Texture: chunk.Texture}
		}
		b.current.Append(chunk)
	}
}

// addCallback closes the running mesh job and emits a callback job.
func (b *builder) addCallback(clip Rect, cb PaintCallback) {
	b.flush()
	b.out = append(b.out, ClippedPrimitive{
		ClipRect: clip,
		Callback: &cb,
	})
}

// flush closes the running mesh job, if any.
func (b *builder) flush() {
	if b.current == nil {
		return
	}
	b.out = append(b.out, ClippedPrimitive{
		ClipRect: b.clip,
		Mesh:     b.current,
	})
	b.current = nil
}

// finish returns the accumulated draw jobs.
func (b *builder) finish() []ClippedPrimitive {
	b.flush()
	return b.out
}
