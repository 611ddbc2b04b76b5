package paint

import (
	"fmt"

	"github.com/gogpu/paint/atlas"
)

// MaxIndices is the largest number of indices one finished Mesh may hold:
// the 16-bit index-buffer ceiling. Meshes that would exceed it are split
// into multiple draw jobs by Builder, never truncated.
const MaxIndices = 1<<16 - 1

// Vertex is one GPU vertex: position, normalized texture coordinate and a
// premultiplied color. The color doubles as the anti-aliasing channel: the
// feather extrusion fades it to transparent across one pixel.
type Vertex struct {
	// Pos is the position in logical points.
	Pos Point

	// UV is the texture coordinate, normalized to the mesh's texture.
	// Flat-color vertices all use the atlas white-texel UV.
	UV Point

	// Color is the premultiplied vertex color.
	Color Color32
}

// Mesh is triangle geometry referencing exactly one texture.
// Triangles are index triplets into Vertices; paint order within a mesh is
// triangle order.
type Mesh struct {
	// Indices into Vertices, three per triangle.
	Indices []uint32

	// Vertices of the mesh.
	Vertices []Vertex

	// Texture sampled by all vertices of this mesh.
	Texture atlas.TextureID
}

// IsEmpty returns true if the mesh holds no triangles.
func (m *Mesh) IsEmpty() bool {
	return len(m.Indices) == 0
}

// Clear empties the mesh while keeping allocations.
func (m *Mesh) Clear() {
	m.Indices = m.Indices[:0]
	m.Vertices = m.Vertices[:0]
}

// Validate checks the mesh invariants: index count is a multiple of 3,
// every index addresses a vertex, and the index count fits the 16-bit
// index-buffer ceiling.
func (m *Mesh) Validate() error {
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("paint: index count %d is not a multiple of 3", len(m.Indices))
	}
	if len(m.Indices) > MaxIndices {
		return fmt.Errorf("paint: index count %d exceeds %d", len(m.Indices), MaxIndices)
	}
	n := uint32(len(m.Vertices))
	for _, i := range m.Indices {
		if i >= n {
			return fmt.Errorf("paint: index %d out of range (%d vertices)", i, n)
		}
	}
	return nil
}

// validGeometry checks the triangle structure without the index ceiling.
// Submitted meshes may exceed MaxIndices; the batching pass splits them.
func (m *Mesh) validGeometry() bool {
	if len(m.Indices)%3 != 0 {
		return false
	}
	n := uint32(len(m.Vertices))
	for _, i := range m.Indices {
		if i >= n {
			return false
		}
	}
	return true
}

// Reserve grows the underlying buffers for the given extra counts.
func (m *Mesh) Reserve(indices, vertices int) {
	if cap(m.Indices)-len(m.Indices) < indices {
		grown := make([]uint32, len(m.Indices), len(m.Indices)+indices)
		copy(grown, m.Indices)
		m.Indices = grown
	}
	if cap(m.Vertices)-len(m.Vertices) < vertices {
		grown := make([]Vertex, len(m.Vertices), len(m.Vertices)+vertices)
		copy(grown, m.Vertices)
		m.Vertices = grown
	}
}

// AddVertex appends a vertex and returns its index.
func (m *Mesh) AddVertex(v Vertex) uint32 {
	m.Vertices = append(m.Vertices, v)
	return uint32(len(m.Vertices) - 1)
}

// AddTriangle appends one triangle.
func (m *Mesh) AddTriangle(a, b, c uint32) {
	m.Indices = append(m.Indices, a, b, c)
}

// Append merges other into m, offsetting the appended indices by m's
// current vertex count. Both meshes must reference the same texture; an
// empty m adopts other's texture.
func (m *Mesh) Append(other *Mesh) {
	if other.IsEmpty() {
		return
	}
	if len(m.Vertices) == 0 {
		m.Texture = other.Texture
	}
	offset := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, other.Vertices...)
	for _, i := range other.Indices {
		m.Indices = append(m.Indices, offset+i)
	}
}

// AddRectWithUV appends two triangles covering rect, with texture
// coordinates interpolated over uv and a flat color. Used for glyph quads
// and image shapes.
func (m *Mesh) AddRectWithUV(rect Rect, uv Rect, color Color32) {
	idx := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices,
		Vertex{Pos: rect.LeftTop(), UV: uv.LeftTop(), Color: color},
		Vertex{Pos: rect.RightTop(), UV: uv.RightTop(), Color: color},
		Vertex{Pos: rect.LeftBottom(), UV: uv.LeftBottom(), Color: color},
		Vertex{Pos: rect.RightBottom(), UV: uv.RightBottom(), Color: color},
	)
	m.Indices = append(m.Indices,
		idx, idx+1, idx+2,
		idx+2, idx+1, idx+3,
	)
}

// Split divides the mesh into chunks that each fit MaxIndices, cutting only
// at triangle boundaries. Vertices shared across a cut are duplicated into
// the chunk that needs them; each chunk's indices are remapped to its own
// vertex array. A mesh already within the limit is returned as-is.
func (m *Mesh) Split() []*Mesh {
	if len(m.Indices) <= MaxIndices {
		return []*Mesh{m}
	}
	var out []*Mesh
	remap := make(map[uint32]uint32)
	cur := &Mesh{Texture: m.Texture}
	for tri := 0; tri+2 < len(m.Indices); tri += 3 {
		if len(cur.Indices)+3 > MaxIndices {
			out = append(out, cur)
			cur = &Mesh{Texture: m.Texture}
			clear(remap)
		}
		for k := 0; k < 3; k++ {
			old := m.Indices[tri+k]
			idx, ok := remap[old]
			if !ok {
				idx = cur.AddVertex(m.Vertices[old])
				remap[old] = idx
			}
			cur.Indices = append(cur.Indices, idx)
		}
	}
	if !cur.IsEmpty() {
		out = append(out, cur)
	}
	return out
}

// Bounds returns the bounding rectangle of all vertices.
func (m *Mesh) Bounds() Rect {
	r := Nothing()
	for i := range m.Vertices {
		r = r.ExtendWith(m.Vertices[i].Pos)
	}
	return r
}

// Translate moves all vertices by v.
func (m *Mesh) Translate(v Vec2) {
	for i := range m.Vertices {
		m.Vertices[i].Pos = m.Vertices[i].Pos.Add(v)
	}
}
