package atlas

import (
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"
)

// Texture describes an externally registered texture.
// The engine never decodes image files; callers hand it raw pixels and the
// renderer uploads them. Textures registered here are the fallback for
// anything that cannot live in the atlas (large images, ErrAtlasFull).
type Texture struct {
	// ID is the handle referenced by image shapes and draw jobs.
	ID TextureID

	// Width and Height are the dimensions in texels.
	Width, Height int

	// Format is the pixel format of Pixels.
	Format gputypes.TextureFormat

	// Pixels is the raw texel data, Width*Height*bytes-per-texel long.
	Pixels []byte
}

// Manager is the slot registry for user-supplied textures.
// It hands out TextureIDs; ID 0 is reserved for the atlas itself.
//
// Manager is safe for concurrent use.
type Manager struct {
	mu       sync.Mutex
	next     TextureID
	textures map[TextureID]*Texture
	atlas    *Atlas
}

// NewManager creates a texture manager sharing the given atlas.
func NewManager(a *Atlas) *Manager {
	return &Manager{
		next:     AtlasTexture + 1,
		textures: make(map[TextureID]*Texture),
		atlas:    a,
	}
}

// Register adds a texture and returns its ID.
// pixels must match width*height*bytes-per-texel for the given format.
func (m *Manager) Register(width, height int, format gputypes.TextureFormat, pixels []byte) (TextureID, error) {
	if width <= 0 || height <= 0 {
		return 0, fmt.Errorf("atlas: invalid texture size %dx%d", width, height)
	}
	if bpp := bytesPerTexel(format); bpp > 0 && len(pixels) != width*height*bpp {
		return 0, fmt.Errorf("atlas: pixel data is %d bytes, want %d for %dx%d", len(pixels), width*height*bpp, width, height)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.next
	m.next++
	m.textures[id] = &Texture{
		ID:     id,
		Width:  width,
		Height: height,
		Format: format,
		Pixels: pixels,
	}
	logger().Debug("texture registered", "id", id, "w", width, "h", height)
	return id, nil
}

// Free releases a texture slot. Using the ID afterwards is a caller error.
func (m *Manager) Free(id TextureID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.textures, id)
}

// Get returns the texture for an ID, or false if it was never registered
// or has been freed. The atlas ID returns false; use Atlas instead.
func (m *Manager) Get(id TextureID) (*Texture, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.textures[id]
	return t, ok
}

// Atlas returns the shared atlas this manager fronts.
func (m *Manager) Atlas() *Atlas {
	return m.atlas
}

// bytesPerTexel returns the texel stride for the formats the engine accepts,
// or 0 for formats it does not validate.
func bytesPerTexel(f gputypes.TextureFormat) int {
	switch f {
	case gputypes.TextureFormatR8Unorm:
		return 1
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatBGRA8Unorm:
		return 4
	default:
		return 0
	}
}
