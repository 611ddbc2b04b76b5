// Package atlas provides the shared texture atlas backing glyphs and small
// rasterized images, plus a registry for externally supplied textures.
//
// The atlas is a single alpha-coverage bitmap that many small rectangles are
// packed into with a shelf (row based) bin packer. Packing state is guarded
// by a mutex: allocation and upload follow a single-writer discipline, and
// must happen between tessellation passes, never while one is reading UVs.
package atlas

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"sync"
)

// TextureID identifies a texture to the consuming renderer.
// ID 0 always refers to the shared atlas texture itself.
type TextureID uint32

// AtlasTexture is the TextureID of the atlas bitmap.
const AtlasTexture TextureID = 0

// Errors returned by Allocate and Upload.
var (
	// ErrAtlasFull is returned when the atlas cannot grow any further.
	// Callers should fall back to a standalone texture slot (see Manager).
	ErrAtlasFull = errors.New("atlas: cannot grow past maximum dimension")

	// ErrStaleRegion is returned when a Region from a previous epoch is
	// used after the atlas has grown or been cleared. The caller must
	// re-request the allocation.
	ErrStaleRegion = errors.New("atlas: region is from a previous epoch")
)

// Region is a packed rectangle inside the atlas.
// It is owned exclusively by the requester until the atlas is cleared or
// grown, at which point every outstanding Region becomes stale at once.
type Region struct {
	// X, Y, W, H locate the rectangle in texels.
	X, Y, W, H int

	// Epoch is the atlas generation this region was issued under.
	Epoch uint64
}

// Config configures an Atlas.
type Config struct {
	// InitialSize is the starting width and height in texels.
	// Default: 1024.
	InitialSize int

	// MaxDim is the maximum width/height the atlas may grow to,
	// typically the hardware texture-size ceiling. Default: 8192.
	MaxDim int
}

// DefaultConfig returns the default atlas configuration.
func DefaultConfig() Config {
	return Config{
		InitialSize: 1024,
		MaxDim:      8192,
	}
}

// whitePad is the side length of the always-white block reserved at the
// top-left corner. Flat-color geometry samples its center so that a single
// shader path serves both colored and textured triangles.
const whitePad = 8

// padding is the gap in texels kept between packed regions so that bilinear
// sampling never bleeds a neighbor in.
const padding = 1

// Atlas is a shelf bin-packing texture store.
//
// All methods are safe for concurrent use, but note the contract from the
// package comment: growth invalidates the normalized UVs of every previously
// issued Region, so allocation must be serialized with respect to consumers
// reading UVs (in practice: glyph allocation happens during text layout,
// before tessellation reads the results).
type Atlas struct {
	mu sync.Mutex

	img    *image.Alpha
	maxDim int

	// Shelf packer state.
	cursorX   int
	cursorY   int
	rowHeight int

	// epoch increments on every grow/clear. Regions carry the epoch they
	// were issued under and die when it changes.
	epoch uint64

	// dirty is the union of texel rects written since the last TakeDirty.
	dirty image.Rectangle
}

// New creates an atlas with the given configuration and reserves the white
// block at the top-left corner.
func New(cfg Config) *Atlas {
	if cfg.InitialSize <= 0 {
		cfg.InitialSize = 1024
	}
	if cfg.MaxDim < cfg.InitialSize {
		cfg.MaxDim = 8192
	}
	a := &Atlas{maxDim: cfg.MaxDim}
	a.reset(cfg.InitialSize, cfg.InitialSize)
	return a
}

// reset reinitializes packing state at the given size and re-reserves the
// white block. Callers must hold a.mu (or be the constructor).
func (a *Atlas) reset(w, h int) {
	a.img = image.NewAlpha(image.Rect(0, 0, w, h))
	a.cursorX = 0
	a.cursorY = 0
	a.rowHeight = 0
	a.dirty = a.img.Rect

	// The white block lives at the same texels in every epoch, so WhiteUV
	// stays valid across rebuilds.
	for y := 0; y < whitePad; y++ {
		for x := 0; x < whitePad; x++ {
			a.img.SetAlpha(x, y, color.Alpha{A: 0xff})
		}
	}
	a.cursorX = whitePad + padding
	a.rowHeight = whitePad
}

// Allocate reserves a w×h rectangle in the atlas.
//
// New allocations extend the current row until its width is exhausted, then
// start a new row below it. When the rows exhaust the atlas height, the atlas
// grows (doubling, capped at MaxDim) and the epoch increments: every
// previously issued Region is stale from that point and must be re-requested.
//
// Returns ErrAtlasFull when even a grown atlas cannot fit the request.
func (a *Atlas) Allocate(w, h int) (Region, error) {
	if w <= 0 || h <= 0 {
		return Region{}, fmt.Errorf("atlas: invalid allocation %dx%d", w, h)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	for {
		if r, ok := a.tryAllocate(w, h); ok {
			return r, nil
		}
		if !a.grow(w, h) {
			logger().Warn("atlas allocation failed",
				"w", w, "h", h, "size", a.img.Rect.Dx(), "max", a.maxDim)
			return Region{}, ErrAtlasFull
		}
	}
}

// tryAllocate attempts a shelf allocation without growing.
// Callers must hold a.mu.
func (a *Atlas) tryAllocate(w, h int) (Region, bool) {
	size := a.img.Rect.Dx()
	if w+2*padding > size {
		return Region{}, false
	}

	// Advance to the next row when this one is out of width.
	if a.cursorX+w+padding > size {
		a.cursorY += a.rowHeight + padding
		a.cursorX = 0
		a.rowHeight = 0
	}

	if a.cursorY+h+padding > a.img.Rect.Dy() {
		return Region{}, false
	}

	r := Region{X: a.cursorX, Y: a.cursorY, W: w, H: h, Epoch: a.epoch}
	a.cursorX += w + padding
	if h > a.rowHeight {
		a.rowHeight = h
	}
	return r, true
}

// grow doubles the atlas (capped at maxDim), resets packing and bumps the
// epoch. Returns false if no further growth can satisfy a w×h request.
// Callers must hold a.mu.
func (a *Atlas) grow(w, h int) bool {
	size := a.img.Rect.Dx()
	newSize := size * 2
	if newSize > a.maxDim {
		newSize = a.maxDim
	}
	if newSize <= size || w+2*padding > newSize || h+2*padding > newSize {
		return false
	}

	logger().Debug("atlas growing", "from", size, "to", newSize)
	a.epoch++
	a.reset(newSize, newSize)
	return true
}

// Upload writes w×h alpha coverage values (row-major, len == W*H) into the
// region and extends the dirty rectangle. Returns ErrStaleRegion if the
// region predates the current epoch.
func (a *Atlas) Upload(r Region, pixels []uint8) error {
	if len(pixels) != r.W*r.H {
		return fmt.Errorf("atlas: upload size %d does not match region %dx%d", len(pixels), r.W, r.H)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if r.Epoch != a.epoch {
		return ErrStaleRegion
	}

	for y := 0; y < r.H; y++ {
		row := a.img.Pix[(r.Y+y)*a.img.Stride+r.X:]
		copy(row[:r.W], pixels[y*r.W:(y+1)*r.W])
	}

	rect := image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)
	a.dirty = a.dirty.Union(rect)
	return nil
}

// UV returns the normalized texture coordinates of the region's corners.
// ok is false when the region is stale; its coordinates must not be used.
func (a *Atlas) UV(r Region) (u0, v0, u1, v1 float32, ok bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if r.Epoch != a.epoch {
		return 0, 0, 0, 0, false
	}
	w := float32(a.img.Rect.Dx())
	h := float32(a.img.Rect.Dy())
	return float32(r.X) / w, float32(r.Y) / h,
		float32(r.X+r.W) / w, float32(r.Y+r.H) / h, true
}

// WhiteUV returns the normalized coordinates of the center of the reserved
// white block. Valid in every epoch.
func (a *Atlas) WhiteUV() (u, v float32) {
	a.mu.Lock()
	defer a.mu.Unlock()

	c := float32(whitePad) / 2
	return c / float32(a.img.Rect.Dx()), c / float32(a.img.Rect.Dy())
}

// Image returns the backing alpha bitmap for GPU upload.
// The renderer must not retain it across a Clear or growth.
func (a *Atlas) Image() *image.Alpha {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.img
}

// Size returns the current atlas dimensions in texels.
func (a *Atlas) Size() (w, h int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.img.Rect.Dx(), a.img.Rect.Dy()
}

// Epoch returns the current generation counter.
// Cached entries produced under an older epoch are stale.
func (a *Atlas) Epoch() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.epoch
}

// TakeDirty returns the texel rectangle modified since the last call and
// resets it. An empty rectangle means the GPU copy is up to date.
func (a *Atlas) TakeDirty() image.Rectangle {
	a.mu.Lock()
	defer a.mu.Unlock()
	d := a.dirty
	a.dirty = image.Rectangle{}
	return d
}

// Clear resets packing state at the current size and bumps the epoch,
// invalidating all outstanding regions. Use on font size or DPI change.
func (a *Atlas) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.epoch++
	a.reset(a.img.Rect.Dx(), a.img.Rect.Dy())
}
