package text

import (
	"sync"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/paint/atlas"
)

// sizeQuantum is the glyph cache's pixel-size granularity in 26.6 fixed
// point: a quarter of a pixel. Requested sizes are rounded to it so that
// nearly identical sizes share rasterizations and the cache stays bounded.
const sizeQuantum = 16

// quantizeSize rounds a pixel size to the cache granularity.
func quantizeSize(px float32) fixed.Int26_6 {
	f := fixed.Int26_6(px*64 + sizeQuantum/2)
	return f - f%sizeQuantum
}

// AtlasGlyph is one glyph bitmap resident in the atlas.
// Valid only while its Epoch matches the atlas epoch.
type AtlasGlyph struct {
	// Empty marks glyphs with no coverage (spaces, empty outlines).
	// Such glyphs still advance the pen but emit no geometry.
	Empty bool

	// Region is the packed rectangle holding the coverage bitmap.
	Region atlas.Region

	// U0, V0, U1, V1 are the normalized UV corners of Region.
	U0, V0, U1, V1 float32

	// Left and Top place the bitmap's top-left corner relative to the pen
	// position on the baseline, y-down.
	Left, Top int

	// W and H are the bitmap dimensions in texels.
	W, H int

	// Epoch is the atlas generation the UVs were computed under.
	Epoch uint64
}

type glyphKey struct {
	font uint64
	gid  GlyphID
	size fixed.Int26_6
}

type glyphEntry struct {
	key   glyphKey
	glyph *AtlasGlyph

	// prev and next form the LRU doubly-linked list.
	prev, next *glyphEntry
}

// GlyphCacheConfig holds configuration for GlyphCache.
type GlyphCacheConfig struct {
	// MaxEntries is the maximum number of cached glyph bitmaps.
	// Default: 4096.
	MaxEntries int
}

// DefaultGlyphCacheConfig returns the default cache configuration.
func DefaultGlyphCacheConfig() GlyphCacheConfig {
	return GlyphCacheConfig{MaxEntries: 4096}
}

// GlyphCache rasterizes glyphs on first request and serves them from memory
// afterwards, with their bitmaps packed into the shared atlas.
//
// Eviction is least-recently-used once MaxEntries is exceeded. Evicting an
// entry drops only the lookup; atlas texels are reclaimed wholesale on the
// next atlas rebuild. When the atlas epoch changes (growth or Clear), every
// entry is stale and the whole cache is flushed.
//
// GlyphCache is safe for concurrent use, but rasterization mutates the atlas
// and therefore belongs to the layout phase, before tessellation reads UVs.
type GlyphCache struct {
	atl *atlas.Atlas

	mu      sync.Mutex
	entries map[glyphKey]*glyphEntry
	head    *glyphEntry // most recently used
	tail    *glyphEntry // least recently used
	max     int
	epoch   uint64

	bufPool sync.Pool // *sfnt.Buffer, not safe for concurrent use
}

// NewGlyphCache creates a glyph cache over the given atlas.
func NewGlyphCache(a *atlas.Atlas, cfg GlyphCacheConfig) *GlyphCache {
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = 4096
	}
	return &GlyphCache{
		atl:     a,
		entries: make(map[glyphKey]*glyphEntry),
		max:     cfg.MaxEntries,
		epoch:   a.Epoch(),
		bufPool: sync.Pool{New: func() any { return &sfnt.Buffer{} }},
	}
}

// Get returns the atlas-resident bitmap for (source, gid) at the quantized
// pixel size, rasterizing and uploading on first request.
//
// Never fails on untrusted input: a glyph the font cannot load comes back as
// the tofu box, and an atlas that cannot grow any further yields an Empty
// glyph (logged) so text keeps flowing without its bitmap.
func (c *GlyphCache) Get(source *FontSource, gid GlyphID, size fixed.Int26_6) *AtlasGlyph {
	key := glyphKey{font: source.UID(), gid: gid, size: size}

	c.mu.Lock()
	defer c.mu.Unlock()

	if e := c.atl.Epoch(); e != c.epoch {
		c.flushLocked(e)
	}

	if e, ok := c.entries[key]; ok {
		c.moveToFront(e)
		return e.glyph
	}

	g := c.rasterizeLocked(source, gid, size)
	e := &glyphEntry{key: key, glyph: g}
	c.entries[key] = e
	c.pushFront(e)

	for len(c.entries) > c.max {
		oldest := c.tail
		if oldest == nil {
			break
		}
		c.unlink(oldest)
		delete(c.entries, oldest.key)
	}
	return g
}

// rasterizeLocked renders, packs and uploads one glyph.
// Callers must hold c.mu.
func (c *GlyphCache) rasterizeLocked(source *FontSource, gid GlyphID, size fixed.Int26_6) *AtlasGlyph {
	buf := c.bufPool.Get().(*sfnt.Buffer)
	mask, err := rasterizeGlyph(source.sfnt, buf, sfnt.GlyphIndex(gid), size)
	c.bufPool.Put(buf)
	if err != nil {
		logger().Debug("glyph outline unavailable, using tofu",
			"font", source.Name(), "gid", gid, "err", err)
		mask = tofuMask(size)
	}
	if mask == nil {
		return &AtlasGlyph{Empty: true, Epoch: c.epoch}
	}

	region, err := c.atl.Allocate(mask.w, mask.h)
	if err != nil {
		logger().Warn("atlas full, dropping glyph bitmap",
			"font", source.Name(), "gid", gid)
		return &AtlasGlyph{Empty: true, Epoch: c.epoch}
	}

	// Allocation may have grown the atlas mid-request; everything cached
	// before this point is stale then, but the fresh region is valid.
	if region.Epoch != c.epoch {
		c.flushLocked(region.Epoch)
	}

	if err := c.atl.Upload(region, mask.pix); err != nil {
		logger().Warn("glyph upload failed", "err", err)
		return &AtlasGlyph{Empty: true, Epoch: c.epoch}
	}
	u0, v0, u1, v1, _ := c.atl.UV(region)

	return &AtlasGlyph{
		Region: region,
		U0:     u0, V0: v0, U1: u1, V1: v1,
		Left: mask.left, Top: mask.top,
		W: mask.w, H: mask.h,
		Epoch: c.epoch,
	}
}

// flushLocked drops every entry and adopts the new epoch.
func (c *GlyphCache) flushLocked(epoch uint64) {
	logger().Debug("glyph cache flushed", "from", c.epoch, "to", epoch)
	c.entries = make(map[glyphKey]*glyphEntry)
	c.head = nil
	c.tail = nil
	c.epoch = epoch
}

// Len returns the number of cached glyphs.
func (c *GlyphCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *GlyphCache) pushFront(e *glyphEntry) {
	e.prev = nil
	e.next = c.head
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *GlyphCache) moveToFront(e *glyphEntry) {
	if e == c.head {
		return
	}
	c.unlink(e)
	c.pushFront(e)
}

func (c *GlyphCache) unlink(e *glyphEntry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
	e.prev = nil
	e.next = nil
}
