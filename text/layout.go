package text

import (
	"hash/fnv"
	"math"
	"strings"
	"sync"

	"github.com/go-text/typesetting/di"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/paint/atlas"
	"github.com/gogpu/paint/cache"
)

// LayoutJob describes one text layout request.
// Galleys are cached by the job's structural content, so two jobs with the
// same fields share a galley.
type LayoutJob struct {
	// Font selects a font registered with AddFont.
	Font FontID

	// Text is the text to lay out. Newlines break rows unconditionally.
	Text string

	// Size is the font size in pixels per em.
	Size float32

	// MaxWidth bounds row width: rows wrap greedily at whitespace once
	// the accumulated advance would exceed it. Zero, negative or +Inf
	// disables wrapping.
	MaxWidth float32
}

// galleyKey is the structural cache key of a layout job.
type galleyKey struct {
	font     FontID
	size     fixed.Int26_6
	maxWidth float32
	text     string
}

func hashGalleyKey(k galleyKey) uint64 {
	h := fnv.New64a()
	var b [12]byte
	b[0] = byte(k.font)
	b[1] = byte(k.font >> 8)
	b[2] = byte(k.font >> 16)
	b[3] = byte(k.font >> 24)
	b[4] = byte(k.size)
	b[5] = byte(k.size >> 8)
	b[6] = byte(k.size >> 16)
	b[7] = byte(k.size >> 24)
	w := math.Float32bits(k.maxWidth)
	b[8] = byte(w)
	b[9] = byte(w >> 8)
	b[10] = byte(w >> 16)
	b[11] = byte(w >> 24)
	_, _ = h.Write(b[:])
	_, _ = h.Write([]byte(k.text))
	return h.Sum64()
}

// FontsConfig configures a Fonts service.
type FontsConfig struct {
	// GlyphCache configures glyph bitmap caching.
	GlyphCache GlyphCacheConfig

	// GalleyCapacity is the per-shard capacity of the galley cache.
	// Default: cache.DefaultCapacity.
	GalleyCapacity int
}

// DefaultFontsConfig returns the default configuration.
func DefaultFontsConfig() FontsConfig {
	return FontsConfig{GlyphCache: DefaultGlyphCacheConfig()}
}

// Fonts is the font and galley service: it owns the registered fonts, the
// glyph cache and the galley cache, all backed by one shared atlas.
//
// Fonts is safe for concurrent use, but layout allocates atlas space, so per
// the engine's single-writer discipline all Layout calls for a frame must
// complete before that frame's tessellation pass reads glyph UVs.
type Fonts struct {
	atl    *atlas.Atlas
	shaper *Shaper
	glyphs *GlyphCache

	mu      sync.RWMutex
	sources map[FontID]*FontSource
	nextID  FontID

	galleys *cache.Sharded[galleyKey, *Galley]
}

// NewFonts creates a Fonts service over the given atlas.
func NewFonts(a *atlas.Atlas, cfg FontsConfig) *Fonts {
	return &Fonts{
		atl:     a,
		shaper:  NewShaper(),
		glyphs:  NewGlyphCache(a, cfg.GlyphCache),
		sources: make(map[FontID]*FontSource),
		nextID:  1,
		galleys: cache.NewSharded[galleyKey, *Galley](cfg.GalleyCapacity, hashGalleyKey),
	}
}

// AddFont parses and registers a font, returning its ID.
func (f *Fonts) AddFont(name string, data []byte) (FontID, error) {
	source, err := NewFontSource(name, data)
	if err != nil {
		return 0, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextID
	f.nextID++
	f.sources[id] = source
	logger().Debug("font registered", "id", id, "name", name)
	return id, nil
}

// Font returns the source registered under id.
func (f *Fonts) Font(id FontID) (*FontSource, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	s, ok := f.sources[id]
	return s, ok
}

// Atlas returns the shared atlas glyph bitmaps are packed into.
func (f *Fonts) Atlas() *atlas.Atlas { return f.atl }

// GlyphCache returns the underlying glyph cache.
func (f *Fonts) GlyphCache() *GlyphCache { return f.glyphs }

// Layout shapes and line-breaks a job into a Galley.
//
// Layout never fails: an unknown font or unshapable text produces an empty
// galley, and unmapped runes render as tofu boxes. The result is cached; a
// second call with an identical job returns the identical galley until the
// atlas epoch changes, at which point it is rebuilt transparently.
func (f *Fonts) Layout(job LayoutJob) *Galley {
	source, ok := f.Font(job.Font)
	if !ok || job.Size <= 0 {
		logger().Warn("layout with unknown font or bad size",
			"font", job.Font, "size", job.Size)
		return &Galley{Text: job.Text, Epoch: f.atl.Epoch()}
	}

	key := galleyKey{
		font:     job.Font,
		size:     quantizeSize(job.Size),
		maxWidth: normalizeMaxWidth(job.MaxWidth),
		text:     job.Text,
	}

	if g, ok := f.galleys.Get(key); ok && g.Epoch == f.atl.Epoch() {
		return g
	}

	// Laying out may grow the atlas, which invalidates the UVs already
	// written into the galley under construction. Retry until the epoch
	// is stable across one full layout; growth is monotonic so this
	// terminates quickly.
	var g *Galley
	for {
		epoch := f.atl.Epoch()
		g = f.layout(source, key)
		if f.atl.Epoch() == epoch {
			g.Epoch = epoch
			break
		}
	}

	f.galleys.Set(key, g)
	return g
}

// normalizeMaxWidth maps all "no wrapping" spellings to 0 so they share a
// cache entry.
func normalizeMaxWidth(w float32) float32 {
	if w <= 0 || math.IsInf(float64(w), 1) || math.IsNaN(float64(w)) {
		return 0
	}
	return w
}

// layout does the actual shaping, wrapping and glyph placement.
func (f *Fonts) layout(source *FontSource, key galleyKey) *Galley {
	sizePx := fixedToFloat(key.size)
	ascent, descent, lineHeight := f.metrics(source, key.size)

	g := &Galley{Text: key.text}
	dir := baseDirection(key.text)

	baseline := ascent
	for _, line := range strings.Split(key.text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		rows := f.layoutLine([]rune(line), source, key, sizePx, dir)
		for i := range rows {
			rows[i].Baseline = baseline
			rows[i].Ascent = ascent
			rows[i].Descent = descent
			rows[i].Height = lineHeight
			placeRow(&rows[i])
			if rows[i].Width > g.Width {
				g.Width = rows[i].Width
			}
			g.Rows = append(g.Rows, rows[i])
			baseline += lineHeight
		}
	}

	if n := len(g.Rows); n > 0 {
		g.Height = g.Rows[n-1].Baseline + descent
	}
	return g
}

// layoutLine wraps one newline-free line into one or more rows.
// Rows come back without baselines; the caller assigns vertical metrics.
func (f *Fonts) layoutLine(line []rune, source *FontSource, key galleyKey, sizePx float32, dir di.Direction) []Row {
	maxWidth := key.maxWidth
	wrap := maxWidth > 0

	rows := []Row{{Glyphs: []Glyph{}}}
	penX := float32(0)

	newRow := func() {
		rows[len(rows)-1].Width = penX
		rows = append(rows, Row{Glyphs: []Glyph{}})
		penX = 0
	}
	appendGlyph := func(sg ShapedGlyph) {
		ag := f.glyphs.Get(source, sg.GID, key.size)
		row := &rows[len(rows)-1]
		row.Glyphs = append(row.Glyphs, Glyph{
			GID:     sg.GID,
			X:       penX,
			Advance: sg.XAdvance,
			// Quad is resolved in placeRow once the baseline is known;
			// stash the pen offsets in the meantime.
			MinX:    penX + sg.XOffset + float32(ag.Left),
			MinY:    sg.YOffset + float32(ag.Top),
			MaxX:    float32(ag.W),
			MaxY:    float32(ag.H),
			U0:      ag.U0,
			V0:      ag.V0,
			U1:      ag.U1,
			V1:      ag.V1,
			Visible: !ag.Empty,
		})
		penX += sg.XAdvance
	}

	for _, tok := range tokenize(line) {
		shaped := f.shaper.Shape(source, tok.runes, sizePx, dir)
		advance := float32(0)
		for _, sg := range shaped {
			advance += sg.XAdvance
		}

		switch {
		case tok.kind == tokenSpace:
			// Spaces never trigger wrapping; trailing ones overflow.
			for _, sg := range shaped {
				appendGlyph(sg)
			}

		case wrap && penX > 0 && penX+advance > maxWidth:
			// Word does not fit the current row: break before it.
			newRow()
			fallthrough

		default:
			if wrap && advance > maxWidth {
				// Word wider than the wrap width: break inside it at
				// cluster boundaries.
				for i, sg := range shaped {
					clusterStart := i == 0 || sg.Cluster != shaped[i-1].Cluster
					if penX > 0 && clusterStart && penX+sg.XAdvance > maxWidth {
						newRow()
					}
					appendGlyph(sg)
				}
			} else {
				for _, sg := range shaped {
					appendGlyph(sg)
				}
			}
		}
	}

	rows[len(rows)-1].Width = penX
	return rows
}

// placeRow turns the stashed pen offsets into final pixel-aligned quads.
func placeRow(row *Row) {
	for i := range row.Glyphs {
		gl := &row.Glyphs[i]
		gl.Y = row.Baseline
		if !gl.Visible {
			gl.MinX, gl.MinY, gl.MaxX, gl.MaxY = 0, 0, 0, 0
			continue
		}
		w, h := gl.MaxX, gl.MaxY
		x := float32(math.Round(float64(gl.MinX)))
		y := float32(math.Round(float64(row.Baseline + gl.MinY)))
		gl.MinX, gl.MinY = x, y
		gl.MaxX, gl.MaxY = x+w, y+h
	}
}

// metrics returns ascent, descent and line height in pixels.
func (f *Fonts) metrics(source *FontSource, size fixed.Int26_6) (ascent, descent, lineHeight float32) {
	buf := f.glyphs.bufPool.Get().(*sfnt.Buffer)
	defer f.glyphs.bufPool.Put(buf)

	m, err := source.sfnt.Metrics(buf, size, xfont.HintingNone)
	if err != nil {
		// Fall back to typical proportions of the em square.
		px := fixedToFloat(size)
		return px * 0.8, px * 0.2, px * 1.2
	}
	ascent = fixedToFloat(m.Ascent)
	descent = fixedToFloat(m.Descent)
	lineHeight = fixedToFloat(m.Height)
	if lineHeight < ascent+descent {
		lineHeight = ascent + descent
	}
	return ascent, descent, lineHeight
}
