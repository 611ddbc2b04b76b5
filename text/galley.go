package text

// Glyph is one positioned glyph in a galley.
// All coordinates are relative to the galley origin (top-left corner),
// y-down, in pixels. Quads are pixel-aligned so glyph bitmaps are sampled
// texel-for-texel and text stays sharp.
type Glyph struct {
	// GID is the glyph index in the galley's font.
	GID GlyphID

	// X, Y is the pen position of this glyph: X at the glyph's left
	// advance edge, Y on the row baseline.
	X, Y float32

	// Advance is how far the pen moved after this glyph.
	Advance float32

	// MinX, MinY, MaxX, MaxY is the screen quad of the glyph bitmap.
	// Zero-sized for invisible glyphs.
	MinX, MinY, MaxX, MaxY float32

	// U0, V0, U1, V1 are the atlas UVs of the bitmap.
	U0, V0, U1, V1 float32

	// Visible is false for glyphs with no coverage (spaces, lost bitmaps).
	Visible bool
}

// Row is one laid-out line of a galley.
type Row struct {
	// Glyphs in visual order. Never nil, possibly empty for blank lines.
	Glyphs []Glyph

	// Baseline is the y of the row's baseline in galley space.
	Baseline float32

	// Width is the pen advance of the full row, including trailing spaces.
	Width float32

	// Ascent and Descent are positive distances from the baseline.
	Ascent, Descent float32

	// Height is the baseline-to-baseline distance to the next row.
	Height float32
}

// MinY returns the top of the row in galley space.
func (r *Row) MinY() float32 { return r.Baseline - r.Ascent }

// MaxY returns the bottom of the row in galley space.
func (r *Row) MaxY() float32 { return r.Baseline + r.Descent }

// Galley is a shaped, line-broken, immutable text layout.
//
// A galley is produced once per distinct (font, size, text, wrap width) and
// cached; callers hold references and must treat the galley as read-only.
// Identical layout inputs yield byte-identical galleys within one atlas
// epoch, so measuring text never requires re-shaping.
type Galley struct {
	// Text is the source text this galley was shaped from.
	Text string

	// Rows hold the laid-out lines, top to bottom.
	Rows []Row

	// Width and Height are the total bounding size in pixels.
	Width, Height float32

	// Epoch is the atlas generation the glyph UVs belong to. When the
	// atlas epoch moves past it the galley is stale: reference it again
	// through Fonts.Layout, which rebuilds transparently.
	Epoch uint64
}

// IsEmpty returns true if the galley contains no visible glyphs.
func (g *Galley) IsEmpty() bool {
	for i := range g.Rows {
		for j := range g.Rows[i].Glyphs {
			if g.Rows[i].Glyphs[j].Visible {
				return false
			}
		}
	}
	return true
}

// NumGlyphs returns the total glyph count across all rows.
func (g *Galley) NumGlyphs() int {
	n := 0
	for i := range g.Rows {
		n += len(g.Rows[i].Glyphs)
	}
	return n
}
