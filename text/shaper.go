package text

import (
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// ShapedGlyph is one glyph produced by shaping, positioned relative to the
// start of its run. Offsets are fine-grained adjustments applied on top of
// the advancing pen position; kerning and ligatures are already folded in.
type ShapedGlyph struct {
	// GID is the glyph index in the shaped font.
	GID GlyphID

	// Cluster is the rune index in the source text this glyph maps to.
	// Several glyphs may share a cluster (and vice versa) under ligatures.
	Cluster int

	// XAdvance is how far the pen moves after this glyph, in pixels.
	XAdvance float32

	// XOffset and YOffset displace the glyph from the pen position.
	// YOffset is positive downward.
	XOffset, YOffset float32
}

// Shaper converts text runs into positioned glyphs using HarfBuzz shaping
// via go-text/typesetting: kerning pairs, ligature substitution and complex
// scripts all come from the font's own OpenType tables.
//
// Shaper is safe for concurrent use. HarfbuzzShaper instances carry mutable
// buffers and are NOT concurrent-safe, so they are pooled; font.Face is
// likewise per-call, built cheaply around the shared read-only font.Font.
type Shaper struct {
	pool sync.Pool
}

// NewShaper creates a Shaper.
func NewShaper() *Shaper {
	return &Shaper{
		pool: sync.Pool{
			New: func() any {
				return &shaping.HarfbuzzShaper{}
			},
		},
	}
}

// Shape shapes runes as one run of the given font at sizePx pixels.
// Deterministic: identical inputs always produce identical output.
func (s *Shaper) Shape(source *FontSource, runes []rune, sizePx float32, dir di.Direction) []ShapedGlyph {
	if len(runes) == 0 || source == nil {
		return nil
	}

	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: dir,
		Face:      font.NewFace(source.gotext),
		Size:      floatToFixed(sizePx),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}

	hb := s.pool.Get().(*shaping.HarfbuzzShaper)
	output := hb.Shape(input)
	s.pool.Put(hb)

	return convertGlyphs(output.Glyphs)
}

// detectScript inspects the runes and returns the script of the first
// non-space character. Runs handed to Shape are single-script by
// construction (the layouter splits at word boundaries), so a per-run
// heuristic is sufficient.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

// convertGlyphs converts go-text/typesetting output glyphs to ShapedGlyphs.
func convertGlyphs(glyphs []shaping.Glyph) []ShapedGlyph {
	if len(glyphs) == 0 {
		return nil
	}
	result := make([]ShapedGlyph, len(glyphs))
	for i, g := range glyphs {
		result[i] = ShapedGlyph{
			GID:      GlyphID(g.GlyphID),
			Cluster:  g.TextIndex(),
			XAdvance: fixedToFloat(g.XAdvance),
			XOffset:  fixedToFloat(g.XOffset),
			// go-text YOffset is positive upward; our frame is y-down.
			YOffset: -fixedToFloat(g.YOffset),
		}
	}
	return result
}

// floatToFixed converts a pixel size to fixed.Int26_6 (6 fractional bits).
func floatToFixed(v float32) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

// fixedToFloat converts a fixed.Int26_6 value to float32 pixels.
func fixedToFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}
