// Package text shapes, wraps and rasterizes text into galleys: immutable,
// line-broken glyph layouts whose glyph bitmaps live in the shared atlas.
//
// The pipeline is:
//
//	Fonts.Layout(job)           shape words (HarfBuzz via go-text/typesetting),
//	                            wrap greedily, position glyphs left to right
//	GlyphCache                  rasterize each (font, glyph, size) once
//	                            (sfnt outlines + x/image/vector coverage)
//	atlas.Atlas                 pack the alpha masks, hand back UVs
//
// Galleys are cached by a structural key of their inputs and are valid for
// one atlas epoch: when the atlas grows or is cleared, every cached galley
// and glyph is stale and Layout transparently rebuilds them.
//
// Nothing in this package fails on untrusted text. Unmapped runes shape to
// the font's notdef glyph and rasterize as a tofu box; a missing outline
// yields an empty (but valid) galley entry.
package text
