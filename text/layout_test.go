package text

import (
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/paint/atlas"
)

func newTestFonts(t *testing.T) (*Fonts, FontID) {
	t.Helper()
	fonts := NewFonts(atlas.New(atlas.Config{InitialSize: 256, MaxDim: 2048}), DefaultFontsConfig())
	id, err := fonts.AddFont("Go Regular", goregular.TTF)
	if err != nil {
		t.Fatalf("AddFont: %v", err)
	}
	return fonts, id
}

func TestFonts_LayoutSimple(t *testing.T) {
	fonts, id := newTestFonts(t)

	g := fonts.Layout(LayoutJob{Font: id, Text: "Hello", Size: 16})
	if g.IsEmpty() {
		t.Fatal("galley is empty")
	}
	if len(g.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(g.Rows))
	}
	if g.NumGlyphs() != 5 {
		t.Errorf("NumGlyphs = %d, want 5", g.NumGlyphs())
	}
	if g.Width <= 0 || g.Height <= 0 {
		t.Errorf("size = %vx%v, want positive", g.Width, g.Height)
	}
	if g.Epoch != fonts.Atlas().Epoch() {
		t.Errorf("Epoch = %d, want %d", g.Epoch, fonts.Atlas().Epoch())
	}

	row := g.Rows[0]
	if row.Baseline <= 0 || row.Ascent <= 0 || row.Descent <= 0 {
		t.Errorf("row metrics = %+v, want positive", row)
	}
	if row.Width != g.Width {
		t.Errorf("row width %v != galley width %v", row.Width, g.Width)
	}

	// The pen must only move forward.
	prev := float32(-1)
	for i, gl := range row.Glyphs {
		if gl.X <= prev {
			t.Errorf("glyph %d at x=%v does not advance past %v", i, gl.X, prev)
		}
		prev = gl.X
	}
}

func TestFonts_LayoutGlyphQuadsPixelAligned(t *testing.T) {
	fonts, id := newTestFonts(t)

	g := fonts.Layout(LayoutJob{Font: id, Text: "Align", Size: 14})
	for _, row := range g.Rows {
		for i, gl := range row.Glyphs {
			if !gl.Visible {
				continue
			}
			for _, c := range []float32{gl.MinX, gl.MinY, gl.MaxX, gl.MaxY} {
				if c != float32(int(c)) {
					t.Errorf("glyph %d quad coordinate %v not integral", i, c)
				}
			}
			if gl.MaxX <= gl.MinX || gl.MaxY <= gl.MinY {
				t.Errorf("glyph %d quad [%v %v %v %v] degenerate", i, gl.MinX, gl.MinY, gl.MaxX, gl.MaxY)
			}
			if gl.U1 <= gl.U0 || gl.V1 <= gl.V0 {
				t.Errorf("glyph %d UVs [%v %v %v %v] degenerate", i, gl.U0, gl.V0, gl.U1, gl.V1)
			}
		}
	}
}

func TestFonts_LayoutCaches(t *testing.T) {
	fonts, id := newTestFonts(t)

	job := LayoutJob{Font: id, Text: "cached", Size: 16}
	a := fonts.Layout(job)
	b := fonts.Layout(job)
	if a != b {
		t.Error("identical jobs did not share a galley")
	}

	// All "no wrap" spellings share one entry.
	c := fonts.Layout(LayoutJob{Font: id, Text: "cached", Size: 16, MaxWidth: -1})
	if a != c {
		t.Error("negative MaxWidth did not normalize to the unwrapped galley")
	}

	// Near-identical sizes quantize together.
	d := fonts.Layout(LayoutJob{Font: id, Text: "cached", Size: 16.05})
	if a != d {
		t.Error("sizes within the quantum did not share a galley")
	}
}

func TestFonts_LayoutRebuildsAfterAtlasClear(t *testing.T) {
	fonts, id := newTestFonts(t)

	job := LayoutJob{Font: id, Text: "rebuild", Size: 16}
	before := fonts.Layout(job)

	fonts.Atlas().Clear()

	after := fonts.Layout(job)
	if after == before {
		t.Error("stale galley served after atlas clear")
	}
	if after.Epoch != fonts.Atlas().Epoch() {
		t.Errorf("rebuilt galley epoch = %d, want %d", after.Epoch, fonts.Atlas().Epoch())
	}
	if after.IsEmpty() {
		t.Error("rebuilt galley is empty")
	}
	// Layout geometry is unaffected by the rebuild, only UVs move.
	if after.Width != before.Width || after.Height != before.Height {
		t.Errorf("rebuild changed size: %vx%v -> %vx%v",
			before.Width, before.Height, after.Width, after.Height)
	}
}

func TestFonts_LayoutNewlines(t *testing.T) {
	fonts, id := newTestFonts(t)

	g := fonts.Layout(LayoutJob{Font: id, Text: "one\ntwo\r\nthree", Size: 16})
	if len(g.Rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(g.Rows))
	}
	// Baselines strictly descend the galley.
	for i := 1; i < len(g.Rows); i++ {
		if g.Rows[i].Baseline <= g.Rows[i-1].Baseline {
			t.Errorf("row %d baseline %v not below row %d baseline %v",
				i, g.Rows[i].Baseline, i-1, g.Rows[i-1].Baseline)
		}
	}
	if g.Height <= g.Rows[0].Height {
		t.Errorf("three rows but height %v", g.Height)
	}
}

func TestFonts_LayoutEmptyText(t *testing.T) {
	fonts, id := newTestFonts(t)

	g := fonts.Layout(LayoutJob{Font: id, Text: "", Size: 16})
	if !g.IsEmpty() {
		t.Error("empty text produced glyphs")
	}
	if len(g.Rows) != 1 {
		t.Errorf("rows = %d, want 1 blank row", len(g.Rows))
	}
	if g.Height <= 0 {
		t.Errorf("height = %v, want one line height", g.Height)
	}
}

func TestFonts_LayoutWraps(t *testing.T) {
	fonts, id := newTestFonts(t)

	unwrapped := fonts.Layout(LayoutJob{Font: id, Text: "several words to wrap", Size: 16})
	wrapWidth := unwrapped.Width / 2

	g := fonts.Layout(LayoutJob{Font: id, Text: "several words to wrap", Size: 16, MaxWidth: wrapWidth})
	if len(g.Rows) < 2 {
		t.Fatalf("rows = %d, want wrapping", len(g.Rows))
	}
	// Trailing spaces may overflow a row, but the wrapped galley must still
	// be distinctly narrower than the unwrapped one.
	if g.Width >= unwrapped.Width {
		t.Errorf("galley width %v not reduced from %v", g.Width, unwrapped.Width)
	}

	// Words survive wrapping intact: total glyph count is unchanged.
	if g.NumGlyphs() != unwrapped.NumGlyphs() {
		t.Errorf("wrapping changed glyph count: %d != %d", g.NumGlyphs(), unwrapped.NumGlyphs())
	}
}

func TestFonts_LayoutWrapKeepsWordsIntact(t *testing.T) {
	fonts, id := newTestFonts(t)

	// Wrap narrow enough to force one word per row.
	g := fonts.Layout(LayoutJob{Font: id, Text: "aa bb cc", Size: 16, MaxWidth: 30})
	if len(g.Rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(g.Rows))
	}
	for i, row := range g.Rows {
		visible := 0
		for _, gl := range row.Glyphs {
			if gl.Visible {
				visible++
			}
		}
		if visible != 2 {
			t.Errorf("row %d has %d visible glyphs, want 2", i, visible)
		}
	}
}

func TestFonts_LayoutBreaksOversizedWord(t *testing.T) {
	fonts, id := newTestFonts(t)

	g := fonts.Layout(LayoutJob{Font: id, Text: "incomprehensibilities", Size: 16, MaxWidth: 40})
	if len(g.Rows) < 2 {
		t.Errorf("rows = %d, want the long word split across rows", len(g.Rows))
	}
	for i, row := range g.Rows {
		if len(row.Glyphs) == 0 {
			t.Errorf("row %d is empty", i)
		}
	}
}

func TestFonts_LayoutSpacesDoNotWrap(t *testing.T) {
	fonts, id := newTestFonts(t)

	// Trailing spaces overflow the wrap width instead of starting rows.
	g := fonts.Layout(LayoutJob{Font: id, Text: "ab      ", Size: 16, MaxWidth: 30})
	if len(g.Rows) != 1 {
		t.Errorf("rows = %d, want 1 (spaces never wrap)", len(g.Rows))
	}
}

func TestFonts_LayoutUnmappedRune(t *testing.T) {
	fonts, id := newTestFonts(t)

	// Go Regular has no CJK coverage; layout must still produce a glyph
	// slot for the rune rather than dropping it.
	g := fonts.Layout(LayoutJob{Font: id, Text: "a世b", Size: 16})
	if g.NumGlyphs() != 3 {
		t.Errorf("NumGlyphs = %d, want 3", g.NumGlyphs())
	}
}

func TestFonts_GlyphCachePopulated(t *testing.T) {
	fonts, id := newTestFonts(t)

	if fonts.GlyphCache().Len() != 0 {
		t.Fatal("glyph cache not empty before layout")
	}
	fonts.Layout(LayoutJob{Font: id, Text: "abcabc", Size: 16})

	// Repeated glyphs share entries: at most one per distinct (gid, size).
	if n := fonts.GlyphCache().Len(); n == 0 || n > 3 {
		t.Errorf("glyph cache has %d entries, want 1..3", n)
	}
}

func TestNewFontSource_Invalid(t *testing.T) {
	if _, err := NewFontSource("garbage", []byte("not a font")); err == nil {
		t.Error("NewFontSource accepted garbage")
	}
}

func TestFontSource_UIDsUnique(t *testing.T) {
	a, err := NewFontSource("a", goregular.TTF)
	if err != nil {
		t.Fatalf("NewFontSource: %v", err)
	}
	b, err := NewFontSource("b", goregular.TTF)
	if err != nil {
		t.Fatalf("NewFontSource: %v", err)
	}
	if a.UID() == b.UID() {
		t.Errorf("duplicate UID %d", a.UID())
	}
	if a.Name() != "a" {
		t.Errorf("Name = %q, want %q", a.Name(), "a")
	}
}

func TestShaper_Shape(t *testing.T) {
	source, err := NewFontSource("shape", goregular.TTF)
	if err != nil {
		t.Fatalf("NewFontSource: %v", err)
	}
	shaper := NewShaper()

	glyphs := shaper.Shape(source, []rune("Wave"), 16, baseDirection("Wave"))
	if len(glyphs) != 4 {
		t.Fatalf("shaped %d glyphs, want 4", len(glyphs))
	}
	for i, g := range glyphs {
		if g.XAdvance <= 0 {
			t.Errorf("glyph %d advance = %v, want positive", i, g.XAdvance)
		}
		if g.Cluster < 0 || g.Cluster >= 4 {
			t.Errorf("glyph %d cluster = %d out of range", i, g.Cluster)
		}
	}

	if got := shaper.Shape(source, nil, 16, baseDirection("")); len(got) != 0 {
		t.Errorf("shaping no runes produced %d glyphs", len(got))
	}
}
