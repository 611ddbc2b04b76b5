package text

import (
	"bytes"
	"fmt"
	"sync/atomic"

	"github.com/go-text/typesetting/font"
	"golang.org/x/image/font/sfnt"
)

// FontID identifies a font registered with a Fonts service.
type FontID uint32

// GlyphID is a glyph index within a font.
type GlyphID uint16

// sourceID is a process-wide counter for FontSource identity,
// used in cache keys so two sources never collide.
var sourceID atomic.Uint64

// FontSource owns one parsed font.
//
// The same font bytes are parsed twice on purpose: go-text/typesetting's
// font.Font drives shaping (kerning, ligatures, complex scripts), while
// x/image's sfnt.Font provides the glyph outlines we rasterize. Both parsed
// forms are read-only and safe for concurrent use; sfnt calls additionally
// need a per-goroutine sfnt.Buffer, which callers supply.
type FontSource struct {
	id   uint64
	name string
	data []byte

	gotext *font.Font
	sfnt   *sfnt.Font
}

// NewFontSource parses TTF/OTF font data.
// The data slice is retained; callers must not modify it.
func NewFontSource(name string, data []byte) (*FontSource, error) {
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("text: parsing %q for shaping: %w", name, err)
	}
	sf, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: parsing %q for rasterization: %w", name, err)
	}
	return &FontSource{
		id:     sourceID.Add(1),
		name:   name,
		data:   data,
		gotext: face.Font,
		sfnt:   sf,
	}, nil
}

// Name returns the name the font was registered under.
func (s *FontSource) Name() string { return s.name }

// UID returns the process-unique identity of this source.
func (s *FontSource) UID() uint64 { return s.id }
