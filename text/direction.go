package text

import (
	"github.com/go-text/typesetting/di"
	"golang.org/x/text/unicode/bidi"
)

// baseDirection resolves the paragraph's base direction with the Unicode
// bidi algorithm, so Hebrew or Arabic runs shape right-to-left.
// Neutral or mixed paragraphs default to left-to-right.
func baseDirection(text string) di.Direction {
	var p bidi.Paragraph
	if _, err := p.SetString(text); err != nil {
		return di.DirectionLTR
	}
	ordering, err := p.Order()
	if err != nil {
		return di.DirectionLTR
	}
	if ordering.Direction() == bidi.RightToLeft {
		return di.DirectionRTL
	}
	return di.DirectionLTR
}
