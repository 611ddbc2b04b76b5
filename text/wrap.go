package text

import "unicode"

// tokenKind distinguishes breakable whitespace from word content.
type tokenKind uint8

const (
	tokenWord tokenKind = iota
	tokenSpace
)

// token is a run of runes that wraps as a unit: rows may break between a
// space token and the word after it, never inside a word (except for words
// wider than the whole wrap width, which break at cluster boundaries).
type token struct {
	runes []rune
	kind  tokenKind
}

// tokenize splits one line (no newlines) into alternating word and
// whitespace tokens, preserving every rune.
func tokenize(line []rune) []token {
	var tokens []token
	start := 0
	for start < len(line) {
		isSpace := isBreakingSpace(line[start])
		end := start
		for end < len(line) && isBreakingSpace(line[end]) == isSpace {
			end++
		}
		kind := tokenWord
		if isSpace {
			kind = tokenSpace
		}
		tokens = append(tokens, token{runes: line[start:end], kind: kind})
		start = end
	}
	return tokens
}

// isBreakingSpace reports whether r is whitespace that allows a line break
// after it. No-break spaces (U+00A0, U+202F) glue their neighbors together.
func isBreakingSpace(r rune) bool {
	if r == ' ' || r == ' ' {
		return false
	}
	return unicode.IsSpace(r)
}
