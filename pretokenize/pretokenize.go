// Package pretokenize implements the BERT pre-tokenization stage: a
// normalization pass over the input code points followed by a split into
// whitespace- and punctuation-delimited spans.
package pretokenize

import "unicode"

// PreToken is a half-open span of the normalized text. Start and End are
// rune offsets into the normalized text, never into the original raw input:
// accent folding can expand one input rune into several output runes, so
// original-text positions are not recoverable in general.
type PreToken struct {
	Text  string
	Start int
	End   int
}

// Config selects the optional normalization steps.
type Config struct {
	// Lowercase folds ASCII letters directly and falls back to Unicode
	// lower-casing for everything else.
	Lowercase bool
	// StripAccents folds Latin letters with diacritics to their ASCII base
	// letters and drops standalone combining marks.
	StripAccents bool
	// HandleChineseChars isolates every CJK ideograph as its own span by
	// surrounding it with spaces.
	HandleChineseChars bool
}

// PreTokenizer turns raw text into normalized word spans.
type PreTokenizer struct {
	cfg Config
}

// New returns a PreTokenizer with the given configuration.
func New(cfg Config) *PreTokenizer {
	return &PreTokenizer{cfg: cfg}
}

// PreTokenize normalizes text and splits it into spans. Empty or
// all-whitespace input yields zero spans.
func (p *PreTokenizer) PreTokenize(text string) []PreToken {
	return p.Split(p.Normalize(text))
}

// Normalize performs a single left-to-right pass over the input code points:
// NUL, the replacement character and control characters are dropped
// (tab/newline/carriage-return count as whitespace instead), every
// whitespace rune becomes a single ASCII space, CJK ideographs are isolated,
// and case folding and accent stripping are applied per the configuration.
func (p *PreTokenizer) Normalize(text string) []rune {
	out := make([]rune, 0, len(text))
	for _, r := range text {
		switch {
		case r == 0 || r == 0xFFFD:
			// dropped outright
		case isControl(r):
			// dropped; tab/newline/CR are excluded by isControl
		case isWhitespace(r):
			out = append(out, ' ')
		case p.cfg.HandleChineseChars && isCJK(r):
			out = append(out, ' ', r, ' ')
		default:
			out = p.appendFolded(out, r)
		}
	}
	return out
}

// appendFolded applies case folding and accent stripping to one rune.
func (p *PreTokenizer) appendFolded(out []rune, r rune) []rune {
	if p.cfg.Lowercase {
		r = toLower(r)
	}
	if p.cfg.StripAccents {
		if folded, ok := accentFolds[r]; ok {
			return append(out, []rune(folded)...)
		}
		if unicode.Is(unicode.Mn, r) {
			return out
		}
	}
	return append(out, r)
}

// Split cuts the normalized text on whitespace and punctuation. Each
// punctuation rune becomes its own single-rune span; runs of everything else
// become word spans. Offsets are rune offsets into the normalized text.
func (p *PreTokenizer) Split(normalized []rune) []PreToken {
	var spans []PreToken
	wordStart := -1
	flush := func(end int) {
		if wordStart >= 0 {
			spans = append(spans, PreToken{
				Text:  string(normalized[wordStart:end]),
				Start: wordStart,
				End:   end,
			})
			wordStart = -1
		}
	}
	for i, r := range normalized {
		switch {
		case r == ' ':
			flush(i)
		case isPunctuation(r):
			flush(i)
			spans = append(spans, PreToken{Text: string(r), Start: i, End: i + 1})
		default:
			if wordStart < 0 {
				wordStart = i
			}
		}
	}
	flush(len(normalized))
	return spans
}

func toLower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	if r < 0x80 {
		return r
	}
	return unicode.ToLower(r)
}

// Character classification follows BERT's reference implementation.

func isWhitespace(r rune) bool {
	if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
		return true
	}
	return unicode.Is(unicode.Zs, r)
}

func isControl(r rune) bool {
	if r == '\t' || r == '\n' || r == '\r' {
		return false
	}
	return unicode.IsControl(r)
}

func isPunctuation(r rune) bool {
	// The ASCII blocks 33-47, 58-64, 91-96 and 123-126 count as punctuation
	// even where Unicode classifies them as symbols ($, +, ^, `, |, ~).
	if (r >= 33 && r <= 47) || (r >= 58 && r <= 64) ||
		(r >= 91 && r <= 96) || (r >= 123 && r <= 126) {
		return true
	}
	return unicode.IsPunct(r)
}

// isCJK reports whether r falls in the CJK ideograph ranges isolated by the
// BERT normalizer.
func isCJK(r rune) bool {
	return (r >= 0x4E00 && r <= 0x9FFF) ||
		(r >= 0x3400 && r <= 0x4DBF) ||
		(r >= 0x20000 && r <= 0x2A6DF) ||
		(r >= 0x2A700 && r <= 0x2B73F) ||
		(r >= 0x2B740 && r <= 0x2B81F) ||
		(r >= 0x2B820 && r <= 0x2CEAF) ||
		(r >= 0xF900 && r <= 0xFAFF) ||
		(r >= 0x2F800 && r <= 0x2FA1F)
}
