// Package wordpiece implements the greedy WordPiece subword algorithm used
// by BERT-family models: repeatedly take the longest vocabulary piece at
// the current position, falling back to a single-character lookup, and
// degrade the whole word to the unknown token when nothing matches.
package wordpiece

import (
	"github.com/NikshetSteh/bert-tokenizer/encoding"
	"github.com/NikshetSteh/bert-tokenizer/pretokenize"
	"github.com/NikshetSteh/bert-tokenizer/vocab"
)

// DefaultMaxWordLength caps the rune length of words that are attempted at
// all; longer words become a single unknown token without a match attempt.
const DefaultMaxWordLength = 100

// Encoder encodes pre-tokenized word spans into subword pieces.
type Encoder struct {
	vocab         *vocab.Vocabulary
	marker        string
	unkToken      string
	maxWordLength int
}

// New returns an Encoder over v. A maxWordLength at or below zero selects
// DefaultMaxWordLength.
func New(v *vocab.Vocabulary, maxWordLength int) *Encoder {
	if maxWordLength <= 0 {
		maxWordLength = DefaultMaxWordLength
	}
	return &Encoder{
		vocab:         v,
		marker:        v.ContinuationMarker(),
		unkToken:      v.IDToToken(v.UnkID()),
		maxWordLength: maxWordLength,
	}
}

type piece struct {
	text string
	id   int
	// word-local rune bounds
	start, end int
}

// EncodeWord appends the subword pieces of one word span to the builder.
// Unknown substitutions are appended as content tokens, never as special
// tokens. The word and typeID arguments become the word index and type id
// of every appended piece.
func (enc *Encoder) EncodeWord(pre pretokenize.PreToken, b *encoding.Builder, word, typeID int) {
	runes := []rune(pre.Text)
	if len(runes) == 0 {
		return
	}
	if len(runes) > enc.maxWordLength {
		enc.appendUnknown(pre, b, word, typeID)
		return
	}

	var pieces []piece
	start := 0
	isFirst := true
	for start < len(runes) {
		p, ok := enc.matchPiece(runes, start, isFirst)
		if !ok {
			// One unmatched position discards everything matched so far:
			// the whole word degrades to a single unknown token.
			enc.appendUnknown(pre, b, word, typeID)
			return
		}
		pieces = append(pieces, p)
		start = p.end
		isFirst = false
	}

	for _, p := range pieces {
		span := encoding.Span{Start: pre.Start + p.start, End: pre.Start + p.end}
		b.Token(p.text, p.id, span, word, typeID)
	}
}

// matchPiece finds the next piece at position start: the longest trie match
// first (word trie for the first piece, subword trie after), then the
// single-character vocabulary-table fallback.
func (enc *Encoder) matchPiece(runes []rune, start int, isFirst bool) (piece, bool) {
	trie := enc.vocab.SubwordTrie()
	if isFirst {
		trie = enc.vocab.WordTrie()
	}
	if m, ok := trie.LongestMatch(runes, start); ok {
		text := m.Text
		if !isFirst {
			text = enc.marker + text
		}
		return piece{text: text, id: m.ID, start: start, end: m.End}, true
	}

	lookup := string(runes[start])
	if !isFirst {
		lookup = enc.marker + lookup
	}
	if id, ok := enc.vocab.TokenToID(lookup); ok {
		return piece{text: lookup, id: id, start: start, end: start + 1}, true
	}
	return piece{}, false
}

func (enc *Encoder) appendUnknown(pre pretokenize.PreToken, b *encoding.Builder, word, typeID int) {
	span := encoding.Span{Start: pre.Start, End: pre.End}
	b.Token(enc.unkToken, enc.vocab.UnkID(), span, word, typeID)
}
