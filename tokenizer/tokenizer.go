// Package tokenizer composes the vocabulary, pre-tokenizer and WordPiece
// encoder into a BERT tokenizer: single, pair and batch encoding, decoding,
// and the padding/truncation configuration applied around them.
package tokenizer

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/NikshetSteh/bert-tokenizer/encoding"
	"github.com/NikshetSteh/bert-tokenizer/pretokenize"
	"github.com/NikshetSteh/bert-tokenizer/vocab"
	"github.com/NikshetSteh/bert-tokenizer/wordpiece"
)

// Config enumerates the tokenization options.
type Config struct {
	Lowercase          bool
	StripAccents       bool
	HandleChineseChars bool
	// ContinuationMarker is the subword-continuation prefix; empty selects
	// the vocabulary's marker.
	ContinuationMarker string
	// MaxWordLength caps the rune length of words attempted by WordPiece;
	// zero or negative selects wordpiece.DefaultMaxWordLength.
	MaxWordLength int
	// AddStartToken wraps encoded sequences with the [CLS] token.
	AddStartToken bool
	// AddSeparatorToken terminates encoded sequences with the [SEP] token.
	AddSeparatorToken bool
}

// DefaultConfig matches the standard uncased BERT tokenizer.
func DefaultConfig() Config {
	return Config{
		Lowercase:          true,
		StripAccents:       true,
		HandleChineseChars: true,
		MaxWordLength:      wordpiece.DefaultMaxWordLength,
		AddStartToken:      true,
		AddSeparatorToken:  true,
	}
}

// PaddingOptions configures how encodings are padded.
type PaddingOptions struct {
	Direction encoding.Direction
	// Length is the fixed padding target; zero pads batches to their
	// longest item and leaves single encodings unpadded.
	Length int
	// ToMultipleOf snaps the padding target up to the next multiple.
	ToMultipleOf int
}

// TruncationOptions configures how encodings are truncated.
type TruncationOptions struct {
	Direction encoding.Direction
	MaxLength int
	Strategy  encoding.TruncationStrategy
}

// Tokenizer is immutable: the With* methods return a reconfigured copy, so
// a Tokenizer value can be shared freely across goroutines.
type Tokenizer struct {
	vocab   *vocab.Vocabulary
	pre     *pretokenize.PreTokenizer
	encoder *wordpiece.Encoder
	config  Config

	padToken string
	clsToken string
	sepToken string

	padding    *PaddingOptions
	truncation *TruncationOptions
}

// New returns a Tokenizer over v with DefaultConfig and no padding or
// truncation configured.
func New(v *vocab.Vocabulary) *Tokenizer {
	t := &Tokenizer{vocab: v, config: DefaultConfig()}
	return t.derive()
}

// derive normalizes the config and rebuilds the derived components.
func (t *Tokenizer) derive() *Tokenizer {
	if t.config.ContinuationMarker == "" {
		t.config.ContinuationMarker = t.vocab.ContinuationMarker()
	}
	if t.config.MaxWordLength <= 0 {
		t.config.MaxWordLength = wordpiece.DefaultMaxWordLength
	}
	if t.config.ContinuationMarker != t.vocab.ContinuationMarker() {
		v, err := vocab.NewWithMarker(t.vocab.Tokens(), t.config.ContinuationMarker)
		if err != nil {
			panic(errors.Wrap(err, "tokenizer: rebuilding vocabulary for continuation marker"))
		}
		t.vocab = v
	}
	t.pre = pretokenize.New(pretokenize.Config{
		Lowercase:          t.config.Lowercase,
		StripAccents:       t.config.StripAccents,
		HandleChineseChars: t.config.HandleChineseChars,
	})
	t.encoder = wordpiece.New(t.vocab, t.config.MaxWordLength)
	t.padToken = t.reservedString(t.vocab.PadID(), vocab.PadToken)
	t.clsToken = t.reservedString(t.vocab.ClsID(), vocab.ClsToken)
	t.sepToken = t.reservedString(t.vocab.SepID(), vocab.SepToken)
	return t
}

// reservedString returns the vocabulary entry behind a reserved id, or the
// canonical reserved string when the id is a numeric fallback outside the
// vocabulary.
func (t *Tokenizer) reservedString(id int, canonical string) string {
	if id >= 0 && id < t.vocab.Size() {
		return t.vocab.IDToToken(id)
	}
	return canonical
}

// WithConfig returns a copy of the Tokenizer using cfg.
func (t *Tokenizer) WithConfig(cfg Config) *Tokenizer {
	c := *t
	c.config = cfg
	return c.derive()
}

// Config returns the active configuration.
func (t *Tokenizer) Config() Config { return t.config }

// WithPadding returns a copy with padding enabled.
func (t *Tokenizer) WithPadding(p PaddingOptions) *Tokenizer {
	c := *t
	c.padding = &p
	return &c
}

// WithNoPadding returns a copy with padding disabled.
func (t *Tokenizer) WithNoPadding() *Tokenizer {
	c := *t
	c.padding = nil
	return &c
}

// WithTruncation returns a copy with truncation enabled.
func (t *Tokenizer) WithTruncation(tr TruncationOptions) *Tokenizer {
	c := *t
	c.truncation = &tr
	return &c
}

// WithNoTruncation returns a copy with truncation disabled.
func (t *Tokenizer) WithNoTruncation() *Tokenizer {
	c := *t
	c.truncation = nil
	return &c
}

// Vocab returns the underlying vocabulary.
func (t *Tokenizer) Vocab() *vocab.Vocabulary { return t.vocab }

// VocabSize returns the number of vocabulary tokens.
func (t *Tokenizer) VocabSize() int { return t.vocab.Size() }

// TokenToID converts a token string to its id.
func (t *Tokenizer) TokenToID(token string) (int, bool) { return t.vocab.TokenToID(token) }

// IDToToken converts an id to its token string; out-of-range ids map to the
// unknown token string.
func (t *Tokenizer) IDToToken(id int) string { return t.vocab.IDToToken(id) }

// Encode tokenizes a single text: pre-tokenize, WordPiece-encode each word,
// wrap with the configured structural tokens, then apply the active
// truncation and padding.
func (t *Tokenizer) Encode(text string) *encoding.Encoding {
	enc := t.encodeSingle(text)
	enc = t.applyTruncation(enc)
	return t.applyPadding(enc)
}

// encodeSingle builds the wrapped encoding without truncation or padding.
func (t *Tokenizer) encodeSingle(text string) *encoding.Encoding {
	words := t.pre.PreTokenize(text)
	b := encoding.NewBuilder(len(words) + 2)
	if t.config.AddStartToken {
		b.Special(t.clsToken, t.vocab.ClsID(), 0)
	}
	for i, word := range words {
		t.encoder.EncodeWord(word, b, i, 0)
	}
	if t.config.AddSeparatorToken {
		b.Special(t.sepToken, t.vocab.SepID(), 0)
	}
	return b.Encoding()
}

// encodeSequence tokenizes one side of a pair: content tokens only, with
// the given type id.
func (t *Tokenizer) encodeSequence(text string, typeID int) *encoding.Encoding {
	words := t.pre.PreTokenize(text)
	b := encoding.NewBuilder(len(words))
	for i, word := range words {
		t.encoder.EncodeWord(word, b, i, typeID)
	}
	return b.Encoding()
}

// EncodePair tokenizes two texts into one encoding, using the active
// truncation configuration for the pair budget.
func (t *Tokenizer) EncodePair(a, b string) *encoding.Encoding {
	return t.EncodePairWithTruncation(a, b, 0, encoding.LongestFirst)
}

// EncodePairWithTruncation tokenizes two texts into one encoding of the
// form [CLS] A [SEP] B [SEP] with type ids 0 for the first segment and 1
// for the second. The pair budget is the larger of maxLength and the active
// truncation configuration; zero maxLength with no configuration means no
// pair truncation. Padding is applied afterwards as configured.
func (t *Tokenizer) EncodePairWithTruncation(a, b string, maxLength int, strategy encoding.TruncationStrategy) *encoding.Encoding {
	encA := t.encodeSequence(a, 0)
	encB := t.encodeSequence(b, 1)

	budget := maxLength
	if t.truncation != nil {
		if t.truncation.MaxLength > budget {
			budget = t.truncation.MaxLength
		}
		if maxLength == 0 {
			strategy = t.truncation.Strategy
		}
	}
	if budget > 0 {
		encA, encB = encoding.TruncatePair(encA, encB, budget, strategy, t.reservedSlots())
	}

	out := t.assemblePair(encA, encB)
	return t.applyPadding(out)
}

// reservedSlots counts the structural tokens a pair encoding adds.
func (t *Tokenizer) reservedSlots() int {
	n := 0
	if t.config.AddStartToken {
		n++
	}
	if t.config.AddSeparatorToken {
		n += 2
	}
	return n
}

// assemblePair joins the two bare segments with structural tokens. Word
// indices of the second segment are shifted past the first segment's words.
func (t *Tokenizer) assemblePair(encA, encB *encoding.Encoding) *encoding.Encoding {
	b := encoding.NewBuilder(encA.Len() + encB.Len() + 3)
	if t.config.AddStartToken {
		b.Special(t.clsToken, t.vocab.ClsID(), 0)
	}
	appendContent(b, encA, 0)
	if t.config.AddSeparatorToken {
		b.Special(t.sepToken, t.vocab.SepID(), 0)
	}
	appendContent(b, encB, maxWordIndex(encA)+1)
	if t.config.AddSeparatorToken {
		b.Special(t.sepToken, t.vocab.SepID(), 1)
	}
	return b.Encoding()
}

func appendContent(b *encoding.Builder, e *encoding.Encoding, wordShift int) {
	for i := 0; i < e.Len(); i++ {
		word := 0
		if e.Words[i] != nil {
			word = *e.Words[i] + wordShift
		}
		b.Token(e.Tokens[i], e.IDs[i], e.Offsets[i], word, e.TypeIDs[i])
	}
}

func maxWordIndex(e *encoding.Encoding) int {
	max := -1
	for _, w := range e.Words {
		if w != nil && *w > max {
			max = *w
		}
	}
	return max
}

func (t *Tokenizer) applyTruncation(enc *encoding.Encoding) *encoding.Encoding {
	if t.truncation == nil {
		return enc
	}
	return enc.Truncate(t.truncation.MaxLength, t.truncation.Direction)
}

func (t *Tokenizer) applyPadding(enc *encoding.Encoding) *encoding.Encoding {
	if t.padding == nil {
		return enc
	}
	if t.padding.Length > 0 {
		enc = enc.Pad(t.padding.Length, t.vocab.PadID(), t.padToken, t.padding.Direction)
	}
	return enc.PadToMultipleOf(t.padding.ToMultipleOf, t.vocab.PadID(), t.padToken, t.padding.Direction)
}

// Decode reconstructs a string from ids. Structural tokens (start,
// separator, padding) are dropped when skipStructural is set; continuation
// pieces attach directly to the previous piece, every other piece is
// preceded by a single space. Out-of-range ids decode as the unknown token
// string.
func (t *Tokenizer) Decode(ids []int, skipStructural bool) string {
	marker := t.config.ContinuationMarker
	var sb strings.Builder
	for _, id := range ids {
		if skipStructural && t.isStructuralID(id) {
			continue
		}
		token := t.vocab.IDToToken(id)
		if rest, ok := strings.CutPrefix(token, marker); ok {
			sb.WriteString(rest)
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(token)
	}
	return sb.String()
}

func (t *Tokenizer) isStructuralID(id int) bool {
	return id == t.vocab.PadID() || id == t.vocab.ClsID() || id == t.vocab.SepID()
}
