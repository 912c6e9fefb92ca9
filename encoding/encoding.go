// Package encoding defines the column-aligned result of tokenization and
// the transformations over it: padding, truncation (single and paired) and
// merging. An Encoding is immutable once built; every transformation
// returns a new Encoding.
package encoding

// Span is a half-open [Start, End) range of rune offsets into the
// normalized text. The zero Span marks structural tokens (sequence start,
// separator, padding), which carry no text of their own.
type Span struct {
	Start int
	End   int
}

// IsZero reports whether the span is the structural-token marker.
func (s Span) IsZero() bool { return s.Start == 0 && s.End == 0 }

// Direction selects the side padding or truncation applies to. The zero
// value is Right, which is the usual default for both.
type Direction uint8

const (
	Right Direction = iota
	Left
)

// TruncationStrategy selects how a pair of sequences is cut down to a
// shared length budget.
type TruncationStrategy uint8

const (
	// LongestFirst removes one token at a time from whichever side is
	// currently longer, removing from the second side on ties.
	LongestFirst TruncationStrategy = iota
	// OnlyFirst removes tokens from the first side only.
	OnlyFirst
	// OnlySecond removes tokens from the second side only.
	OnlySecond
	// DoNotTruncate passes both sides through unchanged.
	DoNotTruncate
)

// Encoding holds the tokenization result as parallel columns, one entry per
// token. Every column has the same length; all transformations preserve
// that invariant. Treat a built Encoding as read-only.
//
// Words and SequenceIDs are optional columns: a nil entry means the token
// has no word or sequence membership, which is the case for structural and
// padding tokens.
type Encoding struct {
	Tokens            []string
	IDs               []int
	TypeIDs           []int
	AttentionMask     []int
	SpecialTokensMask []int
	Offsets           []Span
	Words             []*int
	SequenceIDs       []*int
}

// Len returns the number of tokens.
func (e *Encoding) Len() int { return len(e.IDs) }

// NSequences returns the number of distinct sequences the content tokens
// belong to.
func (e *Encoding) NSequences() int {
	n := 0
	for _, seq := range e.SequenceIDs {
		if seq != nil && *seq+1 > n {
			n = *seq + 1
		}
	}
	return n
}

func newWithCapacity(n int) *Encoding {
	return &Encoding{
		Tokens:            make([]string, 0, n),
		IDs:               make([]int, 0, n),
		TypeIDs:           make([]int, 0, n),
		AttentionMask:     make([]int, 0, n),
		SpecialTokensMask: make([]int, 0, n),
		Offsets:           make([]Span, 0, n),
		Words:             make([]*int, 0, n),
		SequenceIDs:       make([]*int, 0, n),
	}
}

// slice returns a copy of the [from, to) rows of every column.
func (e *Encoding) slice(from, to int) *Encoding {
	out := newWithCapacity(to - from)
	out.Tokens = append(out.Tokens, e.Tokens[from:to]...)
	out.IDs = append(out.IDs, e.IDs[from:to]...)
	out.TypeIDs = append(out.TypeIDs, e.TypeIDs[from:to]...)
	out.AttentionMask = append(out.AttentionMask, e.AttentionMask[from:to]...)
	out.SpecialTokensMask = append(out.SpecialTokensMask, e.SpecialTokensMask[from:to]...)
	out.Offsets = append(out.Offsets, e.Offsets[from:to]...)
	out.Words = append(out.Words, e.Words[from:to]...)
	out.SequenceIDs = append(out.SequenceIDs, e.SequenceIDs[from:to]...)
	return out
}

// Builder assembles an Encoding append-only, one token per call. The zero
// Builder is ready to use.
type Builder struct {
	enc Encoding
}

// NewBuilder returns a Builder expecting about n tokens.
func NewBuilder(n int) *Builder {
	return &Builder{enc: *newWithCapacity(n)}
}

// Token appends a content token. The sequence index is derived from the
// type id; use TokenWithSequence to override it.
func (b *Builder) Token(text string, id int, span Span, word, typeID int) *Builder {
	return b.TokenWithSequence(text, id, span, word, typeID, typeID)
}

// TokenWithSequence appends a content token with an explicit sequence index.
func (b *Builder) TokenWithSequence(text string, id int, span Span, word, typeID, sequence int) *Builder {
	w, s := word, sequence
	b.append(text, id, typeID, 1, 0, span, &w, &s)
	return b
}

// Special appends a structural token: attention 1, zero span, no word or
// sequence membership.
func (b *Builder) Special(text string, id, typeID int) *Builder {
	b.append(text, id, typeID, 1, 1, Span{}, nil, nil)
	return b
}

func (b *Builder) append(text string, id, typeID, attention, special int, span Span, word, sequence *int) {
	b.enc.Tokens = append(b.enc.Tokens, text)
	b.enc.IDs = append(b.enc.IDs, id)
	b.enc.TypeIDs = append(b.enc.TypeIDs, typeID)
	b.enc.AttentionMask = append(b.enc.AttentionMask, attention)
	b.enc.SpecialTokensMask = append(b.enc.SpecialTokensMask, special)
	b.enc.Offsets = append(b.enc.Offsets, span)
	b.enc.Words = append(b.enc.Words, word)
	b.enc.SequenceIDs = append(b.enc.SequenceIDs, sequence)
}

// Len returns the number of tokens appended so far.
func (b *Builder) Len() int { return b.enc.Len() }

// Encoding freezes the builder. The Builder must not be used afterwards.
func (b *Builder) Encoding() *Encoding {
	enc := b.enc
	b.enc = Encoding{}
	return &enc
}
