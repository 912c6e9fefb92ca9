// Package vocab holds an immutable WordPiece vocabulary: the token<->id
// table, the prefix tries used for greedy matching, and the resolved ids of
// the reserved tokens ([PAD], [UNK], [CLS], [SEP], [MASK]).
package vocab

import (
	"strings"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// DefaultContinuationMarker is the prefix that marks subword-continuation
// pieces in BERT-style vocabularies.
const DefaultContinuationMarker = "##"

// Reserved token strings and the numeric ids used when a vocabulary does not
// contain them. The fallbacks match the ids used by the standard BERT
// vocabularies, so a vocabulary without the literal reserved strings remains
// usable.
const (
	PadToken  = "[PAD]"
	UnkToken  = "[UNK]"
	ClsToken  = "[CLS]"
	SepToken  = "[SEP]"
	MaskToken = "[MASK]"

	fallbackPadID  = 0
	fallbackUnkID  = 100
	fallbackClsID  = 101
	fallbackSepID  = 102
	fallbackMaskID = 103
)

// Vocabulary is created once from an ordered token list (index == id) and is
// immutable afterwards. Tokens enclosed in brackets ([PAD], [unused0], ...)
// are reserved: present in the table but excluded from both tries. Tokens
// beginning with the continuation marker are stored in the subword trie with
// the marker stripped; every other token goes into the word trie.
type Vocabulary struct {
	tokens    []string
	tokenToID map[string]int

	marker      string
	wordTrie    *Trie
	subwordTrie *Trie

	padID  int
	unkID  int
	clsID  int
	sepID  int
	maskID int
}

// New builds a Vocabulary from an ordered token list using the default
// continuation marker.
func New(tokens []string) (*Vocabulary, error) {
	return NewWithMarker(tokens, DefaultContinuationMarker)
}

// NewWithMarker builds a Vocabulary with a custom continuation marker.
func NewWithMarker(tokens []string, marker string) (*Vocabulary, error) {
	if marker == "" {
		return nil, errors.Errorf("vocab: continuation marker must not be empty")
	}
	v := &Vocabulary{
		tokens:      make([]string, len(tokens)),
		tokenToID:   make(map[string]int, len(tokens)),
		marker:      marker,
		wordTrie:    NewTrie(),
		subwordTrie: NewTrie(),
	}
	copy(v.tokens, tokens)

	for id, token := range v.tokens {
		if token == "" {
			// Blank slot: occupies the id to keep line/id alignment, but is
			// not matchable.
			continue
		}
		v.tokenToID[token] = id
		if isReserved(token) {
			continue
		}
		if rest, ok := strings.CutPrefix(token, marker); ok {
			v.subwordTrie.Insert(rest, id)
		} else {
			v.wordTrie.Insert(token, id)
		}
	}

	v.padID = v.resolve(PadToken, fallbackPadID)
	v.unkID = v.resolve(UnkToken, fallbackUnkID)
	v.clsID = v.resolve(ClsToken, fallbackClsID)
	v.sepID = v.resolve(SepToken, fallbackSepID)
	v.maskID = v.resolve(MaskToken, fallbackMaskID)

	klog.V(2).Infof("vocab: built vocabulary with %d tokens (%d words, %d subwords)",
		len(v.tokens), v.wordTrie.Len(), v.subwordTrie.Len())
	return v, nil
}

// isReserved reports whether token has the reserved [ ... ] form.
func isReserved(token string) bool {
	return len(token) >= 2 && token[0] == '[' && token[len(token)-1] == ']'
}

func (v *Vocabulary) resolve(token string, fallback int) int {
	if id, ok := v.tokenToID[token]; ok {
		return id
	}
	return fallback
}

// Size returns the number of tokens.
func (v *Vocabulary) Size() int { return len(v.tokens) }

// ContinuationMarker returns the subword-continuation prefix.
func (v *Vocabulary) ContinuationMarker() string { return v.marker }

// Tokens returns a copy of the ordered token list. The copy is the
// serialized form from which an identical Vocabulary can be rebuilt, e.g.
// inside a parallel batch worker.
func (v *Vocabulary) Tokens() []string {
	tokens := make([]string, len(v.tokens))
	copy(tokens, v.tokens)
	return tokens
}

// TokenToID returns the id for token.
func (v *Vocabulary) TokenToID(token string) (int, bool) {
	id, ok := v.tokenToID[token]
	return id, ok
}

// IDToToken returns the token string for id. Out-of-range ids map to the
// unknown token string rather than failing.
func (v *Vocabulary) IDToToken(id int) string {
	if id < 0 || id >= len(v.tokens) {
		return UnkToken
	}
	return v.tokens[id]
}

// Contains reports whether token is in the vocabulary.
func (v *Vocabulary) Contains(token string) bool {
	_, ok := v.tokenToID[token]
	return ok
}

// WordTrie returns the trie holding whole-word pieces.
func (v *Vocabulary) WordTrie() *Trie { return v.wordTrie }

// SubwordTrie returns the trie holding continuation pieces, stored without
// their marker.
func (v *Vocabulary) SubwordTrie() *Trie { return v.subwordTrie }

// Reserved token ids.

func (v *Vocabulary) PadID() int  { return v.padID }
func (v *Vocabulary) UnkID() int  { return v.unkID }
func (v *Vocabulary) ClsID() int  { return v.clsID }
func (v *Vocabulary) SepID() int  { return v.sepID }
func (v *Vocabulary) MaskID() int { return v.maskID }
