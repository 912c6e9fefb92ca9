package encoding

// Position-mapping queries. All of them are linear scans over the columns;
// a structural or padding token never satisfies a char-offset query because
// its span is the zero Span, and token-indexed queries report no match for
// positions outside range or occupied by a special token.

// TokenToChars returns the character span of the token at position pos.
func (e *Encoding) TokenToChars(pos int) (Span, bool) {
	if pos < 0 || pos >= e.Len() || e.SpecialTokensMask[pos] == 1 {
		return Span{}, false
	}
	return e.Offsets[pos], true
}

// TokenToWord returns the word index of the token at position pos.
func (e *Encoding) TokenToWord(pos int) (int, bool) {
	if pos < 0 || pos >= e.Len() || e.Words[pos] == nil {
		return 0, false
	}
	return *e.Words[pos], true
}

// TokenToSequence returns the sequence index of the token at position pos.
func (e *Encoding) TokenToSequence(pos int) (int, bool) {
	if pos < 0 || pos >= e.Len() || e.SequenceIDs[pos] == nil {
		return 0, false
	}
	return *e.SequenceIDs[pos], true
}

// CharToToken returns the position of the content token of sequence seq
// whose span contains the character offset pos.
func (e *Encoding) CharToToken(pos, seq int) (int, bool) {
	for i := 0; i < e.Len(); i++ {
		if e.SequenceIDs[i] == nil || *e.SequenceIDs[i] != seq {
			continue
		}
		if span := e.Offsets[i]; pos >= span.Start && pos < span.End {
			return i, true
		}
	}
	return 0, false
}

// CharToWord returns the word index of the content token of sequence seq
// whose span contains the character offset pos.
func (e *Encoding) CharToWord(pos, seq int) (int, bool) {
	token, ok := e.CharToToken(pos, seq)
	if !ok {
		return 0, false
	}
	return e.TokenToWord(token)
}

// WordToChars returns the character span covered by all pieces of the given
// word in sequence seq.
func (e *Encoding) WordToChars(word, seq int) (Span, bool) {
	tokens, ok := e.WordToTokens(word, seq)
	if !ok {
		return Span{}, false
	}
	return Span{Start: e.Offsets[tokens.Start].Start, End: e.Offsets[tokens.End-1].End}, true
}

// WordToTokens returns the half-open range of token positions holding the
// pieces of the given word in sequence seq.
func (e *Encoding) WordToTokens(word, seq int) (Span, bool) {
	first, last := -1, -1
	for i := 0; i < e.Len(); i++ {
		if e.Words[i] == nil || *e.Words[i] != word {
			continue
		}
		if e.SequenceIDs[i] == nil || *e.SequenceIDs[i] != seq {
			continue
		}
		if first < 0 {
			first = i
		}
		last = i
	}
	if first < 0 {
		return Span{}, false
	}
	return Span{Start: first, End: last + 1}, true
}
