package encoding

// Truncate returns an Encoding with at most maxLength tokens. A maxLength
// at or above the current length is a no-op. The direction names the side
// tokens are removed from: Right keeps the first maxLength positions, Left
// keeps the last.
func (e *Encoding) Truncate(maxLength int, dir Direction) *Encoding {
	if e.Len() <= maxLength {
		return e
	}
	if maxLength <= 0 {
		return newWithCapacity(0)
	}
	if dir == Left {
		return e.slice(e.Len()-maxLength, e.Len())
	}
	return e.slice(0, maxLength)
}

// TruncatePair cuts a pair of encodings down to maxLength minus reserved
// structural slots. When the combined length already fits, both pass
// through unchanged; when no room is left at all, both become empty.
//
// LongestFirst removes one token per iteration from whichever side is
// currently longer, removing from b on ties.
func TruncatePair(a, b *Encoding, maxLength int, strategy TruncationStrategy, reserved int) (*Encoding, *Encoding) {
	if strategy == DoNotTruncate {
		return a, b
	}
	available := maxLength - reserved
	if available <= 0 {
		return newWithCapacity(0), newWithCapacity(0)
	}
	total := a.Len() + b.Len()
	if total <= available {
		return a, b
	}
	toRemove := total - available

	switch strategy {
	case OnlyFirst:
		keep := a.Len() - toRemove
		if keep <= 0 {
			return newWithCapacity(0), b
		}
		return a.Truncate(keep, Right), b
	case OnlySecond:
		keep := b.Len() - toRemove
		if keep <= 0 {
			return a, newWithCapacity(0)
		}
		return a, b.Truncate(keep, Right)
	default: // LongestFirst
		lenA, lenB := a.Len(), b.Len()
		for i := 0; i < toRemove; i++ {
			if lenA > lenB {
				lenA--
			} else {
				lenB--
			}
		}
		return a.Truncate(lenA, Right), b.Truncate(lenB, Right)
	}
}

// Pad extends the Encoding to targetLength with padding slots: the pad
// token and id, attention 0, special flag 1, zero span and no word or
// sequence membership. Right places the original tokens first; Left places
// them last. A targetLength at or below the current length is a no-op.
func (e *Encoding) Pad(targetLength, padID int, padToken string, dir Direction) *Encoding {
	n := e.Len()
	if n >= targetLength {
		return e
	}
	out := newWithCapacity(targetLength)
	appendPadding := func(count int) {
		for i := 0; i < count; i++ {
			out.Tokens = append(out.Tokens, padToken)
			out.IDs = append(out.IDs, padID)
			out.TypeIDs = append(out.TypeIDs, 0)
			out.AttentionMask = append(out.AttentionMask, 0)
			out.SpecialTokensMask = append(out.SpecialTokensMask, 1)
			out.Offsets = append(out.Offsets, Span{})
			out.Words = append(out.Words, nil)
			out.SequenceIDs = append(out.SequenceIDs, nil)
		}
	}
	appendOriginal := func() {
		out.Tokens = append(out.Tokens, e.Tokens...)
		out.IDs = append(out.IDs, e.IDs...)
		out.TypeIDs = append(out.TypeIDs, e.TypeIDs...)
		out.AttentionMask = append(out.AttentionMask, e.AttentionMask...)
		out.SpecialTokensMask = append(out.SpecialTokensMask, e.SpecialTokensMask...)
		out.Offsets = append(out.Offsets, e.Offsets...)
		out.Words = append(out.Words, e.Words...)
		out.SequenceIDs = append(out.SequenceIDs, e.SequenceIDs...)
	}
	if dir == Left {
		appendPadding(targetLength - n)
		appendOriginal()
	} else {
		appendOriginal()
		appendPadding(targetLength - n)
	}
	return out
}

// PadToMultipleOf pads up to the next multiple of multiple. A multiple at
// or below zero, or a length already on a multiple, is a no-op.
func (e *Encoding) PadToMultipleOf(multiple, padID int, padToken string, dir Direction) *Encoding {
	if multiple <= 0 || e.Len()%multiple == 0 {
		return e
	}
	target := (e.Len()/multiple + 1) * multiple
	return e.Pad(target, padID, padToken, dir)
}

// Merge concatenates the columns of all encodings in order. With
// growingOffsets, each encoding's non-zero spans are shifted by the running
// maximum end offset of the previous encodings, and its word indices by the
// running count of words seen so far; structural zero spans and nil word
// indices are never shifted. Sequence indices are copied as-is.
//
// Zero encodings yield an empty Encoding; a single encoding is returned
// unchanged.
func Merge(encodings []*Encoding, growingOffsets bool) *Encoding {
	if len(encodings) == 0 {
		return newWithCapacity(0)
	}
	if len(encodings) == 1 {
		return encodings[0]
	}

	total := 0
	for _, enc := range encodings {
		total += enc.Len()
	}
	out := newWithCapacity(total)

	offsetShift := 0
	wordShift := 0
	for _, enc := range encodings {
		maxEnd := 0
		maxWord := -1
		for i := 0; i < enc.Len(); i++ {
			out.Tokens = append(out.Tokens, enc.Tokens[i])
			out.IDs = append(out.IDs, enc.IDs[i])
			out.TypeIDs = append(out.TypeIDs, enc.TypeIDs[i])
			out.AttentionMask = append(out.AttentionMask, enc.AttentionMask[i])
			out.SpecialTokensMask = append(out.SpecialTokensMask, enc.SpecialTokensMask[i])

			span := enc.Offsets[i]
			if growingOffsets && !span.IsZero() {
				span = Span{Start: span.Start + offsetShift, End: span.End + offsetShift}
			}
			out.Offsets = append(out.Offsets, span)
			if enc.Offsets[i].End > maxEnd {
				maxEnd = enc.Offsets[i].End
			}

			word := enc.Words[i]
			if word != nil {
				if *word > maxWord {
					maxWord = *word
				}
				if growingOffsets {
					shifted := *word + wordShift
					word = &shifted
				}
			}
			out.Words = append(out.Words, word)
			out.SequenceIDs = append(out.SequenceIDs, enc.SequenceIDs[i])
		}
		if growingOffsets {
			offsetShift += maxEnd
			wordShift += maxWord + 1
		}
	}
	return out
}
