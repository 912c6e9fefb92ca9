package vocab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrie_InsertAndLookup(t *testing.T) {
	tr := NewTrie()
	tr.Insert("hello", 1)
	tr.Insert("help", 2)
	tr.Insert("he", 3)

	assert.Equal(t, 3, tr.Len())

	id, ok := tr.Lookup("hello")
	require.True(t, ok)
	assert.Equal(t, 1, id)

	id, ok = tr.Lookup("he")
	require.True(t, ok)
	assert.Equal(t, 3, id)

	_, ok = tr.Lookup("hel")
	assert.False(t, ok, "prefix of stored entries is not itself stored")

	_, ok = tr.Lookup("unknown")
	assert.False(t, ok)
}

func TestTrie_DuplicateInsertOverwritesPayload(t *testing.T) {
	tr := NewTrie()
	tr.Insert("token", 7)
	tr.Insert("token", 42)

	assert.Equal(t, 1, tr.Len(), "duplicate insert must not grow the trie")
	id, ok := tr.Lookup("token")
	require.True(t, ok)
	assert.Equal(t, 42, id)
}

func TestTrie_LongestMatch(t *testing.T) {
	tr := NewTrie()
	tr.Insert("a", 1)
	tr.Insert("ab", 2)
	tr.Insert("abcd", 3)

	tests := []struct {
		name  string
		text  string
		start int
		want  Match
		found bool
	}{
		{
			name:  "full entry",
			text:  "abcd",
			start: 0,
			want:  Match{ID: 3, Text: "abcd", End: 4},
			found: true,
		},
		{
			name:  "stops at missing edge",
			text:  "abxy",
			start: 0,
			want:  Match{ID: 2, Text: "ab", End: 2},
			found: true,
		},
		{
			name: "terminal past dead end is not found",
			// "abc" walks onto the abcd branch but ends before the
			// terminal; the last terminal crossed is "ab".
			text:  "abc",
			start: 0,
			want:  Match{ID: 2, Text: "ab", End: 2},
			found: true,
		},
		{
			name:  "offset start",
			text:  "xxab",
			start: 2,
			want:  Match{ID: 2, Text: "ab", End: 4},
			found: true,
		},
		{
			name:  "no match",
			text:  "zzz",
			start: 0,
			found: false,
		},
		{
			name:  "start at end of text",
			text:  "ab",
			start: 2,
			found: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := tr.LongestMatch([]rune(tt.text), tt.start)
			require.Equal(t, tt.found, found)
			if found {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestTrie_AllMatches(t *testing.T) {
	tr := NewTrie()
	tr.Insert("t", 1)
	tr.Insert("to", 2)
	tr.Insert("tok", 3)
	tr.Insert("tokens", 4)

	got := tr.AllMatches([]rune("token"), 0)
	want := []Match{
		{ID: 1, Text: "t", End: 1},
		{ID: 2, Text: "to", End: 2},
		{ID: 3, Text: "tok", End: 3},
	}
	assert.Equal(t, want, got)

	assert.Empty(t, tr.AllMatches([]rune("xyz"), 0))
}

func TestTrie_MultiRuneCodePoints(t *testing.T) {
	tr := NewTrie()
	tr.Insert("日本", 1)
	tr.Insert("日", 2)
	tr.Insert("🙂x", 3)

	m, ok := tr.LongestMatch([]rune("日本語"), 0)
	require.True(t, ok)
	assert.Equal(t, Match{ID: 1, Text: "日本", End: 2}, m, "End counts runes, not bytes")

	m, ok = tr.LongestMatch([]rune("🙂x"), 0)
	require.True(t, ok)
	assert.Equal(t, 2, m.End, "an astral code point is one position")
}
