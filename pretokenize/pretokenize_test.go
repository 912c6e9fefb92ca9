package pretokenize

import (
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/unicode/norm"
)

func defaultPre() *PreTokenizer {
	return New(Config{Lowercase: true, StripAccents: true, HandleChineseChars: true})
}

func TestNormalize_CleansControlAndWhitespace(t *testing.T) {
	p := defaultPre()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "hello world", "hello world"},
		{"tab and newline become spaces", "hello\tworld\n", "hello world "},
		{"carriage return", "a\rb", "a b"},
		{"nul dropped", "he\x00llo", "hello"},
		{"replacement char dropped", "he�llo", "hello"},
		{"control char dropped", "he\x01llo", "hello"},
		{"unicode space", "a b", "a b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, string(p.Normalize(tt.input)))
		})
	}
}

func TestNormalize_LowercaseAndAccents(t *testing.T) {
	p := defaultPre()

	tests := []struct {
		input string
		want  string
	}{
		{"HeLLo", "hello"},
		{"café", "cafe"},
		{"naïve", "naive"},
		{"Zürich", "zurich"},
		{"São Paulo", "sao paulo"},
		{"résumé", "resume"},
		// Combining mark following a base letter is dropped.
		{"éclair", "eclair"},
		// Ligatures expand to multi-letter sequences.
		{"œuvre", "oeuvre"},
		{"straße", "strasse"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, string(p.Normalize(tt.input)))
		})
	}
}

func TestNormalize_StripAccentsWithoutLowercase(t *testing.T) {
	p := New(Config{StripAccents: true})
	assert.Equal(t, "Cafe", string(p.Normalize("Café")))
	assert.Equal(t, "OEuvre", string(p.Normalize("Œuvre")))
}

func TestNormalize_LowercaseOnly(t *testing.T) {
	p := New(Config{Lowercase: true})
	assert.Equal(t, "café", string(p.Normalize("CAFÉ")), "accents kept when stripping is off")
}

func TestNormalize_ChineseChars(t *testing.T) {
	p := defaultPre()
	assert.Equal(t, " 你  好 ab", string(p.Normalize("你好ab")))

	off := New(Config{Lowercase: true})
	assert.Equal(t, "你好ab", string(off.Normalize("你好ab")))
}

// The engine's accent folding is table-driven for parity with the reference
// tokenizer; for the common Latin range it must agree with Unicode NFD
// decomposition followed by combining-mark removal.
func TestAccentTable_AgreesWithNFD(t *testing.T) {
	p := New(Config{Lowercase: true, StripAccents: true})

	inputs := []string{"café", "naïve", "résumé", "Zürich", "München", "piñata", "fiancée", "àèìòù"}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			var nfd strings.Builder
			for _, r := range norm.NFD.String(strings.ToLower(input)) {
				if unicode.Is(unicode.Mn, r) {
					continue
				}
				nfd.WriteRune(r)
			}
			assert.Equal(t, nfd.String(), string(p.Normalize(input)))
		})
	}
}

func TestSplit_WordsAndPunctuation(t *testing.T) {
	p := defaultPre()

	tests := []struct {
		name  string
		input string
		want  []PreToken
	}{
		{
			name:  "words with punctuation",
			input: "hello, world!",
			want: []PreToken{
				{Text: "hello", Start: 0, End: 5},
				{Text: ",", Start: 5, End: 6},
				{Text: "world", Start: 7, End: 12},
				{Text: "!", Start: 12, End: 13},
			},
		},
		{
			name:  "contraction",
			input: "i'm",
			want: []PreToken{
				{Text: "i", Start: 0, End: 1},
				{Text: "'", Start: 1, End: 2},
				{Text: "m", Start: 2, End: 3},
			},
		},
		{
			name:  "punctuation run",
			input: "!!??",
			want: []PreToken{
				{Text: "!", Start: 0, End: 1},
				{Text: "!", Start: 1, End: 2},
				{Text: "?", Start: 2, End: 3},
				{Text: "?", Start: 3, End: 4},
			},
		},
		{
			name:  "multiple spaces",
			input: "a   b",
			want: []PreToken{
				{Text: "a", Start: 0, End: 1},
				{Text: "b", Start: 4, End: 5},
			},
		},
		{
			name:  "ascii symbol blocks split too",
			input: "a+b",
			want: []PreToken{
				{Text: "a", Start: 0, End: 1},
				{Text: "+", Start: 1, End: 2},
				{Text: "b", Start: 2, End: 3},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.PreTokenize(tt.input))
		})
	}
}

func TestPreTokenize_EmptyInput(t *testing.T) {
	p := defaultPre()
	assert.Empty(t, p.PreTokenize(""))
	assert.Empty(t, p.PreTokenize("   "))
	assert.Empty(t, p.PreTokenize("\t\n"))
}

func TestPreTokenize_OffsetsIntoNormalizedText(t *testing.T) {
	p := defaultPre()

	// The ligature expands during normalization, so offsets are relative to
	// the normalized text, not the raw input.
	normalized := p.Normalize("ﬁre truck")
	assert.Equal(t, "fire truck", string(normalized))

	spans := p.Split(normalized)
	assert.Equal(t, []PreToken{
		{Text: "fire", Start: 0, End: 4},
		{Text: "truck", Start: 5, End: 10},
	}, spans)
}

func TestIsPunctuation(t *testing.T) {
	for _, r := range ".,!?;:$+^`|~[]{}" {
		assert.True(t, isPunctuation(r), "%q", r)
	}
	for _, r := range "abc123 中" {
		assert.False(t, isPunctuation(r), "%q", r)
	}
}
