package vocab

import (
	"bufio"
	"io"
	"os"

	"github.com/pkg/errors"
)

// FromReader builds a Vocabulary from a vocab.txt-style stream: one token
// per line, line number (0-indexed) == token id. Blank lines are kept as
// (unmatchable) entries so that ids of subsequent tokens stay aligned with
// the source line numbers.
func FromReader(r io.Reader) (*Vocabulary, error) {
	scanner := bufio.NewScanner(r)
	var tokens []string
	for scanner.Scan() {
		tokens = append(tokens, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "vocab: reading token list")
	}
	return New(tokens)
}

// FromFile builds a Vocabulary from a vocab.txt file.
func FromFile(path string) (*Vocabulary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "vocab: opening %q", path)
	}
	defer f.Close()
	return FromReader(f)
}
