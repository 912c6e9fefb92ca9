package vocab

// Match describes a vocabulary entry found by a trie walk.
type Match struct {
	ID    int    // token id of the matched entry
	Text  string // the matched entry, exactly as inserted
	End   int    // rune index one past the last matched rune
}

// Trie is a rune-keyed prefix tree mapping strings to token ids.
// It supports exact lookup, longest-match-from-position and
// all-matches-from-position walks, each in O(matched length).
//
// The walk never backtracks: it stops at the first rune with no outgoing
// edge and reports the last terminal node crossed, so a vocabulary whose
// only longer alternatives lie past a dead end will not be found. This
// mirrors the reference tokenizer and must not be "improved" into a
// globally optimal search.
type Trie struct {
	root *trieNode
	size int
}

type trieNode struct {
	children map[rune]*trieNode

	// terminal payload, valid only when terminal is true
	terminal bool
	token    string
	id       int
}

// NewTrie returns an empty Trie.
func NewTrie() *Trie {
	return &Trie{root: &trieNode{}}
}

// Len returns the number of distinct strings stored.
func (t *Trie) Len() int { return t.size }

// Insert adds text with the given id, creating one node per rune.
// Inserting a string that is already present overwrites its payload
// without changing Len.
func (t *Trie) Insert(text string, id int) {
	node := t.root
	for _, r := range text {
		if node.children == nil {
			node.children = make(map[rune]*trieNode)
		}
		child, ok := node.children[r]
		if !ok {
			child = &trieNode{}
			node.children[r] = child
		}
		node = child
	}
	if !node.terminal {
		t.size++
	}
	node.terminal = true
	node.token = text
	node.id = id
}

// Lookup reports the id stored for exactly text.
func (t *Trie) Lookup(text string) (int, bool) {
	node := t.root
	for _, r := range text {
		child, ok := node.children[r]
		if !ok {
			return 0, false
		}
		node = child
	}
	if !node.terminal {
		return 0, false
	}
	return node.id, true
}

// LongestMatch walks text from start and returns the longest stored entry
// reachable before the first missing edge.
func (t *Trie) LongestMatch(text []rune, start int) (Match, bool) {
	var best Match
	found := false
	node := t.root
	for i := start; i < len(text); i++ {
		child, ok := node.children[text[i]]
		if !ok {
			break
		}
		node = child
		if node.terminal {
			best = Match{ID: node.id, Text: node.token, End: i + 1}
			found = true
		}
	}
	return best, found
}

// AllMatches walks text from start and returns every stored entry crossed
// before the first missing edge, in increasing length order.
func (t *Trie) AllMatches(text []rune, start int) []Match {
	var matches []Match
	node := t.root
	for i := start; i < len(text); i++ {
		child, ok := node.children[text[i]]
		if !ok {
			break
		}
		node = child
		if node.terminal {
			matches = append(matches, Match{ID: node.id, Text: node.token, End: i + 1})
		}
	}
	return matches
}
