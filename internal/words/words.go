// internal/words/words.go
//
// Dictionary loading for the solver.
//
// Responsibilities:
//   - Read a newline-delimited word list and filter it down to entries the
//     trie can hold (lowercase a–z only).
//   - Build the solver trie (internal/trie) and a patricia prefix index used
//     by the dictionary browser endpoint.
//   - Answer membership and prefix-completion queries.
//
// Input rules:
//   • Lines are trimmed and lowercased; blank lines and "#" comments are skipped.
//   • Any entry with a character outside a–z is rejected and counted, never
//     inserted (the trie addresses children by letter offset).
//   • Duplicates are harmless.

package words

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/robalobadob/spellcast/internal/trie"
)

// Dictionary is an immutable word list in two shapes: the array trie the
// solver walks and a patricia index for prefix browsing.
type Dictionary struct {
	root        *trie.Node
	index       *patricia.Trie
	words       int
	rejected    int
	fingerprint string
}

// Stats summarises a loaded dictionary.
type Stats struct {
	Words    int `json:"words"`
	Rejected int `json:"rejected"`
}

// Load reads a word list from r.
func Load(r io.Reader) (*Dictionary, error) {
	d := empty()
	var accepted []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		w := strings.TrimSpace(strings.ToLower(sc.Text()))
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		if !isAlpha(w) {
			d.rejected++
			continue
		}
		if err := d.root.Insert(w); err != nil {
			d.rejected++
			continue
		}
		if d.index.Insert(patricia.Prefix(w), len(w)) {
			d.words++
			accepted = append(accepted, w)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("words: read: %w", err)
	}
	d.fingerprint = fingerprint(accepted)
	return d, nil
}

// fingerprint hashes the sorted word set, so the same words in any order or
// with duplicates give the same value.
func fingerprint(ws []string) string {
	sort.Strings(ws)
	h := sha256.New()
	for _, w := range ws {
		h.Write([]byte(w))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil)[:16])
}

// LoadFile loads a word list from path.
func LoadFile(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("words: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// FromWords builds a dictionary from an in-memory list (tests, fixtures).
func FromWords(list ...string) *Dictionary {
	d, _ := Load(strings.NewReader(strings.Join(list, "\n")))
	return d
}

func empty() *Dictionary {
	return &Dictionary{root: trie.New(), index: patricia.NewTrie(), fingerprint: fingerprint(nil)}
}

// Root returns the solver trie. Callers must not modify it.
func (d *Dictionary) Root() *trie.Node { return d.root }

// Contains reports whether w is a dictionary word.
func (d *Dictionary) Contains(w string) bool {
	return d.index.Match(patricia.Prefix(strings.ToLower(w)))
}

// Complete returns up to limit dictionary words starting with prefix, in
// alphabetical order. A limit <= 0 returns nothing.
func (d *Dictionary) Complete(prefix string, limit int) []string {
	if limit <= 0 {
		return []string{}
	}
	prefix = strings.ToLower(prefix)

	var out []string
	visit := func(p patricia.Prefix, _ patricia.Item) error {
		out = append(out, string(p))
		return nil
	}
	var err error
	if prefix == "" {
		err = d.index.Visit(visit)
	} else {
		err = d.index.VisitSubtree(patricia.Prefix(prefix), visit)
	}
	if err != nil {
		return []string{}
	}

	sort.Strings(out)
	if len(out) > limit {
		out = out[:limit]
	}
	if out == nil {
		out = []string{}
	}
	return out
}

// Fingerprint identifies the word set. Two dictionaries with the same words
// share a fingerprint regardless of source order or duplicates.
func (d *Dictionary) Fingerprint() string { return d.fingerprint }

// Stats returns word and rejection counts.
func (d *Dictionary) Stats() Stats {
	return Stats{Words: d.words, Rejected: d.rejected}
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
