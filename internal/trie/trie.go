// internal/trie/trie.go
//
// Prefix tree over the lowercase alphabet, used as the dictionary by the
// solver. The tree is written once while the word list is loaded and is
// read-only afterwards, so a single root can be shared by any number of
// concurrent searches without locking.
//
// Notes:
//   • Children are addressed by letter offset (c - 'a'); a nil slot means no
//     dictionary word extends the current prefix with that letter.
//   • A node is terminal when the prefix reaching it is itself a word.

package trie

import (
	"errors"
	"fmt"
)

// AlphabetSize is the number of child slots per node (a–z).
const AlphabetSize = 26

// ErrInvalidWord is returned by Insert for words containing characters
// outside a–z.
var ErrInvalidWord = errors.New("trie: word must be lowercase a-z")

// Node is a single prefix in the tree. The zero value is an empty root.
type Node struct {
	terminal bool
	children [AlphabetSize]*Node
}

// Edge pairs a child node with the letter that leads to it.
type Edge struct {
	Letter byte
	Node   *Node
}

// New returns an empty root.
func New() *Node { return &Node{} }

// Build constructs a tree from words. Invalid words are skipped; callers that
// need to know about them should use Insert directly.
func Build(words []string) *Node {
	root := New()
	for _, w := range words {
		_ = root.Insert(w)
	}
	return root
}

// Insert adds word to the tree rooted at n. Inserting a word twice has no
// further effect. The tree is left untouched when word is invalid.
func (n *Node) Insert(word string) error {
	if word == "" || !isLower(word) {
		return fmt.Errorf("%w: %q", ErrInvalidWord, word)
	}
	cur := n
	for i := 0; i < len(word); i++ {
		j := word[i] - 'a'
		if cur.children[j] == nil {
			cur.children[j] = &Node{}
		}
		cur = cur.children[j]
	}
	cur.terminal = true
	return nil
}

// IsComplete reports whether the prefix reaching n is a dictionary word.
func (n *Node) IsComplete() bool { return n.terminal }

// IsLeaf reports whether no letter extends this prefix to any word.
func (n *Node) IsLeaf() bool {
	for _, c := range n.children {
		if c != nil {
			return false
		}
	}
	return true
}

// Child returns the subtree for the current prefix extended by c, or nil when
// no word has that prefix or c is outside a–z.
func (n *Node) Child(c byte) *Node {
	if c < 'a' || c > 'z' {
		return nil
	}
	return n.children[c-'a']
}

// AppendChildren appends the extending letters to dst in alphabetical order.
// Passing a stack buffer of AlphabetSize avoids allocating per node.
func (n *Node) AppendChildren(dst []Edge) []Edge {
	for i, c := range n.children {
		if c != nil {
			dst = append(dst, Edge{Letter: byte('a' + i), Node: c})
		}
	}
	return dst
}

// Walk follows prefix from n and returns the node it ends on, or nil.
func (n *Node) Walk(prefix string) *Node {
	cur := n
	for i := 0; i < len(prefix) && cur != nil; i++ {
		cur = cur.Child(prefix[i])
	}
	return cur
}

// Contains reports whether word is in the dictionary.
func (n *Node) Contains(word string) bool {
	end := n.Walk(word)
	return end != nil && end.terminal
}

// isLower reports whether s is all lowercase ASCII letters.
func isLower(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}
