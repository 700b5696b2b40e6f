// internal/spellcast/search.go
//
// Backtracking word search over the board and the dictionary trie at once.
//
// State at each call is (trie node, path so far, swaps left):
//   - If the node completes a word, the path is scored and offered to the
//     top-K collector (skipped outright when it cannot beat the worst kept
//     result).
//   - If the node is a leaf, nothing longer can be a word: stop.
//   - Otherwise try every unused neighbour of the last step (every cell for
//     the first step): once with the tile's own letter, and, while swaps
//     remain, once per other letter the trie can continue with.
//
// One path buffer is shared by the whole recursion (push, recurse, pop);
// results clone it. Recursion depth is bounded by the number of cells.

package spellcast

import (
	"slices"

	"github.com/robalobadob/spellcast/internal/top"
	"github.com/robalobadob/spellcast/internal/trie"
	"github.com/robalobadob/spellcast/internal/words"
)

// offsets lists the 8 neighbour directions.
var offsets = [8]Position{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Solver searches boards against one dictionary. It holds no per-search
// state and is safe for concurrent use.
type Solver struct {
	root *trie.Node
}

// NewSolver returns a solver over the dictionary rooted at root.
func NewSolver(root *trie.Node) *Solver {
	if root == nil {
		root = trie.New()
	}
	return &Solver{root: root}
}

// Search returns the topK best words on grid using at most swaps wildcard
// letters per word, against the process-wide dictionary.
func Search(grid *Grid, swaps, topK int) []Result {
	return NewSolver(words.Default().Root()).Search(grid, swaps, topK)
}

// Search returns up to topK results, best first. Every grid letter must be
// a–z; callers validate the board beforehand.
func (s *Solver) Search(grid *Grid, swaps, topK int) []Result {
	if swaps < 0 {
		swaps = 0
	}
	st := &search{
		grid:  grid,
		found: top.New[Result](topK),
		path:  make(Path, 0, Cells),
	}
	if st.found.Cap() > 0 {
		st.walk(s.root, swaps)
	}
	out := st.found.Values()
	if out == nil {
		out = []Result{}
	}
	return out
}

// search is the mutable state of one Search call.
type search struct {
	grid  *Grid
	found *top.Top[Result]
	path  Path
	used  [Cells]bool
}

func byScore(r Result) int { return -r.Score }

func (st *search) walk(node *trie.Node, swaps int) {
	if node.IsComplete() && len(st.path) > 0 {
		st.record()
	}
	if node.IsLeaf() {
		return
	}

	var buf [Cells]Position
	var edges [trie.AlphabetSize]trie.Edge
	for _, pos := range st.next(buf[:0]) {
		natural := st.grid.At(pos).Letter

		if child := node.Child(natural); child != nil {
			st.push(Step{Pos: pos})
			st.walk(child, swaps)
			st.pop()
		}

		if swaps == 0 {
			continue
		}
		for _, e := range node.AppendChildren(edges[:0]) {
			if e.Letter == natural {
				continue
			}
			st.push(Step{Pos: pos, Override: e.Letter})
			st.walk(e.Node, swaps-1)
			st.pop()
		}
	}
}

// record scores the current path and keeps it if it can make the top K.
func (st *search) record() {
	score := Score(st.path, st.grid)
	if worst, ok := st.found.Worst(); ok && score <= worst.Score {
		return
	}
	top.InsertByKey(st.found, Result{Path: slices.Clone(st.path), Score: score}, byScore)
}

// next appends the positions the path may continue to.
func (st *search) next(out []Position) []Position {
	if len(st.path) == 0 {
		for i := 0; i < Cells; i++ {
			out = append(out, PositionOf(i))
		}
		return out
	}
	last := st.path[len(st.path)-1].Pos
	for _, d := range offsets {
		p := Position{X: last.X + d.X, Y: last.Y + d.Y}
		if p.InBounds() && !st.used[p.Index()] {
			out = append(out, p)
		}
	}
	return out
}

func (st *search) push(s Step) {
	st.path = append(st.path, s)
	st.used[s.Pos.Index()] = true
}

func (st *search) pop() {
	s := st.path[len(st.path)-1]
	st.used[s.Pos.Index()] = false
	st.path = st.path[:len(st.path)-1]
}
