// internal/spellcast/display.go
//
// Presentation helpers. None of these score or search.

package spellcast

import "strings"

// PathString renders path for display: natural letters in lower case,
// wildcard letters in upper case (e.g. "cOt").
func PathString(path Path, grid *Grid) string {
	var b strings.Builder
	b.Grow(len(path))
	for _, s := range path {
		if s.Swapped() {
			b.WriteByte(s.Override - 'a' + 'A')
			continue
		}
		b.WriteByte(grid.At(s.Pos).Letter)
	}
	return b.String()
}

// Word returns the lower-case word spelled by r.
func (r Result) Word(grid *Grid) string {
	var b strings.Builder
	b.Grow(len(r.Path))
	for _, s := range r.Path {
		if s.Swapped() {
			b.WriteByte(s.Override)
			continue
		}
		b.WriteByte(grid.At(s.Pos).Letter)
	}
	return b.String()
}

// Dedupe drops results that render to the same string with the same score
// as an earlier result, keeping order. Search itself never dedupes: two
// paths with the same letters are different plays on the board.
func Dedupe(results []Result, grid *Grid) []Result {
	type key struct {
		display string
		score   int
	}
	seen := make(map[key]struct{}, len(results))
	out := make([]Result, 0, len(results))
	for _, r := range results {
		k := key{PathString(r.Path, grid), r.Score}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}
	return out
}
