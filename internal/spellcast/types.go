// internal/spellcast/types.go
//
// Core type definitions for the solver.
// Defines:
//   - Grid/Tile/Modifier: the fixed 5x5 board and its static score modifiers.
//   - Position/Step/Path: a word traced through the board, with optional
//     per-step wildcard letters.
//   - Result: a completed path and its score.

package spellcast

// Board dimensions. Boards are always Width x Height.
const (
	Width  = 5
	Height = 5
	Cells  = Width * Height
)

// Modifier is a static score bonus attached to a board position.
// Possible values:
//   - None:         no bonus.
//   - DoubleLetter: the letter played on this tile counts twice.
//   - TripleLetter: the letter played on this tile counts three times.
//   - DoubleWord:   the whole word is doubled.
type Modifier uint8

const (
	None Modifier = iota
	DoubleLetter
	TripleLetter
	DoubleWord
)

// String returns the short board notation ("DL", "TL", "DW") or "".
func (m Modifier) String() string {
	switch m {
	case DoubleLetter:
		return "DL"
	case TripleLetter:
		return "TL"
	case DoubleWord:
		return "DW"
	}
	return ""
}

// Tile is one board cell.
type Tile struct {
	Letter   byte     // Natural letter, a–z.
	Modifier Modifier // At most one modifier per tile.
}

// Grid is the board, indexed grid[y][x]. It is never modified by a search.
type Grid [Height][Width]Tile

// At returns the tile at p.
func (g *Grid) At(p Position) Tile { return g[p.Y][p.X] }

// Position is a board coordinate; X is the column, Y the row.
type Position struct {
	X int
	Y int
}

// PositionOf converts a cell index (row*Width + col) to a Position.
func PositionOf(i int) Position { return Position{X: i % Width, Y: i / Width} }

// Index returns the cell index row*Width + col.
func (p Position) Index() int { return p.Y*Width + p.X }

// InBounds reports whether p lies on the board.
func (p Position) InBounds() bool {
	return p.X >= 0 && p.X < Width && p.Y >= 0 && p.Y < Height
}

// Adjacent reports whether q is one of the 8 neighbours of p.
func (p Position) Adjacent(q Position) bool {
	dx, dy := p.X-q.X, p.Y-q.Y
	return p != q && dx >= -1 && dx <= 1 && dy >= -1 && dy <= 1
}

// Step is one letter of a path. Override is 0 when the tile's natural letter
// is played, otherwise the wildcard letter chosen for it.
type Step struct {
	Pos      Position
	Override byte
}

// Swapped reports whether the step plays a wildcard letter.
func (s Step) Swapped() bool { return s.Override != 0 }

// Path is an ordered, non-repeating sequence of steps.
type Path []Step

// Swaps counts the wildcard steps in p.
func (p Path) Swaps() int {
	n := 0
	for _, s := range p {
		if s.Swapped() {
			n++
		}
	}
	return n
}

// Result is a dictionary word found on the board.
type Result struct {
	Path  Path
	Score int
}
