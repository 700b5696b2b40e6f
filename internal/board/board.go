// internal/board/board.go
//
// Conversions between external board encodings and spellcast.Grid.
//
// Encodings:
//   - Query string (web form): "<i>" holds the letter of cell i = row*5+col;
//     "<i>DL", "<i>TL", "<i>DW" mark that cell's modifier when truthy.
//   - Literal (CLI, history keys): five rows of five tiles separated by "/",
//     spaces or newlines. A tile is a letter optionally followed by
//     "2" (double letter), "3" (triple letter) or "*" (double word),
//     e.g. "r2rrpg/nsoak/isuea/eroee/dwan*n".
//
// Validation happens here, before the solver sees a board; the solver
// itself assumes every letter is a–z.

package board

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/robalobadob/spellcast/internal/spellcast"
)

var (
	// ErrInvalidLetter reports a cell whose letter is missing or not a–z.
	ErrInvalidLetter = errors.New("invalid letter")
	// ErrModifierConflict reports a cell marked with more than one modifier.
	ErrModifierConflict = errors.New("more than one modifier on a tile")
	// ErrShape reports a literal that is not 5 rows of 5 tiles.
	ErrShape = errors.New("board must be 5 rows of 5 tiles")
)

// CellError ties a validation error to a cell index.
type CellError struct {
	Cell int
	Err  error
}

func (e *CellError) Error() string { return fmt.Sprintf("cell %d: %v", e.Cell, e.Err) }
func (e *CellError) Unwrap() error { return e.Err }

var modifierKeys = []struct {
	suffix string
	mod    spellcast.Modifier
}{
	{"DL", spellcast.DoubleLetter},
	{"TL", spellcast.TripleLetter},
	{"DW", spellcast.DoubleWord},
}

// FromQuery decodes a board from form values.
func FromQuery(v url.Values) (spellcast.Grid, error) {
	var g spellcast.Grid
	for i := 0; i < spellcast.Cells; i++ {
		key := strconv.Itoa(i)
		raw := strings.ToLower(strings.TrimSpace(v.Get(key)))
		if len(raw) != 1 || !isLetter(raw[0]) {
			return g, &CellError{Cell: i, Err: ErrInvalidLetter}
		}

		mod := spellcast.None
		for _, mk := range modifierKeys {
			if !truthy(v.Get(key + mk.suffix)) {
				continue
			}
			if mod != spellcast.None {
				return g, &CellError{Cell: i, Err: ErrModifierConflict}
			}
			mod = mk.mod
		}

		p := spellcast.PositionOf(i)
		g[p.Y][p.X] = spellcast.Tile{Letter: raw[0], Modifier: mod}
	}
	return g, nil
}

// ToQuery encodes g as form values understood by FromQuery.
func ToQuery(g *spellcast.Grid) url.Values {
	v := url.Values{}
	for i := 0; i < spellcast.Cells; i++ {
		t := g.At(spellcast.PositionOf(i))
		key := strconv.Itoa(i)
		v.Set(key, string(t.Letter))
		if t.Modifier != spellcast.None {
			v.Set(key+t.Modifier.String(), "on")
		}
	}
	return v
}

// Parse decodes a board literal.
func Parse(literal string) (spellcast.Grid, error) {
	var g spellcast.Grid
	rows := strings.FieldsFunc(literal, func(r rune) bool {
		return r == '/' || r == ' ' || r == '\n' || r == '\r' || r == '\t' || r == ','
	})
	if len(rows) != spellcast.Height {
		return g, fmt.Errorf("%w: got %d rows", ErrShape, len(rows))
	}
	for y, row := range rows {
		x := 0
		for i := 0; i < len(row); i++ {
			c := row[i]
			if c >= 'A' && c <= 'Z' {
				c += 'a' - 'A'
			}
			if !isLetter(c) {
				return g, &CellError{Cell: y*spellcast.Width + x, Err: ErrInvalidLetter}
			}
			if x >= spellcast.Width {
				return g, fmt.Errorf("%w: row %d is too long", ErrShape, y+1)
			}
			t := spellcast.Tile{Letter: c}
			if i+1 < len(row) {
				switch row[i+1] {
				case '2':
					t.Modifier = spellcast.DoubleLetter
					i++
				case '3':
					t.Modifier = spellcast.TripleLetter
					i++
				case '*':
					t.Modifier = spellcast.DoubleWord
					i++
				}
			}
			g[y][x] = t
			x++
		}
		if x != spellcast.Width {
			return g, fmt.Errorf("%w: row %d has %d tiles", ErrShape, y+1, x)
		}
	}
	return g, nil
}

// Format encodes g as a literal understood by Parse.
func Format(g *spellcast.Grid) string {
	var b strings.Builder
	for y := 0; y < spellcast.Height; y++ {
		if y > 0 {
			b.WriteByte('/')
		}
		for x := 0; x < spellcast.Width; x++ {
			t := g[y][x]
			b.WriteByte(t.Letter)
			switch t.Modifier {
			case spellcast.DoubleLetter:
				b.WriteByte('2')
			case spellcast.TripleLetter:
				b.WriteByte('3')
			case spellcast.DoubleWord:
				b.WriteByte('*')
			}
		}
	}
	return b.String()
}

// Validate checks that every tile holds a letter a–z.
func Validate(g *spellcast.Grid) error {
	for i := 0; i < spellcast.Cells; i++ {
		if !isLetter(g.At(spellcast.PositionOf(i)).Letter) {
			return &CellError{Cell: i, Err: ErrInvalidLetter}
		}
	}
	return nil
}

func isLetter(c byte) bool { return c >= 'a' && c <= 'z' }

// truthy accepts the values browsers and humans send for a checked box.
func truthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "1", "true", "yes", "y":
		return true
	}
	return false
}
