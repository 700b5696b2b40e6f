// internal/spellcast/score.go
//
// Path scoring.
//
// Algorithm:
//   1. For each step take the played letter (override, else natural letter)
//      and look up its base value.
//   2. Apply the tile's modifier: DL doubles and TL triples that step; DW
//      doubles the whole word (several DW tiles still only double once).
//   3. Multiply the sum by the word multiplier, then add LongWordBonus for
//      paths of LongWordLength steps or more.
//
// The modifier belongs to the position, so a wildcard played on a DL tile is
// still doubled.

package spellcast

// LongWordLength is the path length from which LongWordBonus applies.
const (
	LongWordLength = 6
	LongWordBonus  = 10
)

// letterValues holds the base points for a–z.
var letterValues = [26]int{
	1, // a
	4, // b
	5, // c
	3, // d
	1, // e
	5, // f
	3, // g
	4, // h
	1, // i
	7, // j
	6, // k
	3, // l
	4, // m
	2, // n
	1, // o
	4, // p
	8, // q
	2, // r
	2, // s
	2, // t
	4, // u
	5, // v
	5, // w
	7, // x
	4, // y
	8, // z
}

// LetterValue returns the base points of c, or 0 outside a–z.
func LetterValue(c byte) int {
	if c < 'a' || c > 'z' {
		return 0
	}
	return letterValues[c-'a']
}

// Score computes the points for path on grid. It never fails; letters
// outside a–z count as zero.
func Score(path Path, grid *Grid) int {
	total, multiplier := 0, 1
	for _, s := range path {
		tile := grid.At(s.Pos)
		c := tile.Letter
		if s.Swapped() {
			c = s.Override
		}
		v := LetterValue(c)
		switch tile.Modifier {
		case DoubleLetter:
			v *= 2
		case TripleLetter:
			v *= 3
		case DoubleWord:
			multiplier = 2
		}
		total += v
	}
	total *= multiplier
	if len(path) >= LongWordLength {
		total += LongWordBonus
	}
	return total
}
