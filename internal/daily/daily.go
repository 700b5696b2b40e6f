// internal/daily/daily.go
//
// Deterministic "board of the day".
//
// The board for a date is derived from HMAC-SHA256(salt, YYYY-MM-DD): the
// digest seeds a PCG generator that draws letters from a weighted bag and
// places one letter modifier and one double-word tile. Every server sharing
// the same salt serves the same board on the same UTC day.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"math/rand/v2"
	"time"

	"github.com/robalobadob/spellcast/internal/spellcast"
)

// bag holds the letter distribution boards are drawn from.
const bag = "eeeeeeeeeeeeaaaaaaaaaiiiiiiiiioooooooonnnnnnrrrrrrttttttllllssssuuuuddddgggbbccmmppffhhvvwwyykjxqz"

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// seed returns HMAC(salt, date key) split into two PCG seed words.
func seed(date time.Time, salt string) (uint64, uint64) {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	return binary.BigEndian.Uint64(sum[:8]), binary.BigEndian.Uint64(sum[8:16])
}

// Board returns the board for date's UTC day.
func Board(date time.Time, salt string) spellcast.Grid {
	rng := rand.New(rand.NewPCG(seed(date, salt)))

	var g spellcast.Grid
	for y := 0; y < spellcast.Height; y++ {
		for x := 0; x < spellcast.Width; x++ {
			g[y][x].Letter = bag[rng.IntN(len(bag))]
		}
	}

	letterCell := rng.IntN(spellcast.Cells)
	wordCell := rng.IntN(spellcast.Cells - 1)
	if wordCell >= letterCell {
		wordCell++
	}

	p := spellcast.PositionOf(letterCell)
	g[p.Y][p.X].Modifier = spellcast.DoubleLetter
	if rng.IntN(2) == 1 {
		g[p.Y][p.X].Modifier = spellcast.TripleLetter
	}
	p = spellcast.PositionOf(wordCell)
	g[p.Y][p.X].Modifier = spellcast.DoubleWord
	return g
}
