// cmd/solve/render.go
//
// Terminal rendering for the solve command.
// Responsibilities:
//   - Draw the 5x5 board with lipgloss tiles, colouring DL/TL/DW cells.
//   - Print ranked words with their score and the swaps they use.
//
// Notes:
//   - Colours are adaptive so the output reads on light and dark terminals.

package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/robalobadob/spellcast/internal/spellcast"
)

var (
	tileStyle = lipgloss.NewStyle().
			Width(4).
			Align(lipgloss.Center).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.AdaptiveColor{Light: "#9893a5", Dark: "#6e6a86"})

	modifierColors = map[spellcast.Modifier]lipgloss.AdaptiveColor{
		spellcast.DoubleLetter: {Light: "#286983", Dark: "#9ccfd8"},
		spellcast.TripleLetter: {Light: "#907aa9", Dark: "#c4a7e7"},
		spellcast.DoubleWord:   {Light: "#d7827e", Dark: "#ebbcba"},
	}

	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	wordStyle   = lipgloss.NewStyle().Bold(true).Width(14)
	scoreStyle  = lipgloss.NewStyle().Width(6).Align(lipgloss.Right)
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

// renderBoard draws g as a 5×5 block of tiles. Modified tiles show their
// modifier under the letter.
func renderBoard(g *spellcast.Grid) string {
	rows := make([]string, spellcast.Height)
	for y := 0; y < spellcast.Height; y++ {
		tiles := make([]string, spellcast.Width)
		for x := 0; x < spellcast.Width; x++ {
			t := g[y][x]
			st := tileStyle
			label := strings.ToUpper(string(t.Letter))
			if c, ok := modifierColors[t.Modifier]; ok {
				st = st.BorderForeground(c).Foreground(c)
				label += "\n" + t.Modifier.String()
			} else {
				label += "\n "
			}
			tiles[x] = st.Render(label)
		}
		rows[y] = lipgloss.JoinHorizontal(lipgloss.Top, tiles...)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderResults lists results best first with their swaps spelled out.
func renderResults(results []spellcast.Result, g *spellcast.Grid) string {
	if len(results) == 0 {
		return dimStyle.Render("no words found")
	}
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-4s%-14s%6s  %s", "#", "word", "score", "swaps")))
	for i, r := range results {
		b.WriteByte('\n')
		b.WriteString(fmt.Sprintf("%-4d", i+1))
		b.WriteString(wordStyle.Render(spellcast.PathString(r.Path, g)))
		b.WriteString(scoreStyle.Render(fmt.Sprint(r.Score)))
		b.WriteString("  ")
		b.WriteString(dimStyle.Render(describeSwaps(r.Path, g)))
	}
	return b.String()
}

// describeSwaps lists wildcard steps as "(x,y) e→o".
func describeSwaps(p spellcast.Path, g *spellcast.Grid) string {
	var parts []string
	for _, s := range p {
		if !s.Swapped() {
			continue
		}
		parts = append(parts, fmt.Sprintf("(%d,%d) %c→%c", s.Pos.X, s.Pos.Y, g.At(s.Pos).Letter, s.Override))
	}
	return strings.Join(parts, ", ")
}
