// internal/httpserver/routes_daily.go
//
// GET /daily: today's deterministic board and its solution.
//
// The board is derived from the UTC date and the configured salt, so every
// instance sharing the salt serves the same board. The solution for the
// current date is cached in memory; it is also recorded in history like any
// other solve.

package httpserver

import (
	"net/http"
	"sync"
	"time"

	"github.com/robalobadob/spellcast/internal/daily"
	"github.com/robalobadob/spellcast/internal/history"
	"github.com/robalobadob/spellcast/internal/spellcast"
)

// dailyCache holds the solution for a single date.
type dailyCache struct {
	mu    sync.Mutex // guards date and entry
	date  string
	entry *history.Entry
}

func (c *dailyCache) get(date string) *history.Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.date != date {
		return nil
	}
	return c.entry
}

func (c *dailyCache) put(date string, e *history.Entry) {
	c.mu.Lock()
	c.date, c.entry = date, e
	c.mu.Unlock()
}

// dailyRes is the /daily payload.
type dailyRes struct {
	Date  string        `json:"date"`
	Board string        `json:"board"`
	Grid  [][]dailyTile `json:"grid"`
	Solve solveRes      `json:"solve"`
}

type dailyTile struct {
	Letter   string `json:"letter"`
	Modifier string `json:"modifier,omitempty"`
}

func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	date := daily.DateKey(now)
	g := daily.Board(now, s.cfg.Daily.Salt)
	lim := s.cfg.Solver

	e, cached := s.daily.get(date), true
	if e == nil {
		var err error
		e, cached, err = s.solve(r.Context(), g, lim.DefaultSwaps, lim.DefaultTop)
		if err != nil {
			writeSolveError(w, err)
			return
		}
		s.daily.put(date, e)
	}

	writeResult(w, r, http.StatusOK, dailyRes{
		Date:  date,
		Board: e.Board,
		Grid:  gridTiles(&g),
		Solve: newSolveRes(e, cached, flagParam(r.URL.Query().Get("dedupe"))),
	})
}

// gridTiles renders g row by row for JSON clients that do not parse
// board literals.
func gridTiles(g *spellcast.Grid) [][]dailyTile {
	rows := make([][]dailyTile, spellcast.Height)
	for y := range rows {
		rows[y] = make([]dailyTile, spellcast.Width)
		for x := range rows[y] {
			t := g[y][x]
			rows[y][x] = dailyTile{Letter: string(t.Letter), Modifier: t.Modifier.String()}
		}
	}
	return rows
}
