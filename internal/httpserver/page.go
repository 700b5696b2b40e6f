// internal/httpserver/page.go
//
// GET /: a plain HTML form for entering a board, plus the ranked words when
// the query carries one.

package httpserver

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/spellcast/internal/spellcast"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTmpl = template.Must(template.New("index.html").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).ParseFS(templateFS, "templates/index.html"))

type cellView struct {
	Index      int
	Letter     string
	DL, TL, DW bool
}

type pageData struct {
	Cells    [spellcast.Cells]cellView
	Swaps    int
	Top      int
	MaxSwaps int
	MaxTop   int
	Dedupe   bool
	Error    string
	Result   *solveRes
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lim := s.cfg.Solver
	data := pageData{Swaps: lim.DefaultSwaps, Top: lim.DefaultTop, MaxSwaps: lim.MaxSwaps, MaxTop: lim.MaxTop}
	for i := range data.Cells {
		data.Cells[i].Index = i
	}

	status := http.StatusOK
	if q.Has("0") || q.Has("board") {
		req, err := s.parseSolve(q)
		switch {
		case err != nil:
			status, data.Error = http.StatusBadRequest, err.Error()
			echoCells(&data, q)
		default:
			fillCells(&data, req.Grid)
			data.Swaps, data.Top, data.Dedupe = req.Swaps, req.Top, req.Dedupe
			e, cached, err := s.solve(r.Context(), req.Grid, req.Swaps, req.Top)
			if err != nil {
				status, data.Error = http.StatusServiceUnavailable, "the search took too long; try fewer swaps"
				if !errors.Is(err, errSearchTimeout) {
					status, data.Error = http.StatusInternalServerError, "solve failed"
					log.Error().Err(err).Msg("solve")
				}
				break
			}
			res := newSolveRes(e, cached, req.Dedupe)
			data.Result = &res
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := indexTmpl.Execute(w, data); err != nil {
		log.Warn().Err(err).Msg("render index")
	}
}

// fillCells copies g into the form.
func fillCells(d *pageData, g spellcast.Grid) {
	for i := range d.Cells {
		t := g.At(spellcast.PositionOf(i))
		c := &d.Cells[i]
		if t.Letter != 0 {
			c.Letter = string(t.Letter)
		}
		c.DL = t.Modifier == spellcast.DoubleLetter
		c.TL = t.Modifier == spellcast.TripleLetter
		c.DW = t.Modifier == spellcast.DoubleWord
	}
}

// echoCells re-displays raw input after a decode error.
func echoCells(d *pageData, q url.Values) {
	for i := range d.Cells {
		c := &d.Cells[i]
		k := strconv.Itoa(i)
		c.Letter = q.Get(k)
		c.DL = flagParam(q.Get(k + "DL"))
		c.TL = flagParam(q.Get(k + "TL"))
		c.DW = flagParam(q.Get(k + "DW"))
	}
}
