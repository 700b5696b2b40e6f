// internal/httpserver/routes_solve.go
//
// GET /solve: decode a board from the query, rank its words, answer with
// JSON or msgpack.
//
// Query:
//   - board=<literal>            board.Parse syntax, or
//   - 0..24 + <i>DL|<i>TL|<i>DW  one field per cell (the HTML form)
//   - swaps, top                 clamped to the solver limits
//   - dedupe=1                   collapse equal (display, score) words
//
// Solves are looked up in the history store first, keyed by the dictionary
// fingerprint as well as the request; fresh solves are recorded.
// The search itself cannot be interrupted, so it runs in its own goroutine
// and the handler gives up with 503 when the search deadline passes. At most
// solver.max_concurrent searches run at once; an abandoned search keeps its
// slot until it finishes.

package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/spellcast/internal/board"
	"github.com/robalobadob/spellcast/internal/history"
	"github.com/robalobadob/spellcast/internal/spellcast"
)

var errSearchTimeout = errors.New("search_timeout")

// solveReq is a decoded /solve query.
type solveReq struct {
	Grid   spellcast.Grid
	Swaps  int
	Top    int
	Dedupe bool
}

// solveRes is the /solve payload.
type solveRes struct {
	Board     string         `json:"board"`
	Swaps     int            `json:"swaps"`
	Top       int            `json:"top"`
	ElapsedMs int64          `json:"elapsedMs"`
	Cached    bool           `json:"cached"`
	Words     []history.Word `json:"words"`
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseSolve(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	e, cached, err := s.solve(r.Context(), req.Grid, req.Swaps, req.Top)
	if err != nil {
		writeSolveError(w, err)
		return
	}
	writeResult(w, r, http.StatusOK, newSolveRes(e, cached, req.Dedupe))
}

func writeSolveError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errSearchTimeout):
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	case errors.Is(err, board.ErrInvalidLetter):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	log.Error().Err(err).Msg("solve")
	writeError(w, http.StatusInternalServerError, "solve_failed")
}

func newSolveRes(e *history.Entry, cached, dedupe bool) solveRes {
	ws := e.Words
	if dedupe {
		ws = dedupeWords(ws)
	}
	return solveRes{
		Board:     e.Board,
		Swaps:     e.Swaps,
		Top:       e.Top,
		ElapsedMs: e.ElapsedMs,
		Cached:    cached,
		Words:     ws,
	}
}

// parseSolve decodes the board and limits from q.
func (s *Server) parseSolve(q url.Values) (solveReq, error) {
	var req solveReq
	var err error
	if lit := q.Get("board"); lit != "" {
		req.Grid, err = board.Parse(lit)
	} else {
		req.Grid, err = board.FromQuery(q)
	}
	if err != nil {
		return req, err
	}

	lim := s.cfg.Solver
	if req.Swaps, err = intParam(q, "swaps", lim.DefaultSwaps); err != nil {
		return req, err
	}
	if req.Top, err = intParam(q, "top", lim.DefaultTop); err != nil {
		return req, err
	}
	req.Swaps = lim.ClampSwaps(req.Swaps)
	req.Top = lim.ClampTop(req.Top)
	req.Dedupe = flagParam(q.Get("dedupe"))
	return req, nil
}

// solve answers from history when possible, otherwise searches and records.
func (s *Server) solve(ctx context.Context, g spellcast.Grid, swaps, top int) (*history.Entry, bool, error) {
	if err := board.Validate(&g); err != nil {
		return nil, false, err
	}
	key := board.Format(&g)
	dict := s.dict.Fingerprint()
	if e, err := s.history.Find(ctx, dict, key, swaps, top); err == nil {
		return e, true, nil
	} else if !errors.Is(err, history.ErrNotFound) {
		log.Warn().Err(err).Str("board", key).Msg("history lookup")
	}

	if d := s.cfg.Solver.SearchTimeout.Duration; d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}
	if ctx.Err() != nil {
		return nil, false, errSearchTimeout
	}
	if s.sem != nil {
		select {
		case s.sem <- struct{}{}:
		case <-ctx.Done():
			log.Warn().Str("board", key).Msg("no free search slot")
			return nil, false, errSearchTimeout
		}
	}

	start := time.Now()
	done := make(chan []spellcast.Result, 1)
	go func() {
		res := s.solver.Search(&g, swaps, top)
		if s.sem != nil {
			<-s.sem
		}
		done <- res
	}()

	var results []spellcast.Result
	select {
	case <-ctx.Done():
		log.Warn().Str("board", key).Int("swaps", swaps).Int("top", top).Msg("search abandoned")
		return nil, false, errSearchTimeout
	case results = <-done:
	}

	e := &history.Entry{
		Dict:      dict,
		Board:     key,
		Swaps:     swaps,
		Top:       top,
		Words:     toWords(results, &g),
		ElapsedMs: time.Since(start).Milliseconds(),
	}
	// Record with a fresh context: the request may finish before the write.
	if err := s.history.Record(context.WithoutCancel(ctx), e); err != nil {
		log.Warn().Err(err).Str("board", key).Msg("record solve")
	}
	return e, false, nil
}

// toWords converts ranked results into their stored form.
func toWords(results []spellcast.Result, g *spellcast.Grid) []history.Word {
	out := make([]history.Word, len(results))
	for i, res := range results {
		cells := make([]history.Cell, len(res.Path))
		for j, st := range res.Path {
			cells[j] = history.Cell{X: st.Pos.X, Y: st.Pos.Y}
			if st.Swapped() {
				cells[j].Override = string(st.Override)
			}
		}
		out[i] = history.Word{
			Word:    res.Word(g),
			Display: spellcast.PathString(res.Path, g),
			Score:   res.Score,
			Swaps:   res.Path.Swaps(),
			Path:    cells,
		}
	}
	return out
}

// dedupeWords keeps the first word per (display, score), like spellcast.Dedupe.
func dedupeWords(ws []history.Word) []history.Word {
	type key struct {
		display string
		score   int
	}
	seen := make(map[key]struct{}, len(ws))
	out := make([]history.Word, 0, len(ws))
	for _, w := range ws {
		k := key{w.Display, w.Score}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, w)
	}
	return out
}

func intParam(q url.Values, name string, def int) (int, error) {
	v := strings.TrimSpace(q.Get(name))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", name, v)
	}
	return n, nil
}

func flagParam(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}
