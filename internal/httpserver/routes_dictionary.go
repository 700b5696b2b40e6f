// internal/httpserver/routes_dictionary.go
//
// Read-only browsing endpoints:
//   - GET /dictionary?prefix=&limit=  → prefix completions with base letter values
//   - GET /dictionary/{word}          → membership check
//   - GET /history?limit=             → recent solves, newest first,
//                                       at most history.max_list

package httpserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/spellcast/internal/spellcast"
)

const (
	defaultCompleteLimit = 50
	maxCompleteLimit     = 500
)

// mountDictionary registers the /dictionary routes.
func (s *Server) mountDictionary(r chi.Router) {
	r.Route("/dictionary", func(r chi.Router) {
		r.Get("/", s.handleComplete)
		r.Get("/{word}", s.handleLookup)
	})
}

type dictWord struct {
	Word  string `json:"word"`
	Value int    `json:"value"` // sum of letter values, no modifiers
}

type completeRes struct {
	Prefix string     `json:"prefix"`
	Total  int        `json:"total"` // dictionary size
	Words  []dictWord `json:"words"`
}

func (s *Server) handleComplete(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	prefix := strings.ToLower(strings.TrimSpace(q.Get("prefix")))
	if !lettersOnly(prefix) {
		writeError(w, http.StatusBadRequest, "prefix must contain only letters a-z")
		return
	}
	limit, err := intParam(q, "limit", defaultCompleteLimit)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	limit = min(max(limit, 1), maxCompleteLimit)

	matches := s.dict.Complete(prefix, limit)
	out := make([]dictWord, len(matches))
	for i, m := range matches {
		out[i] = dictWord{Word: m, Value: wordValue(m)}
	}
	writeResult(w, r, http.StatusOK, completeRes{Prefix: prefix, Total: s.dict.Stats().Words, Words: out})
}

type lookupRes struct {
	Word  string `json:"word"`
	Valid bool   `json:"valid"`
	Value int    `json:"value,omitempty"`
}

func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	word := strings.ToLower(chi.URLParam(r, "word"))
	res := lookupRes{Word: word, Valid: lettersOnly(word) && s.dict.Contains(word)}
	if res.Valid {
		res.Value = wordValue(word)
	}
	writeResult(w, r, http.StatusOK, res)
}

// historyItem summarises a stored solve.
type historyItem struct {
	ID        int64     `json:"id"`
	Board     string    `json:"board"`
	Swaps     int       `json:"swaps"`
	Top       int       `json:"top"`
	Count     int       `json:"count"`
	Best      string    `json:"best,omitempty"`
	BestScore int       `json:"bestScore"`
	ElapsedMs int64     `json:"elapsedMs"`
	CreatedAt time.Time `json:"createdAt"`
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r.URL.Query(), "limit", s.cfg.History.ListLimit)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	limit = min(max(limit, 1), max(s.cfg.History.MaxList, 1))

	entries, err := s.history.Recent(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("list history")
		writeError(w, http.StatusInternalServerError, "history_failed")
		return
	}
	out := make([]historyItem, len(entries))
	for i, e := range entries {
		best := e.Best()
		out[i] = historyItem{
			ID:        e.ID,
			Board:     e.Board,
			Swaps:     e.Swaps,
			Top:       e.Top,
			Count:     len(e.Words),
			Best:      best.Display,
			BestScore: best.Score,
			ElapsedMs: e.ElapsedMs,
			CreatedAt: e.CreatedAt,
		}
	}
	writeResult(w, r, http.StatusOK, map[string]any{"solves": out})
}

func wordValue(w string) int {
	n := 0
	for i := 0; i < len(w); i++ {
		n += spellcast.LetterValue(w[i])
	}
	return n
}

func lettersOnly(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}
