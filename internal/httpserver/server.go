// internal/httpserver/server.go
//
// HTTP server wiring for the spellcast solver.
// Responsibilities:
//   - Router + middleware (request IDs, real IP, panic recovery, timeouts,
//     request logging, CORS).
//   - Public endpoints: "/" (HTML form), "/health".
//   - Solver endpoints: GET /solve, GET /daily (routes_solve.go, routes_daily.go).
//   - Dictionary and history browsing (routes_dictionary.go).
//
// Notes:
//   - API responses are JSON unless the client sends Accept: application/msgpack.
//   - Errors are small JSON bodies: {"error":"..."}.

package httpserver

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/robalobadob/spellcast/internal/config"
	"github.com/robalobadob/spellcast/internal/history"
	"github.com/robalobadob/spellcast/internal/spellcast"
	"github.com/robalobadob/spellcast/internal/words"
)

const msgpackType = "application/msgpack"

// Server bundles the router, dictionary, solver and history store.
type Server struct {
	r       *chi.Mux
	cfg     *config.Config
	dict    *words.Dictionary
	solver  *spellcast.Solver
	history history.Store
	daily   *dailyCache
	sem     chan struct{} // search slots; nil when unlimited
}

// New constructs a Server, installs middleware, and registers routes.
// A nil store is replaced by an in-memory one.
func New(cfg *config.Config, dict *words.Dictionary, hs history.Store) *Server {
	if hs == nil {
		hs = history.NewMemoryStore(cfg.History.MemoryLimit)
	}
	s := &Server{
		r:       chi.NewRouter(),
		cfg:     cfg,
		dict:    dict,
		solver:  spellcast.NewSolver(dict.Root()),
		history: hs,
		daily:   &dailyCache{},
	}
	if n := cfg.Solver.MaxConcurrent; n > 0 {
		s.sem = make(chan struct{}, n)
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(requestLogger)
	s.r.Use(chimw.Recoverer)
	if d := cfg.Server.RequestTimeout.Duration; d > 0 {
		s.r.Use(chimw.Timeout(d))
	}
	s.r.Use(cors(cfg.Server.CORSOrigin))

	// --- pages ---
	s.r.Get("/", s.handleIndex)
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "words": s.dict.Stats().Words})
	})

	// --- api ---
	s.r.Get("/solve", s.handleSolve)
	s.r.Get("/daily", s.handleDaily)
	s.mountDictionary(s.r)
	s.r.Get("/history", s.handleHistory)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// requestLogger writes one zerolog line per request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Info().
			Str("reqId", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("took", time.Since(start)).
			Msg("request")
	})
}

// cors allows a single configured origin. An empty origin disables CORS.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if origin == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ------------------------------ responses ----------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode json response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeResult encodes v as msgpack when the client asks for it, JSON
// otherwise. msgpack field names follow the json tags.
func writeResult(w http.ResponseWriter, r *http.Request, status int, v any) {
	if !strings.Contains(r.Header.Get("Accept"), msgpackType) {
		writeJSON(w, status, v)
		return
	}
	w.Header().Set("Content-Type", msgpackType)
	w.WriteHeader(status)
	enc := msgpack.NewEncoder(w)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode msgpack response")
	}
}
