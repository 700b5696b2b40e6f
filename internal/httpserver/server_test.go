package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/robalobadob/spellcast/internal/board"
	"github.com/robalobadob/spellcast/internal/config"
	"github.com/robalobadob/spellcast/internal/history"
	"github.com/robalobadob/spellcast/internal/spellcast"
	"github.com/robalobadob/spellcast/internal/words"
)

// catBoard has c a / t r in the top-left corner.
const catBoard = "cazzz/trzzz/zzzzz/zzzzz/zzzzz"

func newTestServer(t *testing.T) (*Server, history.Store) {
	t.Helper()
	return newTestServerWith(t, testConfig())
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Daily.Salt = "test"
	return cfg
}

func newTestServerWith(t *testing.T, cfg *config.Config) (*Server, history.Store) {
	t.Helper()
	hs := history.NewMemoryStore(50)
	dict := words.FromWords("cat", "car", "care", "cot", "at", "tar")
	return New(cfg, dict, hs), hs
}

func get(t *testing.T, s *Server, target string, hdr ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(hdr); i += 2 {
		req.Header.Set(hdr[i], hdr[i+1])
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decode[map[string]any](t, rec)
	if body["ok"] != true || body["words"] != float64(6) {
		t.Fatalf("body = %v", body)
	}
}

func TestNotFoundIsJSON(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s, "/nope")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	if body := decode[map[string]string](t, rec); body["error"] != "not_found" || body["path"] != "/nope" {
		t.Fatalf("body = %v", body)
	}
}

func TestSolveJSON(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s, "/solve?swaps=0&top=5&board="+url.QueryEscape(catBoard))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body %s", rec.Code, rec.Body)
	}
	res := decode[solveRes](t, rec)
	if res.Board != catBoard || res.Swaps != 0 || res.Top != 5 || res.Cached {
		t.Fatalf("header fields = %+v", res)
	}
	got := map[string]int{}
	for _, w := range res.Words {
		got[w.Word] = w.Score
	}
	want := map[string]int{"cat": 8, "car": 8, "at": 3, "tar": 5}
	if len(got) != len(want) {
		t.Fatalf("words = %v, want %v", got, want)
	}
	for w, sc := range want {
		if got[w] != sc {
			t.Errorf("%s scored %d, want %d", w, got[w], sc)
		}
	}
	if res.Words[0].Score != 8 || len(res.Words[0].Path) != 3 {
		t.Errorf("best word = %+v", res.Words[0])
	}
}

func TestSolveUsesHistory(t *testing.T) {
	s, hs := newTestServer(t)
	target := "/solve?swaps=0&top=5&board=" + url.QueryEscape(catBoard)
	if res := decode[solveRes](t, get(t, s, target)); res.Cached {
		t.Fatal("first solve should not be cached")
	}
	if res := decode[solveRes](t, get(t, s, target)); !res.Cached {
		t.Fatal("second solve should come from history")
	}
	entries, _ := hs.Recent(context.Background(), 10)
	if len(entries) != 1 {
		t.Fatalf("history has %d entries, want 1", len(entries))
	}
}

func TestSolveWithSwap(t *testing.T) {
	s, _ := newTestServer(t)
	// c a / z t: "cot" needs the a swapped to o.
	lit := "cazzz/ztzzz/zzzzz/zzzzz/zzzzz"
	res := decode[solveRes](t, get(t, s, "/solve?swaps=1&top=50&board="+url.QueryEscape(lit)))
	var found bool
	for _, w := range res.Words {
		if w.Word == "cot" {
			found = true
			if w.Display != "cOt" || w.Swaps != 1 || w.Path[1].Override != "o" {
				t.Errorf("cot = %+v", w)
			}
		}
	}
	if !found {
		t.Fatalf("cot not found in %+v", res.Words)
	}
}

func TestSolveDedupe(t *testing.T) {
	s, _ := newTestServer(t)
	// Two t tiles next to the a give two "at" paths.
	lit := url.QueryEscape("atzzz/tzzzz/zzzzz/zzzzz/zzzzz")
	all := decode[solveRes](t, get(t, s, "/solve?swaps=0&board="+lit))
	deduped := decode[solveRes](t, get(t, s, "/solve?swaps=0&dedupe=1&board="+lit))
	if len(all.Words) != 2 || len(deduped.Words) != 1 {
		t.Fatalf("got %d words, %d after dedupe", len(all.Words), len(deduped.Words))
	}
}

func TestSolveFromForm(t *testing.T) {
	s, _ := newTestServer(t)
	g, err := board.Parse(catBoard)
	if err != nil {
		t.Fatal(err)
	}
	q := board.ToQuery(&g)
	q.Set("swaps", "0")
	rec := get(t, s, "/solve?"+q.Encode())
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body %s", rec.Code, rec.Body)
	}
	if res := decode[solveRes](t, rec); res.Board != catBoard {
		t.Fatalf("board = %q", res.Board)
	}
}

func TestSolveClampsLimits(t *testing.T) {
	s, _ := newTestServer(t)
	res := decode[solveRes](t, get(t, s, "/solve?swaps=99&top=0&board="+url.QueryEscape(catBoard)))
	if res.Swaps != s.cfg.Solver.MaxSwaps || res.Top != 1 || len(res.Words) != 1 {
		t.Fatalf("swaps=%d top=%d words=%d", res.Swaps, res.Top, len(res.Words))
	}
}

func TestSolveBadRequest(t *testing.T) {
	s, _ := newTestServer(t)
	cases := []string{
		"/solve",
		"/solve?board=abc",
		"/solve?board=" + url.QueryEscape("ca1zz/trzzz/zzzzz/zzzzz/zzzzz"),
		"/solve?swaps=x&board=" + url.QueryEscape(catBoard),
		"/solve?top=many&board=" + url.QueryEscape(catBoard),
	}
	for _, target := range cases {
		rec := get(t, s, target)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d", target, rec.Code)
			continue
		}
		if body := decode[map[string]string](t, rec); body["error"] == "" {
			t.Errorf("%s: missing error message", target)
		}
	}
}

func TestSolveMsgpack(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s, "/solve?swaps=0&board="+url.QueryEscape(catBoard), "Accept", msgpackType)
	if ct := rec.Header().Get("Content-Type"); ct != msgpackType {
		t.Fatalf("Content-Type = %q", ct)
	}
	var res solveRes
	dec := msgpack.NewDecoder(rec.Body)
	dec.SetCustomStructTag("json")
	if err := dec.Decode(&res); err != nil {
		t.Fatal(err)
	}
	if res.Board != catBoard || len(res.Words) != 4 || res.Words[0].Score != 8 {
		t.Fatalf("res = %+v", res)
	}
}

func TestSolveTimeout(t *testing.T) {
	s, _ := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodGet, "/solve?board="+url.QueryEscape(catBoard), nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestSolveHistoryIsPerDictionary(t *testing.T) {
	cfg := testConfig()
	hs := history.NewMemoryStore(50)
	target := "/solve?swaps=0&top=5&board=" + url.QueryEscape(catBoard)

	first := New(cfg, words.FromWords("cat"), hs)
	res := decode[solveRes](t, get(t, first, target))
	if res.Cached || len(res.Words) != 1 || res.Words[0].Word != "cat" {
		t.Fatalf("first dictionary = %+v", res)
	}

	second := New(cfg, words.FromWords("car", "tar"), hs)
	res = decode[solveRes](t, get(t, second, target))
	if res.Cached {
		t.Fatal("solve under another dictionary must not come from history")
	}
	got := map[string]bool{}
	for _, w := range res.Words {
		got[w.Word] = true
	}
	if got["cat"] || !got["car"] || !got["tar"] {
		t.Fatalf("second dictionary words = %v", got)
	}

	// Each dictionary still hits its own entry.
	if res := decode[solveRes](t, get(t, first, target)); !res.Cached {
		t.Fatal("first dictionary should reuse its own solve")
	}
}

func TestSolveRejectsInvalidGrid(t *testing.T) {
	s, hs := newTestServer(t)
	var g spellcast.Grid // every letter is zero
	_, _, err := s.solve(context.Background(), g, 0, 5)
	if !errors.Is(err, board.ErrInvalidLetter) {
		t.Fatalf("err = %v, want ErrInvalidLetter", err)
	}
	rec := httptest.NewRecorder()
	writeSolveError(rec, err)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if entries, _ := hs.Recent(context.Background(), 10); len(entries) != 0 {
		t.Fatalf("invalid grid was recorded: %+v", entries)
	}
}

func TestSolveWaitsForSearchSlot(t *testing.T) {
	cfg := testConfig()
	cfg.Solver.MaxConcurrent = 1
	cfg.Solver.SearchTimeout = config.Duration{Duration: 20 * time.Millisecond}
	s, _ := newTestServerWith(t, cfg)
	target := "/solve?swaps=0&board=" + url.QueryEscape(catBoard)

	s.sem <- struct{}{} // an abandoned search still holding the only slot
	if rec := get(t, s, target); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503 while the slot is busy", rec.Code)
	}
	<-s.sem
	if rec := get(t, s, target); rec.Code != http.StatusOK {
		t.Fatalf("status = %d after the slot was freed", rec.Code)
	}
	if len(s.sem) != 0 {
		t.Fatal("finished search did not release its slot")
	}
}

func TestDaily(t *testing.T) {
	s, _ := newTestServer(t)
	first := decode[dailyRes](t, get(t, s, "/daily"))
	if len(first.Grid) != 5 || len(first.Grid[0]) != 5 || first.Date == "" {
		t.Fatalf("daily = %+v", first)
	}
	if _, err := board.Parse(first.Board); err != nil {
		t.Fatalf("daily board %q does not parse: %v", first.Board, err)
	}
	second := decode[dailyRes](t, get(t, s, "/daily"))
	if second.Board != first.Board || !second.Solve.Cached {
		t.Fatalf("second call should reuse today's solve: %+v", second)
	}
}

func TestDictionaryComplete(t *testing.T) {
	s, _ := newTestServer(t)
	res := decode[completeRes](t, get(t, s, "/dictionary?prefix=CA"))
	if res.Prefix != "ca" || res.Total != 6 || len(res.Words) != 3 {
		t.Fatalf("res = %+v", res)
	}
	if res.Words[0].Word != "car" || res.Words[0].Value != 8 {
		t.Fatalf("first = %+v", res.Words[0])
	}

	res = decode[completeRes](t, get(t, s, "/dictionary?limit=2"))
	if len(res.Words) != 2 {
		t.Fatalf("limit ignored: %+v", res)
	}

	if rec := get(t, s, "/dictionary?prefix=c4"); rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestDictionaryLookup(t *testing.T) {
	s, _ := newTestServer(t)
	res := decode[lookupRes](t, get(t, s, "/dictionary/Care"))
	if !res.Valid || res.Word != "care" || res.Value != 9 {
		t.Fatalf("res = %+v", res)
	}
	res = decode[lookupRes](t, get(t, s, "/dictionary/cab"))
	if res.Valid || res.Value != 0 {
		t.Fatalf("res = %+v", res)
	}
}

func TestHistoryList(t *testing.T) {
	s, _ := newTestServer(t)
	get(t, s, "/solve?swaps=0&board="+url.QueryEscape(catBoard))
	get(t, s, "/solve?swaps=1&board="+url.QueryEscape(catBoard))

	body := decode[map[string][]historyItem](t, get(t, s, "/history?limit=1"))
	items := body["solves"]
	if len(items) != 1 {
		t.Fatalf("items = %+v", items)
	}
	if items[0].Swaps != 1 || items[0].Board != catBoard || items[0].BestScore == 0 {
		t.Fatalf("newest = %+v", items[0])
	}
	if rec := get(t, s, "/history?limit=x"); rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestHistoryListMaxList(t *testing.T) {
	cfg := testConfig()
	cfg.History.MaxList = 2
	s, _ := newTestServerWith(t, cfg)
	for _, swaps := range []string{"0", "1", "2"} {
		get(t, s, "/solve?swaps="+swaps+"&board="+url.QueryEscape(catBoard))
	}
	body := decode[map[string][]historyItem](t, get(t, s, "/history?limit=10"))
	if items := body["solves"]; len(items) != 2 || items[0].Swaps != 2 {
		t.Fatalf("items = %+v, want the 2 newest", items)
	}
}

func TestIndexPage(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s, "/")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "<form") {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("Content-Type = %q", ct)
	}

	rec = get(t, s, "/?swaps=0&board="+url.QueryEscape(catBoard))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), ">cat<") {
		t.Fatalf("results missing: %d", rec.Code)
	}

	rec = get(t, s, "/?0=1")
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "cell 0") {
		t.Fatalf("error not rendered: %d", rec.Code)
	}
}

func TestCORS(t *testing.T) {
	s, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodOptions, "/solve", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != s.cfg.Server.CORSOrigin {
		t.Fatalf("origin = %q", got)
	}
}
