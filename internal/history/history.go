// internal/history/history.go
//
// Solve history: every board solved through the HTTP API is recorded so the
// same (board, swaps, top) request can be answered without searching again,
// and so /history can list recent solves.
//
// Implementations:
//   - memory (memory.go): bounded, process-local, used when no database is
//     configured and in tests.
//   - SQLStore (sqlite.go): SQLite-backed, ranked word lists stored as
//     msgpack blobs.

package history

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Migrations holds the SQL schema, applied in lexical order.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// ErrNotFound is returned by Find when no matching solve is stored.
var ErrNotFound = errors.New("not found")

// Word is one ranked word of a solve.
type Word struct {
	Word    string `json:"word"`
	Display string `json:"display"` // wildcards upper-case
	Score   int    `json:"score"`
	Swaps   int    `json:"swaps"`
	Path    []Cell `json:"path"`
}

// Cell is one step of a word's path. Override is the wildcard letter, if any.
type Cell struct {
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Override string `json:"override,omitempty"`
}

// Entry is one recorded solve.
type Entry struct {
	ID        int64     `json:"id"`
	Dict      string    `json:"dict"`  // fingerprint of the dictionary that produced Words
	Board     string    `json:"board"` // board.Format literal
	Swaps     int       `json:"swaps"`
	Top       int       `json:"top"`
	Words     []Word    `json:"words"`
	ElapsedMs int64     `json:"elapsedMs"`
	CreatedAt time.Time `json:"createdAt"`
}

// Best returns the top word, or the zero Word when nothing was found.
func (e *Entry) Best() Word {
	if len(e.Words) == 0 {
		return Word{}
	}
	return e.Words[0]
}

// Store defines the persistence interface for solves.
type Store interface {
	// Record persists e and fills in its ID and CreatedAt.
	Record(ctx context.Context, e *Entry) error

	// Find returns the most recent solve with the same dictionary and request
	// parameters, or ErrNotFound.
	Find(ctx context.Context, dict, board string, swaps, top int) (*Entry, error)

	// Recent lists up to limit solves, newest first.
	Recent(ctx context.Context, limit int) ([]Entry, error)
}

// encodeWords packs a ranked word list for storage. Field names follow the
// json tags so blobs and API msgpack payloads agree.
func encodeWords(ws []Word) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(ws); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeWords unpacks a list written by encodeWords.
func decodeWords(b []byte) ([]Word, error) {
	if len(b) == 0 {
		return []Word{}, nil
	}
	var ws []Word
	dec := msgpack.NewDecoder(bytes.NewReader(b))
	dec.SetCustomStructTag("json")
	if err := dec.Decode(&ws); err != nil {
		return nil, err
	}
	if ws == nil {
		ws = []Word{}
	}
	return ws, nil
}
