// internal/history/sqlite.go
//
// SQLite-backed Store. The schema lives in migrations/*.sql and is applied
// by Migrate. Ranked word lists are stored as msgpack blobs; the best word
// and score are denormalised into their own columns for listing.

package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SQLStore persists solves in the "solves" table.
type SQLStore struct{ db *sql.DB }

// NewSQLStore wraps an open database that has been migrated.
func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

// Record inserts e and sets its ID and CreatedAt.
func (s *SQLStore) Record(ctx context.Context, e *Entry) error {
	blob, err := encodeWords(e.Words)
	if err != nil {
		return fmt.Errorf("encode words: %w", err)
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	best := e.Best()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO solves(dict, board, swaps, top_k, best_word, best_score, words, elapsed_ms, created_at)
		 VALUES(?,?,?,?,?,?,?,?,?)`,
		e.Dict, e.Board, e.Swaps, e.Top, best.Word, best.Score, blob, e.ElapsedMs, e.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return err
	}
	e.ID, err = res.LastInsertId()
	return err
}

// Find returns the newest solve matching the request parameters.
func (s *SQLStore) Find(ctx context.Context, dict, board string, swaps, top int) (*Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, dict, board, swaps, top_k, words, elapsed_ms, created_at
		 FROM solves
		 WHERE dict=? AND board=? AND swaps=? AND top_k=?
		 ORDER BY id DESC
		 LIMIT 1`, dict, board, swaps, top,
	)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Recent lists up to limit solves, newest first.
func (s *SQLStore) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, dict, board, swaps, top_k, words, elapsed_ms, created_at
		 FROM solves
		 ORDER BY id DESC
		 LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(sc scanner) (*Entry, error) {
	var e Entry
	var blob []byte
	var created string
	if err := sc.Scan(&e.ID, &e.Dict, &e.Board, &e.Swaps, &e.Top, &blob, &e.ElapsedMs, &created); err != nil {
		return nil, err
	}
	ws, err := decodeWords(blob)
	if err != nil {
		return nil, fmt.Errorf("decode words for solve %d: %w", e.ID, err)
	}
	e.Words = ws
	e.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
	return &e, nil
}
