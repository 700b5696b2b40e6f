package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/robalobadob/spellcast/internal/config"
	"github.com/robalobadob/spellcast/internal/history"
)

func TestOpenDBCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "solves.db")
	db, err := openDB(path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	var mode string
	if err := db.QueryRow(`PRAGMA journal_mode`).Scan(&mode); err != nil {
		t.Fatal(err)
	}
	if mode != "wal" {
		t.Fatalf("journal_mode = %q, want wal", mode)
	}
	if err := history.Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
}

func TestOpenHistoryMemoryWhenDisabled(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.History.Enabled = false
	if _, ok := openHistory(cfg).(*history.SQLStore); ok {
		t.Fatal("disabled history should not use sqlite")
	}
}

func TestOpenHistorySQLite(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.History.DBPath = filepath.Join(t.TempDir(), "h.db")
	hs := openHistory(cfg)
	if _, ok := hs.(*history.SQLStore); !ok {
		t.Fatalf("store = %T, want *history.SQLStore", hs)
	}
	e := &history.Entry{Board: "x", Top: 1}
	if err := hs.Record(context.Background(), e); err != nil {
		t.Fatal(err)
	}
}
