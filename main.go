// main.go
//
// spellcast-server: HTTP front end for the word-grid solver.
//
// Startup:
//   - .env (godotenv), then config (spellcast.toml or -config) with env overrides.
//   - Dictionary loaded eagerly so a bad word list fails fast.
//   - History in SQLite when enabled, in memory otherwise.

package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/spellcast/internal/config"
	"github.com/robalobadob/spellcast/internal/history"
	"github.com/robalobadob/spellcast/internal/httpserver"
	"github.com/robalobadob/spellcast/internal/words"
)

func main() {
	configPath := flag.String("config", getEnv("SPELLCAST_CONFIG", ""), "path to spellcast.toml")
	flag.Parse()

	_ = godotenv.Load()
	cfg, used, err := config.LoadWithPriority(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.Log.Level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if used != "" {
		log.Info().Str("path", used).Msg("config loaded")
	}

	words.SetSource(cfg.Dict.WordsFile)
	if err := words.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to load word list")
	}

	hs := openHistory(cfg)
	srv := httpserver.New(cfg, words.Default(), hs)
	log.Info().Str("addr", cfg.Server.Addr).Msg("starting spellcast-server")
	if err := srv.Start(cfg.Server.Addr); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// openHistory returns the SQLite store, or a memory store when history is
// disabled. A database that cannot be opened is fatal.
func openHistory(cfg *config.Config) history.Store {
	if !cfg.History.Enabled {
		log.Info().Int("limit", cfg.History.MemoryLimit).Msg("history in memory")
		return history.NewMemoryStore(cfg.History.MemoryLimit)
	}
	db, err := openDB(cfg.History.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.History.DBPath).Msg("open database")
	}
	if err := history.Migrate(context.Background(), db); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}
	log.Info().Str("path", cfg.History.DBPath).Msg("history in sqlite")
	return history.NewSQLStore(db)
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
