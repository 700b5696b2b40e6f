// cmd/solve/main.go
//
// solve: command-line demo of the word-grid solver.
//
//	solve -board "r2rrpg/nsoak/isuea/eroee/dwann" -swaps 3 -top 10
//
// Prints the board and its ranked words. Logs go to stderr.

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/spellcast/internal/board"
	"github.com/robalobadob/spellcast/internal/config"
	"github.com/robalobadob/spellcast/internal/spellcast"
	"github.com/robalobadob/spellcast/internal/words"
)

// demoBoard is solved when -board is not given.
const demoBoard = "r2rrpg/nsoak/isuea/eroee/dwann"

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	_ = godotenv.Load()

	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Error().Err(err).Msg("solve failed")
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("solve", flag.ContinueOnError)
	lit := fs.String("board", demoBoard, "board literal: 5 rows of 5 letters; suffix 2=DL 3=TL *=DW")
	swaps := fs.Int("swaps", 3, "number of tiles that may be played as any letter")
	top := fs.Int("top", 10, "number of results to show")
	dedupe := fs.Bool("dedupe", true, "hide results with the same word and score")
	wordsFile := fs.String("words", "", "word list file (default: embedded list)")
	configPath := fs.String("config", "", "path to spellcast.toml")
	verbose := fs.Bool("v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, used, err := config.LoadWithPriority(*configPath)
	if err != nil {
		return err
	}
	level := zerolog.InfoLevel
	if lvl, err := zerolog.ParseLevel(cfg.Log.Level); err == nil {
		level = lvl
	}
	if *verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	if used != "" {
		log.Debug().Str("path", used).Msg("config loaded")
	}

	g, err := board.Parse(*lit)
	if err != nil {
		return fmt.Errorf("board: %w", err)
	}
	if *swaps < 0 {
		return fmt.Errorf("swaps must be >= 0, got %d", *swaps)
	}

	src := cfg.Dict.WordsFile
	if *wordsFile != "" {
		src = *wordsFile
	}
	words.SetSource(src)
	if err := words.Init(); err != nil {
		return fmt.Errorf("word list: %w", err)
	}
	log.Debug().Int("words", words.Default().Stats().Words).Msg("dictionary ready")

	start := time.Now()
	results := spellcast.Search(&g, *swaps, *top)
	if *dedupe {
		results = spellcast.Dedupe(results, &g)
	}
	log.Debug().
		Int("swaps", *swaps).
		Int("top", *top).
		Int("results", len(results)).
		Dur("took", time.Since(start)).
		Msg("search done")

	fmt.Fprintln(stdout, renderBoard(&g))
	fmt.Fprintln(stdout, renderResults(results, &g))
	return nil
}
