/*
Package config loads the TOML configuration shared by the server and the CLI.

Resolution order: built-in defaults, then the first config file found
(explicit path, then ./spellcast.toml), then environment overrides.
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog/log"
)

// DefaultPath is tried when no explicit config path is given.
const DefaultPath = "spellcast.toml"

// Config holds the entire config structure.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Solver  SolverConfig  `toml:"solver"`
	Dict    DictConfig    `toml:"dict"`
	History HistoryConfig `toml:"history"`
	Daily   DailyConfig   `toml:"daily"`
	Log     LogConfig     `toml:"log"`
}

// ServerConfig has HTTP server options.
type ServerConfig struct {
	Addr           string   `toml:"addr"`
	RequestTimeout Duration `toml:"request_timeout"`
	CORSOrigin     string   `toml:"cors_origin"`
}

// SolverConfig bounds what a single request may ask for.
type SolverConfig struct {
	DefaultSwaps  int      `toml:"default_swaps"`
	DefaultTop    int      `toml:"default_top"`
	MaxSwaps      int      `toml:"max_swaps"`
	MaxTop        int      `toml:"max_top"`
	SearchTimeout Duration `toml:"search_timeout"`
	// MaxConcurrent caps searches running at once, including ones whose
	// request already gave up. Zero or less means unlimited.
	MaxConcurrent int `toml:"max_concurrent"`
}

// DictConfig selects the word list. Empty means the embedded list.
type DictConfig struct {
	WordsFile string `toml:"words_file"`
}

// HistoryConfig controls solve persistence.
type HistoryConfig struct {
	Enabled     bool   `toml:"enabled"`
	DBPath      string `toml:"db_path"`
	MemoryLimit int    `toml:"memory_limit"`
	ListLimit   int    `toml:"list_limit"`
	MaxList     int    `toml:"max_list"` // upper bound for /history?limit=
}

// DailyConfig holds the daily board secret.
type DailyConfig struct {
	Salt string `toml:"salt"`
}

// LogConfig holds the zerolog level name.
type LogConfig struct {
	Level string `toml:"level"`
}

// Duration is a time.Duration written as a string ("10s") in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:           ":5175",
			RequestTimeout: Duration{15 * time.Second},
			CORSOrigin:     "http://localhost:5173",
		},
		Solver: SolverConfig{
			DefaultSwaps:  1,
			DefaultTop:    10,
			MaxSwaps:      3,
			MaxTop:        100,
			SearchTimeout: Duration{10 * time.Second},
			MaxConcurrent: 4,
		},
		History: HistoryConfig{
			Enabled:     true,
			DBPath:      "./data/spellcast.db",
			MemoryLimit: 500,
			ListLimit:   20,
			MaxList:     200,
		},
		Daily: DailyConfig{Salt: "dev-salt-change-me"},
		Log:   LogConfig{Level: "info"},
	}
}

// Load reads a TOML file over the defaults. Keys absent from the file keep
// their default value.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		log.Warn().Str("path", path).Strs("keys", keys).Msg("unknown config keys ignored")
	}
	return cfg, nil
}

// LoadWithPriority loads config with priority:
//  1. customPath, when non-empty (a missing or broken file is an error)
//  2. DefaultPath in the working directory, when present
//  3. built-in defaults
//
// Environment overrides are applied last. The returned string is the file
// that was used, or "" for defaults.
func LoadWithPriority(customPath string) (*Config, string, error) {
	if customPath != "" {
		cfg, err := Load(customPath)
		if err != nil {
			return nil, "", err
		}
		cfg.ApplyEnv()
		return cfg, customPath, nil
	}

	cfg, err := Load(DefaultPath)
	switch {
	case err == nil:
		cfg.ApplyEnv()
		return cfg, DefaultPath, nil
	case errors.Is(err, fs.ErrNotExist):
		cfg = DefaultConfig()
		cfg.ApplyEnv()
		return cfg, "", nil
	default:
		return nil, "", err
	}
}

// ApplyEnv overrides fields from PORT, LOG_LEVEL, WORDS_FILE, DB_PATH,
// DAILY_SALT, CLIENT_ORIGIN and HISTORY_ENABLED when set.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Addr = ":" + strings.TrimPrefix(v, ":")
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("WORDS_FILE"); v != "" {
		c.Dict.WordsFile = v
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		c.History.DBPath = v
	}
	if v := os.Getenv("DAILY_SALT"); v != "" {
		c.Daily.Salt = v
	}
	if v := os.Getenv("CLIENT_ORIGIN"); v != "" {
		c.Server.CORSOrigin = v
	}
	if v := os.Getenv("HISTORY_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.History.Enabled = b
		} else {
			log.Warn().Str("HISTORY_ENABLED", v).Msg("not a boolean; keeping config value")
		}
	}
}

// ClampSwaps bounds a requested swap budget to [0, MaxSwaps].
func (s SolverConfig) ClampSwaps(n int) int {
	return clamp(n, 0, s.MaxSwaps)
}

// ClampTop bounds a requested result count to [1, MaxTop].
func (s SolverConfig) ClampTop(n int) int {
	return clamp(n, 1, s.MaxTop)
}

func clamp(n, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	return min(max(n, lo), hi)
}
