// internal/words/default.go
//
// Process-wide dictionary shared by every search.
//
// Notes:
//   • Built lazily, exactly once (sync.Once), on first access.
//   • Source: the path given to SetSource, else the WORDS_FILE environment
//     variable, else the word list embedded in package assets.
//   • Read-only after construction; no teardown.

package words

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/spellcast/assets"
)

var (
	defaultOnce sync.Once
	sourceMu    sync.Mutex
	sourcePath  string
	defaultDict *Dictionary
	defaultErr  error
)

// SetSource selects the word list file used by Default. It only has an
// effect before the first call to Init or Default.
func SetSource(path string) {
	sourceMu.Lock()
	defer sourceMu.Unlock()
	sourcePath = path
}

// Init loads the process-wide dictionary once and reports any load error.
// On error Default returns an empty dictionary.
func Init() error {
	defaultOnce.Do(loadDefault)
	return defaultErr
}

// Default returns the process-wide dictionary, loading it on first use.
func Default() *Dictionary {
	_ = Init()
	return defaultDict
}

func loadDefault() {
	sourceMu.Lock()
	path := sourcePath
	sourceMu.Unlock()
	if path == "" {
		path = os.Getenv("WORDS_FILE")
	}

	var d *Dictionary
	var err error
	if path != "" {
		d, err = LoadFile(path)
	} else {
		path = "embedded:words.txt"
		d, err = loadEmbedded()
	}
	if err != nil {
		defaultErr = err
		defaultDict = empty()
		return
	}

	logLoaded(path, d)
	defaultDict = d
}

// logLoaded reports a freshly loaded dictionary, at warn level when some
// entries were rejected.
func logLoaded(source string, d *Dictionary) {
	st := d.Stats()
	lvl := zerolog.InfoLevel
	if st.Rejected > 0 {
		lvl = zerolog.WarnLevel
	}
	log.WithLevel(lvl).
		Str("source", source).
		Int("words", st.Words).
		Int("rejected", st.Rejected).
		Str("fingerprint", d.Fingerprint()).
		Msg("dictionary loaded")
}

func loadEmbedded() (*Dictionary, error) {
	f, err := assets.WordList()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}
