package words

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestLoadFiltersInvalidEntries(t *testing.T) {
	src := strings.Join([]string{
		"# comment",
		"Cat",
		"car",
		"",
		"  care  ",
		"don't",
		"naïve",
		"car",
		"x2",
	}, "\n")

	d, err := Load(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	st := d.Stats()
	if st.Words != 3 {
		t.Errorf("Words = %d, want 3", st.Words)
	}
	if st.Rejected != 3 {
		t.Errorf("Rejected = %d, want 3", st.Rejected)
	}
	for _, w := range []string{"cat", "car", "care", "CAR"} {
		if !d.Contains(w) {
			t.Errorf("Contains(%q) = false", w)
		}
	}
	if d.Contains("ca") || d.Contains("") {
		t.Error("prefixes and empty strings are not words")
	}
	if !d.Root().Contains("care") {
		t.Error("solver trie is missing care")
	}
}

func TestComplete(t *testing.T) {
	d := FromWords("care", "car", "cat", "dog", "cart", "carton")

	tests := []struct {
		prefix string
		limit  int
		want   []string
	}{
		{"car", 10, []string{"car", "care", "cart", "carton"}},
		{"CAR", 2, []string{"car", "care"}},
		{"do", 5, []string{"dog"}},
		{"x", 5, []string{}},
		{"", 3, []string{"car", "care", "cart"}},
		{"car", 0, []string{}},
	}
	for _, tc := range tests {
		got := d.Complete(tc.prefix, tc.limit)
		if !slices.Equal(got, tc.want) {
			t.Errorf("Complete(%q, %d) = %v, want %v", tc.prefix, tc.limit, got, tc.want)
		}
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte("alpha\nbeta\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	d, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if d.Stats().Words != 2 {
		t.Errorf("Words = %d, want 2", d.Stats().Words)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestEmbeddedListLoads(t *testing.T) {
	d, err := loadEmbedded()
	if err != nil {
		t.Fatalf("loadEmbedded: %v", err)
	}
	st := d.Stats()
	if st.Words < 1000 {
		t.Errorf("embedded list has %d words, expected a usable dictionary", st.Words)
	}
	if st.Rejected != 0 {
		t.Errorf("embedded list has %d rejected entries", st.Rejected)
	}
}

func TestFingerprint(t *testing.T) {
	a := FromWords("cat", "car", "care")
	b := FromWords("care", "cat", "car", "cat")
	c := FromWords("cat", "car")
	if a.Fingerprint() != b.Fingerprint() {
		t.Errorf("same word set, different fingerprints: %s vs %s", a.Fingerprint(), b.Fingerprint())
	}
	if a.Fingerprint() == c.Fingerprint() {
		t.Error("different word sets share a fingerprint")
	}
	if len(a.Fingerprint()) != 32 {
		t.Errorf("fingerprint %q, want 32 hex chars", a.Fingerprint())
	}
	if empty().Fingerprint() == "" {
		t.Error("empty dictionary has no fingerprint")
	}
}

func TestLogLoadedLevel(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })

	clean, _ := Load(strings.NewReader("cat\ncar\n"))
	logLoaded("clean", clean)
	dirty, _ := Load(strings.NewReader("cat\nDon't\n"))
	logLoaded("dirty", dirty)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d log lines, want 2:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], `"level":"info"`) || !strings.Contains(lines[0], `"source":"clean"`) {
		t.Errorf("clean load logged as %s", lines[0])
	}
	if !strings.Contains(lines[1], `"level":"warn"`) || !strings.Contains(lines[1], `"rejected":1`) {
		t.Errorf("dirty load logged as %s", lines[1])
	}
}
