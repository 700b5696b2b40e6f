// assets/embed.go
//
// Static files bundled into the binaries.
//   - words.txt: default dictionary, one lowercase word per line.
//
// A larger list can be supplied at runtime (see internal/words); the embedded
// one guarantees the server and CLI start without any external files.

package assets

import (
	"embed"
	"io"
)

//go:embed words.txt
var FS embed.FS

// WordList opens the embedded newline-delimited dictionary.
func WordList() (io.ReadCloser, error) {
	return FS.Open("words.txt")
}
