// apps/go-solver/assets/embed.go
//
// Embedded default word list for the solver.
// Used when no words file is configured, so the CLI and the solver API
// work out of the box.

package assets

import (
	"bufio"
	"embed"
	"strings"
)

//go:embed words.txt
var FS embed.FS

func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToLower(s))
	}
	return out, sc.Err()
}

// DefaultWords returns the embedded default word list (lowercase, one
// word per entry, comments and blank lines stripped).
func DefaultWords() ([]string, error) {
	return readLines("words.txt")
}
