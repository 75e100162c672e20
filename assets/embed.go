// assets/embed.go
//
// Embedded default word lists, one file per difficulty. They ship inside
// the binary so a fresh checkout serves games with zero configuration;
// operators point WORDLIST_DIR at their own directory to override them.

package assets

import (
	"bufio"
	"embed"
	"strings"
)

//go:embed wordlists/*.txt
var wordlistFS embed.FS

// Wordlist returns the embedded word list stored under the given file
// name, e.g. "medium.txt". Lines are trimmed and lowercased; blank lines
// and #-comments are skipped.
func Wordlist(name string) ([]string, error) {
	f, err := wordlistFS.Open("wordlists/" + name)
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
