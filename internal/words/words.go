// internal/words/words.go
//
// Word list management for round creation and coaching.
//
// Responsibilities:
//   - Load one list per difficulty (easy/medium/hard) from an operator
//     directory, falling back per file to the embedded defaults.
//   - Supply candidate pools to the coach and random secrets to new rounds.
//   - Expose deterministic indexed access for the daily challenge.
//
// Initialization behavior (Init):
//  1. If dir is set (WORDLIST_DIR), each difficulty loads from
//     <dir>/<difficulty>.txt; a missing or empty file falls back to the
//     embedded default for that difficulty. A dir that does not exist at
//     all is a configuration error.
//  2. If dir is empty, the embedded defaults are used directly.
//  3. A tiny built-in list backstops everything, so lookups never come
//     back empty even before Init has run.
//
// Constraints:
//   - Words are lowercase ASCII letters only; other lines are dropped.
//   - Initialization runs once (sync.Once); lookups after Init are
//     read-only and safe for concurrent use.

package words

import (
	"bufio"
	"crypto/rand"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/lexigame/hangman/assets"
)

// Canonical difficulty keys. Anything else normalizes to Medium.
const (
	Easy   = "easy"
	Medium = "medium"
	Hard   = "hard"
)

var difficulties = []string{Easy, Medium, Hard}

// builtin is the last-resort pool used when no list could be loaded.
var builtin = []string{"python", "stream", "planet"}

var (
	initOnce   sync.Once
	lists      map[string][]string // difficulty -> words
	initialErr error
)

// Init loads the word lists exactly once. dir may be empty to use the
// embedded defaults; a non-empty dir that cannot be read is an error.
func Init(dir string) error {
	initOnce.Do(func() {
		lists, initialErr = load(dir)
	})
	return initialErr
}

// load builds the difficulty map for Init. Kept separate so it can be
// exercised against temp directories without touching package state.
func load(dir string) (map[string][]string, error) {
	if dir != "" {
		fi, err := os.Stat(dir)
		if err != nil {
			return nil, fmt.Errorf("words: wordlist dir: %w", err)
		}
		if !fi.IsDir() {
			return nil, fmt.Errorf("words: wordlist dir %s is not a directory", dir)
		}
	}

	out := make(map[string][]string, len(difficulties))
	for _, d := range difficulties {
		var ws []string
		if dir != "" {
			// Missing or unreadable per-difficulty files fall through
			// to the embedded list rather than failing startup.
			ws, _ = readWordFile(filepath.Join(dir, d+".txt"))
		}
		if len(ws) == 0 {
			ws, _ = assets.Wordlist(d + ".txt")
		}
		if len(ws) == 0 {
			ws = append([]string(nil), builtin...)
		}
		out[d] = ws
	}
	return out, nil
}

// readWordFile loads one word per line, lowercased and trimmed, keeping
// only alphabetic words and skipping blanks and #-comments.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		w := strings.TrimSpace(strings.ToLower(sc.Text()))
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		if isAlpha(w) {
			out = append(out, w)
		}
	}
	return out, sc.Err()
}

// Normalize maps an arbitrary difficulty string onto a canonical key.
// Unknown values fall back to Medium.
func Normalize(difficulty string) string {
	switch strings.ToLower(strings.TrimSpace(difficulty)) {
	case Easy:
		return Easy
	case Hard:
		return Hard
	default:
		return Medium
	}
}

// Load returns a copy of the word list for the given difficulty. The copy
// is the caller's to keep or reorder; the internal list never changes
// after Init.
func Load(difficulty string) []string {
	ws := listFor(difficulty)
	out := make([]string, len(ws))
	copy(out, ws)
	return out
}

// Pick returns a cryptographically random word for the difficulty.
func Pick(difficulty string) string {
	ws := listFor(difficulty)
	nBig, _ := rand.Int(rand.Reader, big.NewInt(int64(len(ws))))
	return ws[nBig.Int64()]
}

// ByIndex returns the word at i within the difficulty's list, wrapping
// out-of-range indexes. Used by the daily challenge, which derives i
// deterministically from the date.
func ByIndex(difficulty string, i int) string {
	ws := listFor(difficulty)
	if i < 0 {
		i = 0
	}
	return ws[i%len(ws)]
}

// Count returns the number of words loaded for the difficulty.
func Count(difficulty string) int {
	return len(listFor(difficulty))
}

// Stats returns per-difficulty word counts, for diagnostics.
func Stats() map[string]int {
	out := make(map[string]int, len(difficulties))
	for _, d := range difficulties {
		out[d] = len(listFor(d))
	}
	return out
}

// listFor resolves the internal list for a difficulty, never empty.
func listFor(difficulty string) []string {
	ws := lists[Normalize(difficulty)]
	if len(ws) == 0 {
		return builtin
	}
	return ws
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
