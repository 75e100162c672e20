// internal/coach/coach.go
//
// Next-letter recommendation for an in-progress round.
// Responsibilities:
//   - Filter a candidate word pool down to words consistent with what the
//     player already knows (length, absent letters, pinned positions).
//   - Score unguessed letters by how many remaining candidates contain
//     them, and pick the best one deterministically.
//   - Produce a plain-language rationale for the pick. The local sentence
//     is always available; callers may swap in a rephrased one afterwards.
//
// Pure computation throughout: no I/O, no stored state, safe for
// concurrent use.

package coach

import (
	"fmt"
	"strings"

	"github.com/lexigame/hangman/internal/game"
)

// Source tells where a suggestion's rationale text came from.
type Source string

const (
	SourceLocal Source = "local"
	SourceLLM   Source = "llm"
)

// defaultLetter is recommended when no candidate yields a useful score.
// The classic opener for English word games.
const defaultLetter = "e"

// Suggestion is the outcome of one recommendation pass.
type Suggestion struct {
	Letter     string `json:"letter"`
	Rationale  string `json:"rationale"`
	Source     Source `json:"source"`
	Candidates int    `json:"candidatesConsidered"`
}

// Suggest recommends the next letter to guess for the given round snapshot.
//
// pool is the full candidate word list for the round's difficulty; it is
// filtered here, not by the caller. The result always carries a local
// rationale and Source == SourceLocal; a driver that rephrases the text
// through an external generator overwrites those two fields.
func Suggest(secret string, guessed, pool []string) Suggestion {
	secret = strings.ToLower(strings.TrimSpace(secret))
	known := guessedSet(guessed)

	remaining := filterCandidates(secret, known, pool)
	scores := scoreLetters(remaining, known)

	letter := bestLetter(scores)
	if letter == "" {
		letter = defaultLetter
	}
	score := scores[letter[0]-'a']

	return Suggestion{
		Letter:     letter,
		Rationale:  localRationale(game.Mask(secret, guessed), letter, len(remaining), score),
		Source:     SourceLocal,
		Candidates: len(remaining),
	}
}

// filterCandidates keeps the pool words still compatible with the round:
// same length as the secret, free of every wrongly-guessed letter, and
// matching the secret exactly at positions whose letter was already
// revealed. Entries that are not purely alphabetic are dropped.
func filterCandidates(secret string, guessed map[byte]struct{}, pool []string) []string {
	correct := make(map[byte]struct{}, len(guessed))
	wrong := make(map[byte]struct{}, len(guessed))
	for ch := range guessed {
		if strings.IndexByte(secret, ch) >= 0 {
			correct[ch] = struct{}{}
		} else {
			wrong[ch] = struct{}{}
		}
	}

	out := make([]string, 0, len(pool))
	for _, w := range pool {
		w = strings.ToLower(strings.TrimSpace(w))
		if len(w) != len(secret) || !isAlpha(w) {
			continue
		}
		if containsAny(w, wrong) {
			continue
		}
		if !matchesRevealed(w, secret, correct) {
			continue
		}
		out = append(out, w)
	}
	return out
}

// scoreLetters counts, per unguessed letter, the number of remaining
// candidates containing it at least once. Presence, not multiplicity:
// duplicate occurrences within one word count once, so the score reads as
// "how many candidates this letter would split".
func scoreLetters(remaining []string, guessed map[byte]struct{}) [26]int {
	var scores [26]int
	for _, w := range remaining {
		var seen [26]bool
		for i := 0; i < len(w); i++ {
			ch := w[i]
			if _, ok := guessed[ch]; ok {
				continue
			}
			if !seen[ch-'a'] {
				seen[ch-'a'] = true
				scores[ch-'a']++
			}
		}
	}
	return scores
}

// bestLetter returns the highest-scoring letter, smallest letter first on
// ties, or "" when every score is zero.
func bestLetter(scores [26]int) string {
	best, bestScore := byte(0), 0
	for i := 0; i < 26; i++ {
		if scores[i] > bestScore {
			best, bestScore = byte('a'+i), scores[i]
		}
	}
	if best == 0 {
		return ""
	}
	return string(best)
}

// localRationale is the deterministic explanation sentence, always
// computable without any external service.
func localRationale(mask, letter string, remaining, score int) string {
	denom := remaining
	if denom < 1 {
		denom = 1
	}
	pct := float64(score) / float64(denom) * 100
	return fmt.Sprintf("Try %q: among %d words matching the pattern %q, it appears in about %.0f%% of them.",
		strings.ToUpper(letter), denom, mask, pct)
}

// guessedSet normalizes raw guessed entries into a byte set, dropping
// anything that is not a single a-z letter.
func guessedSet(guessed []string) map[byte]struct{} {
	set := make(map[byte]struct{}, len(guessed))
	for _, g := range guessed {
		g = strings.ToLower(strings.TrimSpace(g))
		if len(g) == 1 && isAlpha(g) {
			set[g[0]] = struct{}{}
		}
	}
	return set
}

func containsAny(w string, set map[byte]struct{}) bool {
	for i := 0; i < len(w); i++ {
		if _, ok := set[w[i]]; ok {
			return true
		}
	}
	return false
}

// matchesRevealed reports whether w agrees with secret at every position
// whose letter is in the correct set.
func matchesRevealed(w, secret string, correct map[byte]struct{}) bool {
	for i := 0; i < len(secret); i++ {
		if _, ok := correct[secret[i]]; ok && w[i] != secret[i] {
			return false
		}
	}
	return true
}

// isAlpha reports whether s consists only of lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
