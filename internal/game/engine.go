// internal/game/engine.go
//
// Rule transitions for a single hangman round.
// Responsibilities:
//   - Start rounds from an injected word picker (New).
//   - Apply single-letter and whole-word guesses as pure transitions:
//     every operation returns a new GameState, never mutating its input.
//   - Re-derive the playing/won/lost outcome after each transition.
//
// Notes:
//   - Malformed player input is absorbed as a no-op, never an error.
//   - A picker returning garbage (or panicking) is replaced by a fixed
//     fallback word, so New always yields a playable round.

package game

import "strings"

// Picker chooses a secret word for a difficulty hint. Implementations can
// be a local word list or an external generator; the engine does not care.
type Picker func(difficulty string) string

// fallbackWord substitutes the secret when a picker misbehaves.
const fallbackWord = "python"

// New starts a round using pick to choose the secret word.
//
// The picked word is trimmed and lowercased; if the result is empty or not
// purely alphabetic (or the picker panicked or was nil), fallbackWord is
// used instead. maxWrong is the mistake budget and must be >= 1.
func New(difficulty string, pick Picker, maxWrong int) (GameState, error) {
	word := strings.ToLower(strings.TrimSpace(safePick(pick, difficulty)))
	if word == "" || !isAlpha(word) {
		word = fallbackWord
	}
	return NewState(word, nil, 0, maxWrong, StatusPlaying)
}

// safePick invokes pick, converting a panic into an empty result.
func safePick(pick Picker, difficulty string) (word string) {
	if pick == nil {
		return ""
	}
	defer func() {
		if r := recover(); r != nil {
			word = ""
		}
	}()
	return pick(difficulty)
}

// Mask returns the masked display form of secret, e.g. "_ p p l e".
// Letters present in guessed are revealed, the rest show as underscores,
// and characters are space-separated for readability. Guessed entries that
// are not single a-z letters are ignored.
func Mask(secret string, guessed []string) string {
	set := make(map[byte]struct{}, len(guessed))
	for _, g := range guessed {
		g = strings.ToLower(g)
		if len(g) == 1 && isAlpha(g) {
			set[g[0]] = struct{}{}
		}
	}
	return maskWith(strings.ToLower(secret), set)
}

// Mask returns the masked display form of the round's secret.
func (s GameState) Mask() string { return maskWith(s.secret, s.guessed) }

// maskWith is the shared masking loop over an already-normalized set.
func maskWith(secret string, guessed map[byte]struct{}) string {
	var b strings.Builder
	for i := 0; i < len(secret); i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		if _, ok := guessed[secret[i]]; ok {
			b.WriteByte(secret[i])
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

// GuessLetter applies a single-letter guess and returns the next state.
//
// No-ops (the input state is returned unchanged):
//   - the round is not in playing status
//   - ch is not exactly one alphabetic character
//   - ch was guessed before (repeats are idempotent)
//
// Otherwise the letter joins the guessed set, a miss costs one strike, and
// the outcome is re-derived.
func (s GameState) GuessLetter(ch string) GameState {
	if s.status != StatusPlaying {
		return s
	}
	ch = strings.ToLower(ch)
	if len(ch) != 1 || !isAlpha(ch) {
		return s
	}
	if _, ok := s.guessed[ch[0]]; ok {
		return s
	}

	next := s
	next.guessed = s.cloneGuessed()
	next.guessed[ch[0]] = struct{}{}
	if !strings.Contains(s.secret, ch) {
		next.wrong++
	}
	return next.withOutcome()
}

// GuessWord applies a whole-word guess and returns the next state.
//
// No-ops when the round is finished or the attempt is not purely
// alphabetic after trimming and lowercasing. An exact match wins
// immediately and reveals every letter; anything else costs exactly one
// strike no matter how long the attempt was.
func (s GameState) GuessWord(word string) GameState {
	if s.status != StatusPlaying {
		return s
	}
	attempt := strings.ToLower(strings.TrimSpace(word))
	if attempt == "" || !isAlpha(attempt) {
		return s
	}

	if attempt == s.secret {
		next := s
		next.guessed = distinctLetters(s.secret)
		next.status = StatusWon
		return next
	}

	next := s
	next.guessed = s.cloneGuessed()
	next.wrong++
	return next.withOutcome()
}

// withOutcome re-derives the round status from the current fields.
// The win check runs first: a single transition cannot complete the word
// and exhaust the budget at once, but if it could, the win would take
// priority.
func (s GameState) withOutcome() GameState {
	if s.revealedAll() {
		s.status = StatusWon
		return s
	}
	if s.wrong >= s.maxWrong {
		s.status = StatusLost
		return s
	}
	return s
}

// revealedAll reports whether every distinct secret letter was guessed.
func (s GameState) revealedAll() bool {
	for i := 0; i < len(s.secret); i++ {
		if _, ok := s.guessed[s.secret[i]]; !ok {
			return false
		}
	}
	return true
}

// cloneGuessed copies the guessed set so transitions never share maps.
func (s GameState) cloneGuessed() map[byte]struct{} {
	out := make(map[byte]struct{}, len(s.guessed)+1)
	for c := range s.guessed {
		out[c] = struct{}{}
	}
	return out
}

// distinctLetters builds a guessed set holding every letter of secret.
func distinctLetters(secret string) map[byte]struct{} {
	out := make(map[byte]struct{}, len(secret))
	for i := 0; i < len(secret); i++ {
		out[secret[i]] = struct{}{}
	}
	return out
}
