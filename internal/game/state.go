// internal/game/state.go
//
// Core type definitions for the hangman rules engine.
// Defines:
//   - Status: coarse round state (playing/won/lost).
//   - GameState: immutable snapshot of a single round.
//   - Move: one applied guess, recorded by drivers for history/replay.
//
// GameState is a value: every rule transition in engine.go returns a new
// state and never mutates its input. Construction goes through NewState,
// which normalizes and validates; the zero value is not a valid state.

package game

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Status represents the lifecycle of a single round.
// Possible values:
//   - "playing": guesses are still being accepted.
//   - "won":     every distinct secret letter has been revealed.
//   - "lost":    the mistake budget was exhausted.
type Status string

const (
	StatusPlaying Status = "playing"
	StatusWon     Status = "won"
	StatusLost    Status = "lost"
)

// DefaultMaxWrong is the classic six-strike mistake budget.
const DefaultMaxWrong = 6

// GameState holds the state of a single hangman round.
//
// Fields are unexported so the only way to obtain a state is through
// NewState or the transitions in engine.go, which preserve the invariants:
// the secret is non-empty lowercase a-z, the guessed set holds single
// lowercase letters, and status is re-derived after every transition.
type GameState struct {
	secret   string
	guessed  map[byte]struct{}
	wrong    int
	maxWrong int
	status   Status
}

// NewState builds a validated, normalized state from raw parts.
//
// Normalization:
//   - secret is trimmed and lowercased.
//   - guessed entries that are not single a-z letters are dropped silently.
//
// Validation (the zero state and an error are returned on failure):
//   - secret must be non-empty and alphabetic after normalization.
//   - wrongCount must be >= 0.
//   - maxWrong must be >= 1.
//   - status must be one of playing/won/lost.
func NewState(secret string, guessed []string, wrongCount, maxWrong int, status Status) (GameState, error) {
	sw := strings.ToLower(strings.TrimSpace(secret))
	if sw == "" || !isAlpha(sw) {
		return GameState{}, errors.New("game: secret must be non-empty and letters only (a-z)")
	}
	if wrongCount < 0 {
		return GameState{}, errors.New("game: wrongCount must be >= 0")
	}
	if maxWrong < 1 {
		return GameState{}, errors.New("game: maxWrong must be >= 1")
	}
	switch status {
	case StatusPlaying, StatusWon, StatusLost:
	default:
		return GameState{}, fmt.Errorf("game: unknown status %q", status)
	}

	set := make(map[byte]struct{}, len(guessed))
	for _, g := range guessed {
		g = strings.ToLower(strings.TrimSpace(g))
		if len(g) == 1 && isAlpha(g) {
			set[g[0]] = struct{}{}
		}
	}
	return GameState{secret: sw, guessed: set, wrong: wrongCount, maxWrong: maxWrong, status: status}, nil
}

// Secret returns the word being guessed (always lowercase).
func (s GameState) Secret() string { return s.secret }

// Guessed returns the guessed letters in alphabetical order.
// The returned slice is a copy; callers may keep or modify it freely.
func (s GameState) Guessed() []string {
	out := make([]string, 0, len(s.guessed))
	for c := range s.guessed {
		out = append(out, string(c))
	}
	sort.Strings(out)
	return out
}

// HasGuessed reports whether the single letter ch was guessed already.
func (s GameState) HasGuessed(ch string) bool {
	ch = strings.ToLower(ch)
	if len(ch) != 1 || !isAlpha(ch) {
		return false
	}
	_, ok := s.guessed[ch[0]]
	return ok
}

// WrongCount returns the number of strikes taken so far.
func (s GameState) WrongCount() int { return s.wrong }

// MaxWrong returns the mistake budget for the round.
func (s GameState) MaxWrong() int { return s.maxWrong }

// Status returns the current round status.
func (s GameState) Status() Status { return s.status }

// Finished reports whether the round reached a terminal status.
func (s GameState) Finished() bool { return s.status != StatusPlaying }

// MoveKind discriminates letter and whole-word guesses in a round history.
type MoveKind string

const (
	MoveLetter MoveKind = "letter"
	MoveWord   MoveKind = "word"
)

// Move records one applied guess. Drivers keep a []Move per round to power
// replay and the post-game review; the engine itself stores none.
type Move struct {
	Kind       MoveKind `json:"type"`
	Guess      string   `json:"guess"`
	Hit        bool     `json:"hit"`
	Mask       string   `json:"mask"`
	WrongCount int      `json:"wrongCount"`
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
