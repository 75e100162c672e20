// internal/store/round.go
//
// Round is the unit of persistence for live games: the immutable rules
// state plus the driver-side bookkeeping (owner, history, provenance)
// that the engine itself does not carry.

package store

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/lexigame/hangman/internal/game"
)

// Round holds one game session between HTTP requests.
type Round struct {
	ID         string
	UserID     string // owner (account or anonymous id); may be ""
	State      game.GameState
	Difficulty string // canonical difficulty key
	WordSource string // where the secret came from: "local", "llm", "custom"
	History    []game.Move
	CreatedAt  time.Time
}

// NewRound builds a Round with a fresh random ID.
func NewRound(userID, difficulty, wordSource string, st game.GameState) *Round {
	return &Round{
		ID:         randomID(),
		UserID:     userID,
		State:      st,
		Difficulty: difficulty,
		WordSource: wordSource,
		CreatedAt:  time.Now().UTC(),
	}
}

// randomID generates a 16-char hex round identifier.
// Collisions are extremely unlikely given crypto/rand entropy.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
