// internal/llm/service.go
//
// Game-facing text generation: secret word picking, hints, rationale
// rephrasing, and the post-game review.
//
// Every operation has a deterministic local fallback and never returns an
// error: when the client is absent (offline mode, no API key) or a call
// fails, the caller still gets usable text. Generated output is sanity
// checked before use; a hint that leaks the secret word is discarded.

package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/lexigame/hangman/internal/game"
)

// pickAttempts bounds the retries when asking for a secret word.
const pickAttempts = 3

// Soft verbosity caps, in words.
const (
	maxHintWords   = 25
	maxReviewWords = 160
)

// Service wraps a completion client with the game's prompts and fallbacks.
// A nil *Service or a nil client behaves as fully offline.
type Service struct {
	client Client
}

// New returns a Service over client. Pass nil to run offline.
func New(client Client) *Service {
	return &Service{client: client}
}

func (s *Service) enabled() bool {
	return s != nil && s.client != nil
}

// PickWord asks the model for one secret word at the given difficulty.
// It returns "" when offline or when no attempt produced a clean
// lowercase word; callers fall back to the local word list.
func (s *Service) PickWord(ctx context.Context, difficulty string) string {
	if !s.enabled() {
		return ""
	}
	prompt := fmt.Sprintf(
		"Generate a random English word around %s difficulty. "+
			"It should be different each time. Output only the word in lowercase.",
		difficulty)

	for i := 0; i < pickAttempts; i++ {
		text, err := s.client.Complete(ctx, CompletionRequest{
			User:        prompt,
			Temperature: 0.7,
			MaxTokens:   20,
		})
		if err != nil {
			log.Warn().Err(err).Int("attempt", i+1).Msg("llm: word pick failed")
			continue
		}
		word := cleanWord(text)
		if isPlayableWord(word) {
			return word
		}
	}
	return ""
}

// cleanWord strips quoting and casing noise from a model reply.
func cleanWord(text string) string {
	text = strings.ReplaceAll(text, `"`, "")
	text = strings.ReplaceAll(text, "'", "")
	return strings.ToLower(strings.TrimSpace(text))
}

// isPlayableWord accepts lowercase a-z words in a sensible length range.
func isPlayableWord(w string) bool {
	if len(w) < 3 || len(w) > 24 {
		return false
	}
	for i := 0; i < len(w); i++ {
		if w[i] < 'a' || w[i] > 'z' {
			return false
		}
	}
	return true
}

// Hint returns one hint for the secret word. The model may phrase it, but
// a reply that is empty or contains the secret is replaced by the local
// hint, so the result is always safe to show.
func (s *Service) Hint(ctx context.Context, secret string) string {
	local := localHint(secret)
	if !s.enabled() {
		return local
	}

	text, err := s.client.Complete(ctx, CompletionRequest{
		System: "You are a helpful Hangman clue-giver.",
		User: fmt.Sprintf(
			"The secret word is '%s'. "+
				"Give exactly ONE short, natural-sounding hint that helps a player guess the word. "+
				"Do NOT include the word itself. Reply with the hint only.",
			secret),
		Temperature: 0.8,
		MaxTokens:   80,
	})
	if err != nil {
		log.Warn().Err(err).Msg("llm: hint failed")
		return local
	}
	if text == "" || containsWord(text, secret) {
		return local
	}
	return capWords(text, maxHintWords)
}

// localHint is the always-available hint.
func localHint(secret string) string {
	if secret == "" {
		return ""
	}
	return fmt.Sprintf("The word has %d letters and starts with '%s'.",
		len(secret), strings.ToUpper(secret[:1]))
}

// RephraseRationale asks the model to phrase a coach recommendation more
// naturally. Only public facts go into the prompt: the mask, the letter,
// and the remaining-candidate count, never the secret. Returns "" when
// offline or on failure; callers keep their local sentence.
func (s *Service) RephraseRationale(ctx context.Context, mask, letter string, remaining int) string {
	if !s.enabled() {
		return ""
	}
	text, err := s.client.Complete(ctx, CompletionRequest{
		User: fmt.Sprintf(
			"You are coaching a Hangman player. "+
				"The current mask is %q and there are about %d possible words left. "+
				"Recommend guessing the letter '%s' and give ONE short sentence explaining why. "+
				"Do not reveal any letters beyond the recommendation and do not include the secret word.",
			mask, remaining, strings.ToUpper(letter)),
		Temperature: 0.7,
		MaxTokens:   60,
	})
	if err != nil {
		log.Warn().Err(err).Msg("llm: rationale rephrase failed")
		return ""
	}
	return text
}

// ReviewParams carries everything the post-game review needs.
type ReviewParams struct {
	Secret     string
	Won        bool
	Mistakes   int
	Difficulty string
	History    []game.Move
}

// Review produces a short post-game write-up. Offline or on failure it
// returns the deterministic local review built from the move history.
func (s *Service) Review(ctx context.Context, p ReviewParams) string {
	if !s.enabled() {
		return localReview(p)
	}

	outcome := "lost"
	if p.Won {
		outcome = "won"
	}
	text, err := s.client.Complete(ctx, CompletionRequest{
		System: "You are a concise strategy coach for Hangman. Provide clear, actionable feedback.",
		User: fmt.Sprintf(
			"Game outcome: %s\n"+
				"Difficulty: %s\n"+
				"Secret word: %s\n"+
				"Mistakes: %d\n"+
				"Final mask: %s\n"+
				"History (each line = step):\n%s\n\n"+
				"Write a post-game review in ~3 short paragraphs:\n"+
				"1) Key turning points that helped or hurt progress (why)\n"+
				"2) Missed opportunities or alternative moves (what to try earlier)\n"+
				"3) Concrete next-game tips (letter-choice strategy, when to attempt a full-word guess)\n"+
				"Keep it under 140 words total. Avoid bullet lists; use compact prose.",
			outcome, p.Difficulty, p.Secret, p.Mistakes, finalMask(p), formatHistory(p.History)),
		Temperature: 0.4,
		MaxTokens:   300,
	})
	if err != nil {
		log.Warn().Err(err).Msg("llm: review failed")
		return localReview(p)
	}
	if text == "" {
		return localReview(p)
	}
	return capWords(text, maxReviewWords)
}

// localReview is the deterministic three-bullet review.
func localReview(p ReviewParams) string {
	hits, wrongs := 0, 0
	for _, m := range p.History {
		if m.Hit {
			hits++
		} else {
			wrongs++
		}
	}

	verdict := fmt.Sprintf("You lost: the word was '%s'.", p.Secret)
	if p.Won {
		verdict = "You won! Nice pattern narrowing."
	}
	target := p.Mistakes - 1
	if target < 1 {
		target = 1
	}
	return fmt.Sprintf(
		"Outcome: %s\n"+
			"- What went well: you made %d correct %s and kept the mask evolving to %q.\n"+
			"- What to improve: you had %d wrong %s; consider trying high-frequency letters earlier.\n"+
			"- Next time: on %s difficulty, aim to keep mistakes below %d by prioritizing vowels and common consonants.",
		verdict,
		hits, plural(hits, "guess", "guesses"), finalMask(p),
		wrongs, plural(wrongs, "guess", "guesses"),
		p.Difficulty, target)
}

// formatHistory compresses a move list into one compact line per step,
// e.g. "1) L:e+ -> _ p p _ e | wrong=0".
func formatHistory(history []game.Move) string {
	lines := make([]string, 0, len(history))
	for i, m := range history {
		kind := "W"
		if m.Kind == game.MoveLetter {
			kind = "L"
		}
		mark := "x"
		if m.Hit {
			mark = "+"
		}
		lines = append(lines, fmt.Sprintf("%d) %s:%s%s -> %s | wrong=%d",
			i+1, kind, m.Guess, mark, m.Mask, m.WrongCount))
	}
	return strings.Join(lines, "\n")
}

// finalMask is the last recorded mask, or the fully hidden mask for a
// round with no moves.
func finalMask(p ReviewParams) string {
	if n := len(p.History); n > 0 {
		return p.History[n-1].Mask
	}
	return game.Mask(p.Secret, nil)
}

// capWords trims text to at most n whitespace-separated words.
func capWords(text string, n int) string {
	fields := strings.Fields(text)
	if len(fields) <= n {
		return text
	}
	return strings.Join(fields[:n], " ")
}

// containsWord reports whether text mentions word, case-insensitively.
func containsWord(text, word string) bool {
	return strings.Contains(strings.ToLower(text), strings.ToLower(word))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
