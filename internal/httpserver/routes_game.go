// internal/httpserver/routes_game.go
//
// Free-play game endpoints.
// Responsibilities:
//   - POST /game/new    — start a round (local, generated, or custom word).
//   - POST /game/guess  — apply a letter or whole-word guess to a round.
//   - POST /game/hint   — one-sentence clue that never reveals the word.
//   - POST /game/coach  — letter suggestion from candidate analysis.
//   - POST /game/review — post-game strategy feedback (finished rounds only).
//
// Notes:
//   - Rounds live in the in-memory round store; the games table only keeps
//     a durable summary for history and stats.
//   - DB writes are best-effort: a failed insert/update logs a warning but
//     never fails the request.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/lexigame/hangman/internal/coach"
	"github.com/lexigame/hangman/internal/game"
	"github.com/lexigame/hangman/internal/llm"
	"github.com/lexigame/hangman/internal/store"
	"github.com/lexigame/hangman/internal/words"
)

// mountGame registers the free-play endpoints on r.
func (s *Server) mountGame(r chi.Router) {
	r.Post("/game/new", s.handleNewRound)
	r.Post("/game/guess", s.handleGuess)
	r.Post("/game/hint", s.handleHint)
	r.Post("/game/coach", s.handleCoach)
	r.Post("/game/review", s.handleReview)
}

type newRoundReq struct {
	Difficulty string `json:"difficulty"`
	MaxWrong   int    `json:"maxWrong"`
	Word       string `json:"word"` // optional: play a specific word
}

// roundRes is the wire shape of a round. Secret is included only once
// the round is finished.
type roundRes struct {
	RoundID    string      `json:"roundId"`
	Difficulty string      `json:"difficulty"`
	WordSource string      `json:"wordSource,omitempty"`
	Mask       string      `json:"mask"`
	Guessed    []string    `json:"guessed"`
	WrongCount int         `json:"wrongCount"`
	MaxWrong   int         `json:"maxWrong"`
	Status     game.Status `json:"status"`
	Secret     string      `json:"secret,omitempty"`
}

func roundView(rd *store.Round) roundRes {
	res := roundRes{
		RoundID:    rd.ID,
		Difficulty: rd.Difficulty,
		WordSource: rd.WordSource,
		Mask:       rd.State.Mask(),
		Guessed:    rd.State.Guessed(),
		WrongCount: rd.State.WrongCount(),
		MaxWrong:   rd.State.MaxWrong(),
		Status:     rd.State.Status(),
	}
	if rd.State.Finished() {
		res.Secret = rd.State.Secret()
	}
	return res
}

func (s *Server) handleNewRound(w http.ResponseWriter, r *http.Request) {
	var body newRoundReq
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&body) // empty body means all defaults
	}

	difficulty := words.Normalize(body.Difficulty)
	maxWrong := body.MaxWrong
	if maxWrong == 0 {
		maxWrong = s.cfg.DefaultMaxWrong
	}
	if maxWrong < 1 {
		http.Error(w, `{"error":"invalid_max_wrong"}`, http.StatusBadRequest)
		return
	}

	// Word source precedence: explicit custom word, then generation, then local list.
	source := "local"
	pick := func(d string) string { return words.Pick(d) }
	if custom := strings.ToLower(strings.TrimSpace(body.Word)); custom != "" {
		ok := true
		for i := 0; i < len(custom); i++ {
			if custom[i] < 'a' || custom[i] > 'z' {
				ok = false
				break
			}
		}
		if !ok {
			http.Error(w, `{"error":"invalid_word"}`, http.StatusBadRequest)
			return
		}
		source = "custom"
		pick = func(string) string { return custom }
	} else if generated := s.ai.PickWord(r.Context(), difficulty); generated != "" {
		source = "llm"
		pick = func(string) string { return generated }
	}

	st, err := game.New(difficulty, pick, maxWrong)
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}

	owner, me := s.ownerID(w, r)
	rd := store.NewRound(owner, difficulty, source, st)
	if err := s.rounds.Save(r.Context(), rd); err != nil {
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}

	// Durable summary row (best-effort).
	now := time.Now().UTC().Format(time.RFC3339)
	var execErr error
	if me != nil {
		_, execErr = s.db.Exec(`INSERT INTO games (id, user_id, difficulty, word_source, status, wrong_count, max_wrong, guesses, started_at)
		                        VALUES (?,?,?,?,?,?,?,?,?)`,
			rd.ID, me.ID, difficulty, source, string(st.Status()), st.WrongCount(), maxWrong, 0, now)
	} else {
		_, execErr = s.db.Exec(`INSERT INTO games (id, anonymous_id, difficulty, word_source, status, wrong_count, max_wrong, guesses, started_at)
		                        VALUES (?,?,?,?,?,?,?,?,?)`,
			rd.ID, owner, difficulty, source, string(st.Status()), st.WrongCount(), maxWrong, 0, now)
	}
	if execErr != nil {
		log.Warn().Err(execErr).Str("round", rd.ID).Msg("insert game row")
	}

	_ = json.NewEncoder(w).Encode(roundView(rd))
}

type guessReq struct {
	RoundID string `json:"roundId"`
	Guess   string `json:"guess"`
}

type guessRes struct {
	roundRes
	Applied bool `json:"applied"`
	Hit     bool `json:"hit"`
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var body guessReq
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	if body.RoundID == "" || strings.TrimSpace(body.Guess) == "" {
		http.Error(w, `{"error":"roundId and guess are required"}`, http.StatusBadRequest)
		return
	}

	rd, err := s.rounds.Get(r.Context(), body.RoundID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
			return
		}
		http.Error(w, `{"error":"load_failed"}`, http.StatusInternalServerError)
		return
	}

	prev := rd.State
	normalized := strings.ToLower(strings.TrimSpace(body.Guess))
	var next game.GameState
	if len(normalized) == 1 {
		next = prev.GuessLetter(normalized)
	} else {
		next = prev.GuessWord(normalized)
	}

	applied := next.Status() != prev.Status() ||
		next.WrongCount() != prev.WrongCount() ||
		len(next.Guessed()) != len(prev.Guessed())

	hit := false
	if applied {
		if len(normalized) == 1 {
			hit = next.WrongCount() == prev.WrongCount()
		} else {
			hit = next.Status() == game.StatusWon
		}
		kind := game.MoveWord
		if len(normalized) == 1 {
			kind = game.MoveLetter
		}
		rd.History = append(rd.History, game.Move{
			Kind:       kind,
			Guess:      normalized,
			Hit:        hit,
			Mask:       next.Mask(),
			WrongCount: next.WrongCount(),
		})
	}

	rd.State = next
	if err := s.rounds.Save(r.Context(), rd); err != nil {
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}

	if applied {
		s.persistGuess(r, rd, prev, next)
	}

	_ = json.NewEncoder(w).Encode(guessRes{roundRes: roundView(rd), Applied: applied, Hit: hit})
}

// persistGuess updates the games summary row and, when the round just
// finished, folds the result into user stats. All best-effort.
func (s *Server) persistGuess(r *http.Request, rd *store.Round, prev, next game.GameState) {
	me, _ := r.Context().Value(ctxUserKey{}).(*authUser)

	tx, err := s.db.Begin()
	if err != nil {
		log.Warn().Err(err).Str("round", rd.ID).Msg("begin guess tx")
		return
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
			log.Warn().Err(err).Str("round", rd.ID).Msg("persist guess")
			return
		}
		if err := tx.Commit(); err != nil {
			log.Warn().Err(err).Str("round", rd.ID).Msg("commit guess tx")
		}
	}()

	ownerClause := `anonymous_id=?`
	ownerArg := rd.UserID
	if me != nil {
		ownerClause = `user_id=?`
		ownerArg = me.ID
	}

	_, err = tx.Exec(`UPDATE games SET guesses=guesses+1, wrong_count=? WHERE id=? AND `+ownerClause,
		next.WrongCount(), rd.ID, ownerArg)
	if err != nil {
		return
	}

	justFinished := prev.Status() == game.StatusPlaying && next.Finished()
	if !justFinished {
		return
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = tx.Exec(`UPDATE games SET status=?, wrong_count=?, finished_at=? WHERE id=? AND `+ownerClause,
		string(next.Status()), next.WrongCount(), now, rd.ID, ownerArg)
	if err != nil {
		return
	}
	if me != nil {
		err = s.bumpStats(tx, me.ID, next.Status() == game.StatusWon, next.WrongCount())
	}
}

type roundRef struct {
	RoundID string `json:"roundId"`
}

func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	var body roundRef
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.RoundID == "" {
		http.Error(w, `{"error":"roundId is required"}`, http.StatusBadRequest)
		return
	}
	rd, err := s.rounds.Get(r.Context(), body.RoundID)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	if rd.State.Finished() {
		http.Error(w, `{"error":"round_finished"}`, http.StatusConflict)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]string{"hint": s.ai.Hint(r.Context(), rd.State.Secret())})
}

func (s *Server) handleCoach(w http.ResponseWriter, r *http.Request) {
	var body roundRef
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.RoundID == "" {
		http.Error(w, `{"error":"roundId is required"}`, http.StatusBadRequest)
		return
	}
	rd, err := s.rounds.Get(r.Context(), body.RoundID)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	if rd.State.Finished() {
		http.Error(w, `{"error":"round_finished"}`, http.StatusConflict)
		return
	}

	pool := words.Load(rd.Difficulty)
	sug := coach.Suggest(rd.State.Secret(), rd.State.Guessed(), pool)
	if text := s.ai.RephraseRationale(r.Context(), rd.State.Mask(), sug.Letter, sug.Candidates); text != "" {
		sug.Rationale = text
		sug.Source = coach.SourceLLM
	}
	_ = json.NewEncoder(w).Encode(sug)
}

func (s *Server) handleReview(w http.ResponseWriter, r *http.Request) {
	var body roundRef
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.RoundID == "" {
		http.Error(w, `{"error":"roundId is required"}`, http.StatusBadRequest)
		return
	}
	rd, err := s.rounds.Get(r.Context(), body.RoundID)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	if !rd.State.Finished() {
		http.Error(w, `{"error":"round_not_finished"}`, http.StatusConflict)
		return
	}

	text := s.ai.Review(r.Context(), llm.ReviewParams{
		Secret:     rd.State.Secret(),
		Won:        rd.State.Status() == game.StatusWon,
		Mistakes:   rd.State.WrongCount(),
		Difficulty: rd.Difficulty,
		History:    rd.History,
	})
	_ = json.NewEncoder(w).Encode(map[string]any{
		"review":     text,
		"secret":     rd.State.Secret(),
		"status":     rd.State.Status(),
		"wrongCount": rd.State.WrongCount(),
	})
}
