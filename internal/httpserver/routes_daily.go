// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Challenge" mode.
// Exposes three endpoints under /daily:
//   - POST /daily/new         → start today's daily round (creates or reuses session)
//   - POST /daily/guess       → submit a letter or word for today's round
//   - GET  /daily/leaderboard → fetch top 20 results for today (or a given date)
//
// Each user can play once per day (enforced by DB + in-memory session).
// Sessions are held in memory for active play and persisted to DB when the
// round ends, win or lose. Deterministic word selection is based on
// date + salt; everyone plays the same word on a given day.

package httpserver

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lexigame/hangman/internal/daily"
	"github.com/lexigame/hangman/internal/game"
	"github.com/lexigame/hangman/internal/words"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv      *Server
	store    *daily.Store
	salt     string
	sessions map[string]*dailySession // active sessions keyed by userID|date
	mu       sync.Mutex               // guards sessions
}

// dailySession holds transient in-memory state for an in-progress daily round.
type dailySession struct {
	RoundID   string
	UserID    string
	Date      string
	WordIndex int
	State     game.GameState
	Start     time.Time
	Finished  bool
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{
		srv:      s,
		store:    daily.NewStore(s.db),
		salt:     s.cfg.DailySalt,
		sessions: make(map[string]*dailySession),
	}
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Post("/guess", dd.handleGuess)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

// dateKeyNow returns today's date key, deterministic word index, and word.
// Daily words always come from the medium list.
func (d *dailyServer) dateKeyNow() (date string, idx int, word string) {
	now := time.Now().UTC()
	date = daily.DateKey(now)
	n := words.Count(words.Medium)
	if n == 0 {
		return date, 0, ""
	}
	idx = daily.WordIndex(now, d.salt, n)
	return date, idx, words.ByIndex(words.Medium, idx)
}

// userIDWithAnon returns the authenticated user ID if logged in,
// otherwise ensures an anonymous ID via Server.ensureAnonID.
func (d *dailyServer) userIDWithAnon(w http.ResponseWriter, r *http.Request) (string, bool) {
	if me, _ := r.Context().Value(ctxUserKey{}).(*authUser); me != nil {
		return me.ID, true
	}
	return d.srv.ensureAnonID(w, r), true
}

// -----------------------------------------------------------------------------
// /daily/new

// dailyNewRes is returned by /daily/new.
type dailyNewRes struct {
	RoundID    string      `json:"roundId"`
	Date       string      `json:"date"`
	Played     bool        `json:"played"`
	Mask       string      `json:"mask,omitempty"`
	WrongCount int         `json:"wrongCount"`
	MaxWrong   int         `json:"maxWrong"`
	Status     game.Status `json:"status,omitempty"`
}

// handleNew creates or reuses a daily session for the current date.
// - If user already has a DB row for today → return Played=true.
// - Otherwise create/reuse an in-memory session and return RoundID + mask.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	uid, ok := d.userIDWithAnon(w, r)
	if !ok {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return
	}
	date, idx, word := d.dateKeyNow()
	if word == "" {
		http.Error(w, `{"error":"no_words"}`, http.StatusInternalServerError)
		return
	}

	// Check if already played (persisted in DB).
	if played, err := d.store.AlreadyPlayed(r.Context(), uid, date); err == nil && played {
		_ = json.NewEncoder(w).Encode(dailyNewRes{RoundID: "", Date: date, Played: true})
		return
	}

	// Reuse or create session in memory.
	key := uid + "|" + date
	d.mu.Lock()
	if sess, ok := d.sessions[key]; ok {
		d.mu.Unlock()
		_ = json.NewEncoder(w).Encode(dailyNewRes{
			RoundID:    sess.RoundID,
			Date:       date,
			Played:     false,
			Mask:       sess.State.Mask(),
			WrongCount: sess.State.WrongCount(),
			MaxWrong:   sess.State.MaxWrong(),
			Status:     sess.State.Status(),
		})
		return
	}
	st, err := game.New(words.Medium, func(string) string { return word }, d.srv.cfg.DefaultMaxWrong)
	if err != nil {
		d.mu.Unlock()
		http.Error(w, `{"error":"new_round_failed"}`, http.StatusInternalServerError)
		return
	}
	sess := &dailySession{
		RoundID:   genID(),
		UserID:    uid,
		Date:      date,
		WordIndex: idx,
		State:     st,
		Start:     time.Now(),
	}
	d.sessions[key] = sess
	d.mu.Unlock()

	_ = json.NewEncoder(w).Encode(dailyNewRes{
		RoundID:    sess.RoundID,
		Date:       date,
		Played:     false,
		Mask:       st.Mask(),
		WrongCount: st.WrongCount(),
		MaxWrong:   st.MaxWrong(),
		Status:     st.Status(),
	})
}

// -----------------------------------------------------------------------------
// /daily/guess

// dailyGuessReq is the request payload for /daily/guess.
type dailyGuessReq struct {
	RoundID string `json:"roundId"`
	Guess   string `json:"guess"`
}

// dailyGuessRes is the response payload for /daily/guess.
type dailyGuessRes struct {
	Mask       string      `json:"mask"`
	Guessed    []string    `json:"guessed"`
	WrongCount int         `json:"wrongCount"`
	MaxWrong   int         `json:"maxWrong"`
	Status     game.Status `json:"status"` // playing | won | lost
	Locked     bool        `json:"locked,omitempty"`
	Secret     string      `json:"secret,omitempty"`
}

// handleGuess validates and applies a guess for today's daily session.
// - Ensures valid RoundID and guess.
// - Rejects if no session; answers "locked" if the session already finished.
// - Applies letter or whole-word guess to the round state.
// - Persists result to DB when the round reaches a terminal state.
func (d *dailyServer) handleGuess(w http.ResponseWriter, r *http.Request) {
	uid, ok := d.userIDWithAnon(w, r)
	if !ok {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return
	}

	var p dailyGuessReq
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	p.Guess = strings.ToLower(strings.TrimSpace(p.Guess))
	if p.RoundID == "" || p.Guess == "" {
		http.Error(w, `{"error":"roundId and guess are required"}`, http.StatusBadRequest)
		return
	}

	date, _, _ := d.dateKeyNow()

	// Find session.
	key := uid + "|" + date
	d.mu.Lock()
	sess, ok := d.sessions[key]
	if !ok || sess.RoundID != p.RoundID {
		d.mu.Unlock()
		http.Error(w, `{"error":"no_session"}`, http.StatusConflict)
		return
	}
	if sess.Finished {
		res := dailyGuessRes{
			Mask:       sess.State.Mask(),
			Guessed:    sess.State.Guessed(),
			WrongCount: sess.State.WrongCount(),
			MaxWrong:   sess.State.MaxWrong(),
			Status:     sess.State.Status(),
			Locked:     true,
			Secret:     sess.State.Secret(),
		}
		d.mu.Unlock()
		_ = json.NewEncoder(w).Encode(res)
		return
	}

	// Apply guess.
	if len(p.Guess) == 1 {
		sess.State = sess.State.GuessLetter(p.Guess)
	} else {
		sess.State = sess.State.GuessWord(p.Guess)
	}
	finished := sess.State.Finished()
	if finished {
		sess.Finished = true
	}
	res := dailyGuessRes{
		Mask:       sess.State.Mask(),
		Guessed:    sess.State.Guessed(),
		WrongCount: sess.State.WrongCount(),
		MaxWrong:   sess.State.MaxWrong(),
		Status:     sess.State.Status(),
	}
	if finished {
		res.Secret = sess.State.Secret()
	}
	d.mu.Unlock()

	// Persist terminal results, win or lose, so replays are blocked.
	if finished {
		elapsed := int(time.Since(sess.Start).Milliseconds())
		_ = d.store.InsertResult(r.Context(), daily.Result{
			UserID:     uid,
			Date:       date,
			WordIndex:  sess.WordIndex,
			Won:        res.Status == game.StatusWon,
			WrongCount: res.WrongCount,
			ElapsedMs:  elapsed,
		})
	}
	_ = json.NewEncoder(w).Encode(res)
}

// -----------------------------------------------------------------------------
// /daily/leaderboard

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date, _, _ = d.dateKeyNow()
	}
	rows, err := d.store.Leaderboard(r.Context(), date, 20)
	if err != nil {
		http.Error(w, `{"error":"server_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(lbRes{Date: date, Top: rows})
}
