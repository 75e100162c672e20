// internal/httpserver/server_test.go
//
// End-to-end handler tests running against a real router, a temp SQLite
// database created from the real migration file, an in-memory round store,
// and the offline text service.

package httpserver

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexigame/hangman/internal/config"
	"github.com/lexigame/hangman/internal/llm"
	"github.com/lexigame/hangman/internal/store"
)

// newTestServer spins up the full router with a fresh database.
// The returned client carries a cookie jar so auth and anon cookies stick.
func newTestServer(t *testing.T) (*httptest.Server, *http.Client, *sql.DB) {
	t.Helper()

	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	schema, err := os.ReadFile(filepath.Join("..", "..", "sql", "001_init.sql"))
	require.NoError(t, err)
	_, err = db.Exec(string(schema))
	require.NoError(t, err)

	cfg := config.Config{
		Port:            "0",
		LogLevel:        "error",
		AppEnv:          "test",
		ClientOrigin:    "http://localhost:5173",
		JWTSecret:       "test_secret",
		JWTExpiresDays:  1,
		CookieName:      "hangman_token",
		DailySalt:       "test_salt",
		DefaultMaxWrong: 6,
		OfflineMode:     true,
	}

	srv := New(store.NewMemoryStore(), db, llm.New(nil), cfg)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return ts, &http.Client{Jar: jar}, db
}

// doJSON performs a request with an optional JSON body and decodes the
// response into out (when non-nil). Returns the HTTP status code.
func doJSON(t *testing.T, c *http.Client, method, url string, body, out any) int {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, url, rd)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	res, err := c.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	if out != nil {
		_ = json.NewDecoder(res.Body).Decode(out)
	}
	return res.StatusCode
}

func TestHealthAndBanner(t *testing.T) {
	ts, c, _ := newTestServer(t)

	var health map[string]bool
	require.Equal(t, http.StatusOK, doJSON(t, c, http.MethodGet, ts.URL+"/health", nil, &health))
	assert.True(t, health["ok"])

	var banner map[string]any
	require.Equal(t, http.StatusOK, doJSON(t, c, http.MethodGet, ts.URL+"/", nil, &banner))
	assert.Equal(t, "hangman-api", banner["service"])
}

func TestNotFoundIsJSON(t *testing.T) {
	ts, c, _ := newTestServer(t)

	var out map[string]string
	require.Equal(t, http.StatusNotFound, doJSON(t, c, http.MethodGet, ts.URL+"/nope", nil, &out))
	assert.Equal(t, "not_found", out["error"])
	assert.Equal(t, "/nope", out["path"])
}

func TestSignupLoginFlow(t *testing.T) {
	ts, c, _ := newTestServer(t)

	var created map[string]any
	status := doJSON(t, c, http.MethodPost, ts.URL+"/auth/signup",
		map[string]string{"username": "alice", "password": "password123"}, &created)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "alice", created["username"])
	assert.NotEmpty(t, created["id"])

	// Cookie from signup authenticates /auth/me.
	var me map[string]string
	require.Equal(t, http.StatusOK, doJSON(t, c, http.MethodGet, ts.URL+"/auth/me", nil, &me))
	assert.Equal(t, "alice", me["username"])

	// Logout clears the cookie; /auth/me is gated again.
	require.Equal(t, http.StatusOK, doJSON(t, c, http.MethodPost, ts.URL+"/auth/logout", nil, nil))
	assert.Equal(t, http.StatusUnauthorized, doJSON(t, c, http.MethodGet, ts.URL+"/auth/me", nil, nil))

	// Wrong password is rejected.
	assert.Equal(t, http.StatusUnauthorized, doJSON(t, c, http.MethodPost, ts.URL+"/auth/login",
		map[string]string{"username": "alice", "password": "wrong-password"}, nil))

	// Correct login works again.
	var logged map[string]any
	require.Equal(t, http.StatusOK, doJSON(t, c, http.MethodPost, ts.URL+"/auth/login",
		map[string]string{"username": "alice", "password": "password123"}, &logged))
	assert.Equal(t, "alice", logged["username"])
	require.Equal(t, http.StatusOK, doJSON(t, c, http.MethodGet, ts.URL+"/auth/me", nil, &me))
	assert.Equal(t, "alice", me["username"])
}

func TestSignupValidation(t *testing.T) {
	ts, c, _ := newTestServer(t)

	// Too-short username.
	assert.Equal(t, http.StatusBadRequest, doJSON(t, c, http.MethodPost, ts.URL+"/auth/signup",
		map[string]string{"username": "ab", "password": "password123"}, nil))

	// Too-short password.
	assert.Equal(t, http.StatusBadRequest, doJSON(t, c, http.MethodPost, ts.URL+"/auth/signup",
		map[string]string{"username": "charlie", "password": "short"}, nil))

	// Duplicate username (case-insensitive) conflicts.
	require.Equal(t, http.StatusOK, doJSON(t, c, http.MethodPost, ts.URL+"/auth/signup",
		map[string]string{"username": "bob", "password": "password123"}, nil))
	var dup map[string]string
	assert.Equal(t, http.StatusConflict, doJSON(t, c, http.MethodPost, ts.URL+"/auth/signup",
		map[string]string{"username": "BOB", "password": "password123"}, &dup))
	assert.Equal(t, "Username taken", dup["error"])
}

func TestStatsTrackFinishedGames(t *testing.T) {
	ts, c, _ := newTestServer(t)

	require.Equal(t, http.StatusOK, doJSON(t, c, http.MethodPost, ts.URL+"/auth/signup",
		map[string]string{"username": "dana", "password": "password123"}, nil))

	var stats map[string]any
	require.Equal(t, http.StatusOK, doJSON(t, c, http.MethodGet, ts.URL+"/stats/me", nil, &stats))
	assert.EqualValues(t, 0, stats["gamesPlayed"])

	// Win one round with a single whole-word guess.
	var rd map[string]any
	require.Equal(t, http.StatusOK, doJSON(t, c, http.MethodPost, ts.URL+"/game/new",
		map[string]any{"word": "apple"}, &rd))
	var gr map[string]any
	require.Equal(t, http.StatusOK, doJSON(t, c, http.MethodPost, ts.URL+"/game/guess",
		map[string]string{"roundId": rd["roundId"].(string), "guess": "apple"}, &gr))
	require.Equal(t, "won", gr["status"])

	require.Equal(t, http.StatusOK, doJSON(t, c, http.MethodGet, ts.URL+"/stats/me", nil, &stats))
	assert.EqualValues(t, 1, stats["gamesPlayed"])
	assert.EqualValues(t, 1, stats["wins"])
	assert.EqualValues(t, 0, stats["losses"])
	assert.EqualValues(t, 1, stats["streak"])
	assert.EqualValues(t, 100, stats["winRate"])
	assert.EqualValues(t, 0, stats["avgMistakes"])

	// Lose one round: six wrong whole-word guesses.
	require.Equal(t, http.StatusOK, doJSON(t, c, http.MethodPost, ts.URL+"/game/new",
		map[string]any{"word": "apple"}, &rd))
	wrongWords := []string{"tiger", "mango", "zebra", "quilt", "brick", "frost"}
	for _, wguess := range wrongWords {
		require.Equal(t, http.StatusOK, doJSON(t, c, http.MethodPost, ts.URL+"/game/guess",
			map[string]string{"roundId": rd["roundId"].(string), "guess": wguess}, &gr))
	}
	require.Equal(t, "lost", gr["status"])
	assert.Equal(t, "apple", gr["secret"])

	require.Equal(t, http.StatusOK, doJSON(t, c, http.MethodGet, ts.URL+"/stats/me", nil, &stats))
	assert.EqualValues(t, 2, stats["gamesPlayed"])
	assert.EqualValues(t, 1, stats["wins"])
	assert.EqualValues(t, 1, stats["losses"])
	assert.EqualValues(t, 0, stats["streak"])
	assert.EqualValues(t, 50, stats["winRate"])
	assert.EqualValues(t, 3, stats["avgMistakes"])

	// History shows both rounds, newest first fields present.
	var mine []map[string]any
	require.Equal(t, http.StatusOK, doJSON(t, c, http.MethodGet, ts.URL+"/games/mine", nil, &mine))
	require.Len(t, mine, 2)
	for _, row := range mine {
		assert.Equal(t, "custom", row["wordSource"])
		assert.NotEmpty(t, row["startedAt"])
	}
}

func TestSignupClaimsAnonGames(t *testing.T) {
	ts, c, db := newTestServer(t)

	// Play (and finish) a round as a guest.
	var rd map[string]any
	require.Equal(t, http.StatusOK, doJSON(t, c, http.MethodPost, ts.URL+"/game/new",
		map[string]any{"word": "apple"}, &rd))
	require.Equal(t, http.StatusOK, doJSON(t, c, http.MethodPost, ts.URL+"/game/guess",
		map[string]string{"roundId": rd["roundId"].(string), "guess": "apple"}, nil))

	var anonOwned int
	require.NoError(t, db.QueryRow(`SELECT COUNT(1) FROM games WHERE anonymous_id IS NOT NULL`).Scan(&anonOwned))
	require.Equal(t, 1, anonOwned)

	// Signup with the same cookie jar transfers the round.
	var created map[string]any
	require.Equal(t, http.StatusOK, doJSON(t, c, http.MethodPost, ts.URL+"/auth/signup",
		map[string]string{"username": "erin", "password": "password123"}, &created))

	var owned int
	require.NoError(t, db.QueryRow(`SELECT COUNT(1) FROM games WHERE user_id=?`, created["id"]).Scan(&owned))
	assert.Equal(t, 1, owned)
	require.NoError(t, db.QueryRow(`SELECT COUNT(1) FROM games WHERE anonymous_id IS NOT NULL`).Scan(&anonOwned))
	assert.Equal(t, 0, anonOwned)
}
