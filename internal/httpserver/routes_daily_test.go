// internal/httpserver/routes_daily_test.go

package httpserver

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexigame/hangman/internal/daily"
	"github.com/lexigame/hangman/internal/words"
)

// todaysWord mirrors the server's deterministic selection so tests can
// win the daily round on purpose.
func todaysWord(salt string) (string, string) {
	now := time.Now().UTC()
	idx := daily.WordIndex(now, salt, words.Count(words.Medium))
	return daily.DateKey(now), words.ByIndex(words.Medium, idx)
}

func TestDaily_PlayOncePerDay(t *testing.T) {
	ts, c, _ := newTestServer(t)
	date, word := todaysWord("test_salt")

	// First /daily/new creates a session.
	var created map[string]any
	require.Equal(t, http.StatusOK, doJSON(t, c, http.MethodPost, ts.URL+"/daily/new", nil, &created))
	require.Equal(t, false, created["played"])
	assert.Equal(t, date, created["date"])
	roundID, _ := created["roundId"].(string)
	require.NotEmpty(t, roundID)
	assert.Equal(t, strings.Repeat("_ ", len(word)-1)+"_", created["mask"])
	assert.EqualValues(t, 6, created["maxWrong"])

	// Calling /daily/new again reuses the same session.
	var again map[string]any
	require.Equal(t, http.StatusOK, doJSON(t, c, http.MethodPost, ts.URL+"/daily/new", nil, &again))
	assert.Equal(t, roundID, again["roundId"])
	assert.Equal(t, false, again["played"])

	// Win with a whole-word guess.
	var gr map[string]any
	require.Equal(t, http.StatusOK, doJSON(t, c, http.MethodPost, ts.URL+"/daily/guess",
		map[string]string{"roundId": roundID, "guess": word}, &gr))
	assert.Equal(t, "won", gr["status"])
	assert.Equal(t, word, gr["secret"])
	assert.EqualValues(t, 0, gr["wrongCount"])

	// Further guesses are locked.
	require.Equal(t, http.StatusOK, doJSON(t, c, http.MethodPost, ts.URL+"/daily/guess",
		map[string]string{"roundId": roundID, "guess": "z"}, &gr))
	assert.Equal(t, true, gr["locked"])
	assert.Equal(t, "won", gr["status"])

	// A new /daily/new reports the day as already played.
	var replay map[string]any
	require.Equal(t, http.StatusOK, doJSON(t, c, http.MethodPost, ts.URL+"/daily/new", nil, &replay))
	assert.Equal(t, true, replay["played"])
	assert.Empty(t, replay["roundId"])

	// The result shows up on today's leaderboard.
	var lb struct {
		Date string `json:"date"`
		Top  []struct {
			Won        bool `json:"won"`
			WrongCount int  `json:"wrongCount"`
		} `json:"top"`
	}
	require.Equal(t, http.StatusOK, doJSON(t, c, http.MethodGet, ts.URL+"/daily/leaderboard", nil, &lb))
	assert.Equal(t, date, lb.Date)
	require.Len(t, lb.Top, 1)
	assert.True(t, lb.Top[0].Won)
	assert.Equal(t, 0, lb.Top[0].WrongCount)
}

func TestDaily_LetterGuessesAccumulate(t *testing.T) {
	ts, c, _ := newTestServer(t)
	_, word := todaysWord("test_salt")

	var created map[string]any
	require.Equal(t, http.StatusOK, doJSON(t, c, http.MethodPost, ts.URL+"/daily/new", nil, &created))
	roundID, _ := created["roundId"].(string)
	require.NotEmpty(t, roundID)

	// A correct first letter reveals it without a strike.
	first := string(word[0])
	var gr map[string]any
	require.Equal(t, http.StatusOK, doJSON(t, c, http.MethodPost, ts.URL+"/daily/guess",
		map[string]string{"roundId": roundID, "guess": first}, &gr))
	assert.Equal(t, "playing", gr["status"])
	assert.EqualValues(t, 0, gr["wrongCount"])
	mask, _ := gr["mask"].(string)
	assert.Contains(t, mask, first)

	// A wrong whole-word guess costs a strike but stays unlocked.
	require.Equal(t, http.StatusOK, doJSON(t, c, http.MethodPost, ts.URL+"/daily/guess",
		map[string]string{"roundId": roundID, "guess": "notaword"}, &gr))
	assert.Equal(t, "playing", gr["status"])
	assert.EqualValues(t, 1, gr["wrongCount"])
	assert.Nil(t, gr["locked"])
}

func TestDaily_GuessWithoutSession(t *testing.T) {
	ts, c, _ := newTestServer(t)

	assert.Equal(t, http.StatusConflict, doJSON(t, c, http.MethodPost, ts.URL+"/daily/guess",
		map[string]string{"roundId": "ghost", "guess": "a"}, nil))
	assert.Equal(t, http.StatusBadRequest, doJSON(t, c, http.MethodPost, ts.URL+"/daily/guess",
		map[string]string{"roundId": "", "guess": "a"}, nil))
}

func TestDaily_LeaderboardForDate(t *testing.T) {
	ts, c, _ := newTestServer(t)

	var lb map[string]any
	require.Equal(t, http.StatusOK, doJSON(t, c, http.MethodGet, ts.URL+"/daily/leaderboard?date=2020-01-01", nil, &lb))
	assert.Equal(t, "2020-01-01", lb["date"])
	top, _ := lb["top"].([]any)
	assert.Empty(t, top)
}
