package assets

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordlist(t *testing.T) {
	for _, name := range []string{"easy.txt", "medium.txt", "hard.txt"} {
		ws, err := Wordlist(name)
		require.NoError(t, err, name)
		require.NotEmpty(t, ws, name)
		for _, w := range ws {
			assert.NotContains(t, w, "#", "comments must be skipped")
			assert.Equal(t, strings.ToLower(w), w, name)
		}
	}
}

func TestWordlist_UnknownFile(t *testing.T) {
	_, err := Wordlist("extreme.txt")
	assert.Error(t, err)
}
