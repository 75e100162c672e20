package words

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// None of these tests call Init: package state stays untouched, so the
// uninitialized fallbacks remain observable and load() is exercised
// directly against temp directories.

func writeList(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

// TestLoad_FromDirWithFallback verifies the per-file fallback chain: a
// provided file wins, a missing file falls back to the embedded default.
func TestLoad_FromDirWithFallback(t *testing.T) {
	dir := t.TempDir()
	writeList(t, dir, "easy.txt", "# custom\ncat\nDOG\n\nfish\n")

	got, err := load(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"cat", "dog", "fish"}, got[Easy])
	assert.NotEmpty(t, got[Medium], "missing medium.txt should fall back to embedded list")
	assert.Contains(t, got[Medium], "python")
	assert.NotEmpty(t, got[Hard])
}

// TestLoad_EmbeddedDefaults verifies an empty dir setting uses the
// embedded lists for every difficulty.
func TestLoad_EmbeddedDefaults(t *testing.T) {
	got, err := load("")
	require.NoError(t, err)

	for _, d := range difficulties {
		require.NotEmpty(t, got[d], "difficulty %s", d)
		for _, w := range got[d] {
			assert.True(t, isAlpha(w), "word %q in %s", w, d)
		}
	}
}

// TestLoad_BadDir verifies a configured directory that cannot be read is
// a startup error rather than a silent fallback.
func TestLoad_BadDir(t *testing.T) {
	_, err := load(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "lists")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	_, err = load(file)
	assert.Error(t, err)
}

// TestReadWordFile verifies line filtering: comments, blanks, and
// non-alphabetic entries are dropped, the rest lowercased.
func TestReadWordFile(t *testing.T) {
	dir := t.TempDir()
	writeList(t, dir, "w.txt", "# header\nAPPLE\n\n  pear  \ntwo words\nnum3er\nplum\n")

	got, err := readWordFile(filepath.Join(dir, "w.txt"))
	require.NoError(t, err)
	assert.Equal(t, []string{"apple", "pear", "plum"}, got)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, Easy, Normalize("easy"))
	assert.Equal(t, Easy, Normalize(" EASY "))
	assert.Equal(t, Hard, Normalize("hard"))
	assert.Equal(t, Medium, Normalize("medium"))
	assert.Equal(t, Medium, Normalize(""))
	assert.Equal(t, Medium, Normalize("extreme"))
}

// TestUninitializedFallbacks verifies every lookup works before Init by
// serving the built-in list.
func TestUninitializedFallbacks(t *testing.T) {
	got := Load("medium")
	assert.Equal(t, builtin, got)

	got[0] = "mutated"
	assert.Equal(t, builtin[0], Load("medium")[0], "Load must hand out copies")

	assert.Contains(t, builtin, Pick("hard"))
	assert.Equal(t, builtin[2], ByIndex("medium", 5), "index wraps around the list")
	assert.Equal(t, builtin[0], ByIndex("medium", -4), "negative index clamps to 0")
	assert.Equal(t, len(builtin), Count("easy"))
	assert.Equal(t, map[string]int{Easy: 3, Medium: 3, Hard: 3}, Stats())
}
