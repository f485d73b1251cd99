package atoms

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextRoundTrip(t *testing.T) {
	f := New("vocab")
	insert(t, f, "the")
	insert(t, f, "quick")
	insert(t, f, "brown fox")

	var buf strings.Builder
	require.NoError(t, f.WriteText(&buf))
	assert.Equal(t, "the\nquick\nbrown fox\n", buf.String())

	got, err := ReadText(strings.NewReader(buf.String()), "vocab")
	require.NoError(t, err)
	assert.Equal(t, f.Objects(), got.Objects())

	// Line number = atom.
	a, ok := got.Lookup("quick")
	assert.True(t, ok)
	assert.Equal(t, Atom(2), a)
}

func TestWriteTextRejectsNewlines(t *testing.T) {
	f := New("vocab")
	insert(t, f, "two\nlines")

	var buf strings.Builder
	assert.Error(t, f.WriteText(&buf))
}

func TestReadTextRejectsDuplicates(t *testing.T) {
	_, err := ReadText(strings.NewReader("a\nb\na\n"), "vocab")
	assert.Error(t, err)
}

func TestSaveLoadTextFile(t *testing.T) {
	f := New("vocab")
	insert(t, f, "alpha")
	insert(t, f, "beta")

	path := filepath.Join(t.TempDir(), "vocab.txt")
	require.NoError(t, f.SaveText(path))

	got, err := LoadText(path, "vocab")
	require.NoError(t, err)
	assert.Equal(t, f.Objects(), got.Objects())
	assert.Equal(t, "vocab", got.Name())
}

func TestGobRoundTrip(t *testing.T) {
	f := New("tokens")
	insert(t, f, "apples")
	insert(t, f, "oranges")
	f.Lock()

	path := filepath.Join(t.TempDir(), "tokens.factory")
	require.NoError(t, f.Save(path))

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "tokens", got.Name())
	assert.True(t, got.Locked())
	assert.Equal(t, f.Objects(), got.Objects())

	// The rebuilt forward map agrees with the object list.
	for a := Atom(1); int(a) <= got.Len(); a++ {
		obj, err := got.Object(a)
		require.NoError(t, err)
		back, ok := got.Lookup(obj)
		require.True(t, ok)
		assert.Equal(t, a, back)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.factory"))
	assert.Error(t, err)
}
