package atoms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corpustools/mekano/errors"
)

func TestTranslate(t *testing.T) {
	old := New("old")
	insert(t, old, "apples")  // 1
	insert(t, old, "oranges") // 2

	nf := New("new")
	insert(t, nf, "oranges") // 1

	// Known object maps to the target's numbering.
	a, err := Translate(old, nf, 2)
	require.NoError(t, err)
	assert.Equal(t, Atom(1), a)

	// Unseen object is admitted when the target is unlocked.
	a, err = Translate(old, nf, 1)
	require.NoError(t, err)
	assert.Equal(t, Atom(2), a)
}

func TestTranslateLockedTarget(t *testing.T) {
	old := New("old")
	insert(t, old, "apples")

	nf := New("new")
	nf.Lock()

	_, err := Translate(old, nf, 1)
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestTranslateBadAtom(t *testing.T) {
	old := New("old")
	nf := New("new")

	_, err := Translate(old, nf, 7)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrAtomRange))
}

func TestTranslateVectorDropsUnmappableEntries(t *testing.T) {
	old := New("old")
	insert(t, old, "apples")  // 1
	insert(t, old, "oranges") // 2
	insert(t, old, "pears")   // 3

	nf := New("new")
	insert(t, nf, "pears")  // 1
	insert(t, nf, "apples") // 2
	nf.Lock()

	v := Vector{1: 0.5, 2: 1.5, 3: 2.5}
	out, err := TranslateVector(old, nf, v)
	require.NoError(t, err)

	// "oranges" is absent from the locked target and its entry is dropped.
	assert.Equal(t, Vector{2: 0.5, 1: 2.5}, out)
}

func TestTranslateVectorSurfacesRangeErrors(t *testing.T) {
	old := New("old")
	nf := New("new")

	_, err := TranslateVector(old, nf, Vector{9: 1.0})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrAtomRange))
}
