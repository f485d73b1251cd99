package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelWrapping(t *testing.T) {
	err := Wrap(ErrNotFound, "object \"apples\" missing from locked factory")
	require.Error(t, err)

	assert.True(t, Is(err, ErrNotFound))
	assert.False(t, Is(err, ErrLocked))
	assert.Contains(t, err.Error(), "apples")
}

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error", nil, false},
		{"sentinel itself", ErrNotFound, true},
		{"wrapped sentinel", Wrap(ErrNotFound, "context"), true},
		{"doubly wrapped", Wrap(Wrap(ErrNotFound, "inner"), "outer"), true},
		{"unrelated error", New("boom"), false},
		{"other sentinel", ErrAtomRange, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNotFoundError(tt.err))
		})
	}
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("atom %d has no object", 42)
	require.Error(t, err)
	assert.True(t, Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "atom 42")
}
