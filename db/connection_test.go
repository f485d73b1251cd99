package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAndMigrate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	database, err := Open(path, nil)
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, Migrate(database, nil))

	// Migrations are idempotent.
	require.NoError(t, Migrate(database, nil))

	// The vocabulary tables exist.
	var n int
	err = database.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('factories', 'atoms')",
	).Scan(&n)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestOpenInvalidPath(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing", "nested", "test.db"), nil)
	assert.Error(t, err)
}
