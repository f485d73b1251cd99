package storage

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corpustools/mekano/atoms"
	"github.com/corpustools/mekano/errors"
	"github.com/corpustools/mekano/storage/testutil"
)

func buildFactory(t *testing.T, name string, objs ...string) *atoms.Factory {
	t.Helper()
	f := atoms.New(name)
	for _, obj := range objs {
		_, err := f.LookupOrInsert(obj)
		require.NoError(t, err)
	}
	return f
}

func TestSaveLoadFactory(t *testing.T) {
	database := testutil.SetupTestDB(t)
	defer database.Close()
	store := NewVocabStore(database, nil)

	f := buildFactory(t, "tokens", "apples", "oranges", "pears")
	f.Lock()
	require.NoError(t, store.SaveFactory(f))

	got, err := store.LoadFactory("tokens")
	require.NoError(t, err)

	assert.Equal(t, f.Objects(), got.Objects())
	assert.True(t, got.Locked())

	// Atom numbering survives the round trip.
	a, ok := got.Lookup("oranges")
	assert.True(t, ok)
	assert.Equal(t, atoms.Atom(2), a)
}

func TestSaveFactoryReplacesExisting(t *testing.T) {
	database := testutil.SetupTestDB(t)
	defer database.Close()
	store := NewVocabStore(database, nil)

	require.NoError(t, store.SaveFactory(buildFactory(t, "tokens", "old", "stale")))
	require.NoError(t, store.SaveFactory(buildFactory(t, "tokens", "fresh")))

	got, err := store.LoadFactory("tokens")
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh"}, got.Objects())
	assert.False(t, got.Locked())
}

func TestLoadFactoryNotFound(t *testing.T) {
	database := testutil.SetupTestDB(t)
	defer database.Close()
	store := NewVocabStore(database, nil)

	_, err := store.LoadFactory("missing")
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestListFactories(t *testing.T) {
	database := testutil.SetupTestDB(t)
	defer database.Close()
	store := NewVocabStore(database, nil)

	locked := buildFactory(t, "docids", "D1", "D2")
	locked.Lock()
	require.NoError(t, store.SaveFactory(locked))
	require.NoError(t, store.SaveFactory(buildFactory(t, "tokens", "a", "b", "c")))

	infos, err := store.ListFactories()
	require.NoError(t, err)
	require.Len(t, infos, 2)

	assert.Equal(t, FactoryInfo{Name: "docids", Locked: true, Atoms: 2}, infos[0])
	assert.Equal(t, FactoryInfo{Name: "tokens", Locked: false, Atoms: 3}, infos[1])
}

func TestDeleteFactory(t *testing.T) {
	database := testutil.SetupTestDB(t)
	defer database.Close()
	store := NewVocabStore(database, nil)

	require.NoError(t, store.SaveFactory(buildFactory(t, "tokens", "a")))
	require.NoError(t, store.DeleteFactory("tokens"))

	_, err := store.LoadFactory("tokens")
	assert.True(t, errors.IsNotFoundError(err))

	// Deleting again is not an error.
	assert.NoError(t, store.DeleteFactory("tokens"))
}

func TestSaveFactoryMissingSchema(t *testing.T) {
	database := testutil.SetupEmptyDB(t)
	defer database.Close()
	store := NewVocabStore(database, nil)

	err := store.SaveFactory(buildFactory(t, "tokens", "a"))
	assert.Error(t, err)
}

func TestSaveFactoryBeginError(t *testing.T) {
	database, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer database.Close()

	mock.ExpectBegin().WillReturnError(errors.New("disk I/O error"))

	store := NewVocabStore(database, nil)
	err = store.SaveFactory(buildFactory(t, "tokens", "a"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "begin save")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadFactoryQueryError(t *testing.T) {
	database, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer database.Close()

	mock.ExpectQuery("SELECT locked FROM factories").
		WillReturnError(errors.New("no such table: factories"))

	store := NewVocabStore(database, nil)
	_, err = store.LoadFactory("tokens")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load factory tokens")
	assert.NoError(t, mock.ExpectationsWereMet())
}
