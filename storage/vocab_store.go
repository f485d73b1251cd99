// Package storage provides SQLite-backed persistence for atom factories.
// A factory is stored as one row in the factories table plus one row per
// atom, so the vocabulary can be inspected and joined with SQL.
package storage

import (
	"database/sql"

	"go.uber.org/zap"

	"github.com/corpustools/mekano/atoms"
	"github.com/corpustools/mekano/errors"
)

// Query constants
const (
	factoryUpsertQuery = `
		INSERT INTO factories (name, locked) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET locked = excluded.locked`

	factoryDeleteAtomsQuery = `
		DELETE FROM atoms WHERE factory = ?`

	atomInsertQuery = `
		INSERT INTO atoms (factory, atom, object) VALUES (?, ?, ?)`

	factorySelectQuery = `
		SELECT locked FROM factories WHERE name = ?`

	atomSelectQuery = `
		SELECT object FROM atoms WHERE factory = ? ORDER BY atom ASC`

	factoryListQuery = `
		SELECT f.name, f.locked, COUNT(a.atom)
		FROM factories f LEFT JOIN atoms a ON a.factory = f.name
		GROUP BY f.name ORDER BY f.name`

	factoryDeleteQuery = `
		DELETE FROM factories WHERE name = ?`
)

// FactoryInfo summarizes one persisted factory.
type FactoryInfo struct {
	Name   string
	Locked bool
	Atoms  int
}

// VocabStore persists atom factories in a SQLite database whose schema was
// created by db.Migrate.
type VocabStore struct {
	db     *sql.DB
	logger *zap.SugaredLogger
}

// NewVocabStore creates a vocabulary store over an open database.
// If logger is nil the store operates silently.
func NewVocabStore(db *sql.DB, logger *zap.SugaredLogger) *VocabStore {
	return &VocabStore{
		db:     db,
		logger: logger,
	}
}

// SaveFactory writes the factory under its name, replacing any previously
// stored factory of the same name. Atom numbering and lock state survive the
// round trip.
func (s *VocabStore) SaveFactory(f *atoms.Factory) error {
	tx, err := s.db.Begin()
	if err != nil {
		return errors.Wrap(err, "begin save")
	}

	locked := 0
	if f.Locked() {
		locked = 1
	}
	if _, err := tx.Exec(factoryUpsertQuery, f.Name(), locked); err != nil {
		tx.Rollback()
		return errors.Wrapf(err, "upsert factory %s", f.Name())
	}
	if _, err := tx.Exec(factoryDeleteAtomsQuery, f.Name()); err != nil {
		tx.Rollback()
		return errors.Wrapf(err, "clear atoms of %s", f.Name())
	}

	stmt, err := tx.Prepare(atomInsertQuery)
	if err != nil {
		tx.Rollback()
		return errors.Wrap(err, "prepare atom insert")
	}
	defer stmt.Close()

	for i, obj := range f.Objects() {
		if _, err := stmt.Exec(f.Name(), i+1, obj); err != nil {
			tx.Rollback()
			return errors.Wrapf(err, "insert atom %d of %s", i+1, f.Name())
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrapf(err, "commit save of %s", f.Name())
	}

	if s.logger != nil {
		s.logger.Infow("Factory saved",
			"factory", f.Name(),
			"atoms", f.Len(),
			"locked", f.Locked(),
		)
	}
	return nil
}

// LoadFactory reconstructs the factory stored under name. A missing factory
// fails with errors.ErrNotFound.
func (s *VocabStore) LoadFactory(name string) (*atoms.Factory, error) {
	var locked int
	err := s.db.QueryRow(factorySelectQuery, name).Scan(&locked)
	if err == sql.ErrNoRows {
		return nil, errors.Wrapf(errors.ErrNotFound, "factory %s", name)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "load factory %s", name)
	}

	rows, err := s.db.Query(atomSelectQuery, name)
	if err != nil {
		return nil, errors.Wrapf(err, "load atoms of %s", name)
	}
	defer rows.Close()

	f := atoms.New(name)
	for rows.Next() {
		var obj string
		if err := rows.Scan(&obj); err != nil {
			return nil, errors.Wrapf(err, "scan atom of %s", name)
		}
		if _, err := f.LookupOrInsert(obj); err != nil {
			return nil, errors.Wrapf(err, "rebuild factory %s", name)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "iterate atoms of %s", name)
	}

	if locked != 0 {
		f.Lock()
	}
	return f, nil
}

// ListFactories returns a summary of every stored factory, ordered by name.
func (s *VocabStore) ListFactories() ([]FactoryInfo, error) {
	rows, err := s.db.Query(factoryListQuery)
	if err != nil {
		return nil, errors.Wrap(err, "list factories")
	}
	defer rows.Close()

	var infos []FactoryInfo
	for rows.Next() {
		var info FactoryInfo
		var locked int
		if err := rows.Scan(&info.Name, &locked, &info.Atoms); err != nil {
			return nil, errors.Wrap(err, "scan factory row")
		}
		info.Locked = locked != 0
		infos = append(infos, info)
	}
	return infos, errors.Wrap(rows.Err(), "iterate factories")
}

// DeleteFactory removes the factory and its atoms. Deleting a factory that
// does not exist is not an error.
func (s *VocabStore) DeleteFactory(name string) error {
	if _, err := s.db.Exec(factoryDeleteQuery, name); err != nil {
		return errors.Wrapf(err, "delete factory %s", name)
	}
	if s.logger != nil {
		s.logger.Infow("Factory deleted", "factory", name)
	}
	return nil
}
