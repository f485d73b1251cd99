package commands

import (
	"database/sql"

	"github.com/corpustools/mekano/config"
	"github.com/corpustools/mekano/db"
	"github.com/corpustools/mekano/logger"
)

// openDatabase opens the vocabulary database and ensures its schema is
// current. pathOverride, when non-empty, wins over the configured path.
func openDatabase(pathOverride string) (*sql.DB, error) {
	path := pathOverride
	if path == "" {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		path = cfg.Database.Path
	}

	database, err := db.Open(path, logger.Logger)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(database, logger.Logger); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}
