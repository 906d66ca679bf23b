package statedb

import (
	"github.com/BurntSushi/migration"
	"github.com/cyclopcam/dbh"
	"github.com/cyclopcam/logs"
)

func Migrations(log logs.Log) []migration.Migrator {
	migs := []migration.Migrator{}
	idx := 0

	migs = append(migs, dbh.MakeMigrationFromSQL(log, &idx,
		`
		CREATE TABLE variable(
			key TEXT PRIMARY KEY,
			value TEXT
		);

		CREATE TABLE save_record(
			id INTEGER PRIMARY KEY,
			created_at INT NOT NULL,
			session TEXT NOT NULL,
			original_name TEXT NOT NULL,
			unique_name TEXT NOT NULL,
			image_file TEXT,
			labels_file TEXT,
			annotation_count INT NOT NULL
		);
		CREATE INDEX idx_save_record_session ON save_record (session);
	`))

	return migs
}
