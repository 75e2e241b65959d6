// filepath: internal/repository/schema.go
package repository

import (
	"database/sql"
	"fmt"

	"petsapp/internal/db/migrations"
	"petsapp/internal/logging"
	"petsapp/internal/models"
	"petsapp/internal/shared"

	"github.com/pressly/goose/v3"
)

const gooseVersionTable = "goose_db_version"

// setupGoose points goose at the embedded migrations. The migrations directory
// is embedded, so "." is the root of the FS.
func setupGoose() error {
	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(logging.Log)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}
	return nil
}

// EnsureSchemaBootstrapped runs all migrations on a fresh database file.
// A file that already carries goose bookkeeping is left alone, so the
// creation statement runs exactly once per file.
func (s *Repository) EnsureSchemaBootstrapped() error {
	var name string
	err := s.DB.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", gooseVersionTable).Scan(&name)
	if err == nil {
		logging.Log.Debugf("Schema bookkeeping found in %s, skipping bootstrap.", s.Path)
		return nil
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("failed to inspect schema: %w", err)
	}

	logging.Log.Infof("Fresh database at %s, creating schema version %d.", s.Path, models.DatabaseVersion)
	return s.MigrateUp()
}

// ValidateSchema checks that the database is exactly at the schema version this
// build understands.
func (s *Repository) ValidateSchema() error {
	version, err := s.SchemaVersion()
	if err != nil {
		return err
	}
	if version < models.DatabaseVersion {
		return fmt.Errorf("%w: at version %d, need %d (run 'petsapp migrate up')", shared.ErrSchemaOutdated, version, models.DatabaseVersion)
	}
	if version > models.DatabaseVersion {
		return fmt.Errorf("database schema version %d is newer than supported version %d", version, models.DatabaseVersion)
	}
	return nil
}

// SchemaVersion returns the current goose version of the database.
func (s *Repository) SchemaVersion() (int64, error) {
	if err := setupGoose(); err != nil {
		return 0, err
	}
	version, err := goose.GetDBVersion(s.DB)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

// MigrateUp migrates the database to the most recent version.
func (s *Repository) MigrateUp() error {
	if err := setupGoose(); err != nil {
		return err
	}
	if err := goose.Up(s.DB, "."); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	s.invalidateAll()
	return nil
}

// MigrateDown rolls the database back by one version.
func (s *Repository) MigrateDown() error {
	if err := setupGoose(); err != nil {
		return err
	}
	if err := goose.Down(s.DB, "."); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	s.invalidateAll()
	return nil
}

// MigrationStatus logs the applied state of every migration.
func (s *Repository) MigrationStatus() error {
	if err := setupGoose(); err != nil {
		return err
	}
	if err := goose.Status(s.DB, "."); err != nil {
		return fmt.Errorf("migration status failed: %w", err)
	}
	return nil
}
