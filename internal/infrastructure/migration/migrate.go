package migration

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
)

// Migrator applies versioned SQL migrations to the market schema
// using golang-migrate with a file source.
type Migrator struct {
	m   *migrate.Migrate
	log *zap.Logger
}

// New wraps an open database connection in a Migrator reading
// migration pairs from dir
func New(db *sql.DB, dir string, log *zap.Logger) (*Migrator, error) {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("postgres migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", dir), "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("migrate instance: %w", err)
	}

	return &Migrator{m: m, log: log}, nil
}

// Up applies every pending migration
func (mg *Migrator) Up() error {
	mg.log.Info("Applying pending migrations")

	err := mg.m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		mg.log.Info("Schema already up to date")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}

	mg.logVersion("Migrations applied")
	return nil
}

// Down rolls the schema all the way back
func (mg *Migrator) Down() error {
	mg.log.Info("Rolling back all migrations")

	err := mg.m.Down()
	if errors.Is(err, migrate.ErrNoChange) {
		mg.log.Info("Nothing to roll back")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migrate down: %w", err)
	}

	mg.log.Info("All migrations rolled back")
	return nil
}

// Steps applies n migrations forward, or backward when n is negative
func (mg *Migrator) Steps(n int) error {
	mg.log.Info("Stepping migrations", zap.Int("steps", n))

	err := mg.m.Steps(n)
	if errors.Is(err, migrate.ErrNoChange) {
		mg.log.Info("Schema already up to date")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migrate steps: %w", err)
	}

	mg.logVersion("Migration steps applied")
	return nil
}

// GoTo migrates the schema to an exact version, in either direction
func (mg *Migrator) GoTo(version uint) error {
	mg.log.Info("Migrating to version", zap.Uint("target_version", version))

	err := mg.m.Migrate(version)
	if errors.Is(err, migrate.ErrNoChange) {
		mg.log.Info("Already at target version")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migrate to version %d: %w", version, err)
	}

	mg.log.Info("Migration completed", zap.Uint("version", version))
	return nil
}

// Version reports the current schema version and whether the last
// migration left the schema dirty. A never-migrated schema reports
// version 0.
func (mg *Migrator) Version() (uint, bool, error) {
	version, dirty, err := mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("read schema version: %w", err)
	}
	return version, dirty, nil
}

// Force stamps the schema with a version without running any SQL.
// Only useful for recovering a dirty schema.
func (mg *Migrator) Force(version int) error {
	mg.log.Warn("Forcing schema version", zap.Int("version", version))

	if err := mg.m.Force(version); err != nil {
		return fmt.Errorf("force version %d: %w", version, err)
	}

	mg.log.Info("Schema version forced", zap.Int("version", version))
	return nil
}

// Drop removes every table in the schema, data included
func (mg *Migrator) Drop() error {
	mg.log.Warn("Dropping schema, all market data will be lost")

	if err := mg.m.Drop(); err != nil {
		return fmt.Errorf("drop schema: %w", err)
	}

	mg.log.Info("Schema dropped")
	return nil
}

// Close releases the source and database handles held by the migrator
func (mg *Migrator) Close() error {
	sourceErr, dbErr := mg.m.Close()
	if sourceErr != nil {
		return fmt.Errorf("close migration source: %w", sourceErr)
	}
	if dbErr != nil {
		return fmt.Errorf("close migration database handle: %w", dbErr)
	}
	return nil
}

func (mg *Migrator) logVersion(msg string) {
	version, dirty, err := mg.m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		mg.log.Warn("Could not read schema version after migration", zap.Error(err))
		return
	}
	mg.log.Info(msg, zap.Uint("version", version), zap.Bool("dirty", dirty))
}
