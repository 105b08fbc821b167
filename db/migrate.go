// Package db applies the test-fixture schema in db/migrations against a
// Postgres connection, grounded on gallery-so-go-gallery's db/migrate.go use
// of golang-migrate. Production deployments own and migrate this schema
// themselves; this package exists only so the repository-layer integration
// tests have a database to run against.
package db

import (
	"database/sql"
	"errors"

	"github.com/golang-migrate/migrate/v4"
	pgdriver "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunMigrations applies every pending migration under dir (a plain directory
// path; the "file://" scheme is prepended here) to db, returning the *migrate.Migrate handle so callers
// can close it during test cleanup.
func RunMigrations(db *sql.DB, dir string) (*migrate.Migrate, error) {
	driver, err := pgdriver.WithInstance(db, &pgdriver.Config{})
	if err != nil {
		return nil, err
	}
	m, err := migrate.NewWithDatabaseInstance("file://"+dir, "postgres", driver)
	if err != nil {
		return nil, err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return nil, err
	}
	return m, nil
}
