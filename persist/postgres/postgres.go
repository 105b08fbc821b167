// Package postgres implements the repository access layer against a
// relational Postgres database using database/sql with the pgx driver,
// grounded on gallery-so-go-gallery's service/persist/postgres connection
// and prepared-statement conventions.
package postgres

import (
	"database/sql"
	"fmt"

	// register pgx as a database/sql driver
	_ "github.com/jackc/pgx/v4/stdlib"
)

// ConnectionParams are the bootstrap connection settings read from the
// POSTGRES_* environment variables.
type ConnectionParams struct {
	User     string
	Password string
	DBName   string
	Host     string
	Port     int
}

func (c ConnectionParams) connectionString() string {
	port := c.Port
	if port == 0 {
		port = 5432
	}
	connStr := fmt.Sprintf("user=%s dbname=%s host=%s port=%d", c.User, c.DBName, c.Host, port)
	if c.Password != "" {
		connStr += fmt.Sprintf(" password=%s", c.Password)
	}
	return connStr
}

// Connect opens a database/sql handle against the pgx driver using the given
// connection parameters.
func Connect(params ConnectionParams) (*sql.DB, error) {
	db, err := sql.Open("pgx", params.connectionString())
	if err != nil {
		return nil, fmt.Errorf("opening postgres connection: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	return db, nil
}
