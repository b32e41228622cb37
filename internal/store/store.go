// Package store provides the SQLite-backed session store for the Phototree
// photo collection. The database is opened in memory: the collection lives
// for exactly one session and nothing survives a restart.
package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Store represents the in-memory SQLite database holding the session's
// photos.
type Store struct {
	db *sql.DB
}

// New creates a new in-memory Store and runs migrations.
func New() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// An in-memory database exists per connection; pin the pool to one.
	db.SetMaxOpenConns(1)

	s := &Store{
		db: db,
	}

	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection, discarding the session collection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying database connection.
func (s *Store) DB() *sql.DB {
	return s.db
}
