// Package store is the gateway between the remote relational schema and
// the domain entities: it owns every field-name and enum-value remapping
// and the read/write calls that carry them. Remote errors are wrapped and
// returned as-is; retry and fail-soft policies live in the entity caches,
// not here.
package store

import (
	"fmt"
	"time"

	"wholesale-dashboard/internal/i18n"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

type Store struct {
	db   *sqlx.DB
	lang i18n.Language
}

// NewStore creates a new database store
func NewStore(databaseURL string, lang i18n.Language) (*Store, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: db, lang: lang}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// GetDB returns the underlying database connection
func (s *Store) GetDB() *sqlx.DB {
	return s.db
}
