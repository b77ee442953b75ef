// Package store provides read-only access to the local MySQL datasets: the
// time_zone transition table, the toponyms proximity table, the cities table
// used for locality search and the country name lookup.
//
// The package follows the service's best-effort doctrine: query failures are
// logged and surfaced as absences (nil rows, empty slices) rather than
// errors, so the orchestrators can proceed to their remote fall-backs. The
// only operation that returns an error is opening the pool itself.
package store

import (
	"time"

	"github.com/charmbracelet/log"
	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/megatih/GeoTimeZone/internal/config"
)

// Store wraps the shared connection pool. It is safe for concurrent use;
// database/sql serialises access to pooled connections.
type Store struct {
	db  *sqlx.DB
	log *log.Logger
}

// New opens the connection pool for the configured database. The pool is
// lazy: a down database surfaces later as empty query results, not here.
func New(cfg *config.Config) (*Store, error) {
	db, err := sqlx.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(16)
	db.SetMaxIdleConns(4)
	db.SetConnMaxLifetime(5 * time.Minute)
	return &Store{db: db, log: cfg.Logger}, nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}
