// Package db provides the embedded sqlite store backing the Likhlo core.
package db

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
	_ "modernc.org/sqlite"

	apperr "github.com/likhlo/likhlo/internal/errors"
)

// DB wraps sql.DB with Likhlo-specific configuration.
type DB struct {
	*sql.DB
}

// Open opens (creating if needed) the sqlite database file under dataDir
// and brings its schema up to date. The connection is configured with:
// - WAL mode for concurrent reads during writes
// - a busy timeout instead of immediate SQLITE_BUSY failures
// - a single writer connection (sqlite has no concurrent writers)
func Open(dataDir, filename string) (*DB, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, apperr.Wrap(apperr.ErrStorageUnavailable, "failed to create data directory", err)
	}

	dbPath := filepath.Join(dataDir, filename)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrStorageUnavailable, "failed to open database", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return nil, apperr.Wrap(apperr.ErrStorageUnavailable, "failed to enable WAL mode", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout=5000;"); err != nil {
		db.Close()
		return nil, apperr.Wrap(apperr.ErrStorageUnavailable, "failed to set busy timeout", err)
	}

	if err := NewMigrator(db).Up(); err != nil {
		db.Close()
		return nil, apperr.Wrap(apperr.ErrMigrationFailed, "schema migration failed", err)
	}

	return &DB{db}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.DB.Close()
}

// Lazy hands out the process-wide store handle, opening the database on
// first use. Concurrent first callers share a single open attempt (and a
// single schema upgrade); they all receive the same handle or the same
// error. A failed attempt is not cached — the next caller tries again, and
// keeps failing until the underlying storage recovers.
type Lazy struct {
	open   func() (*DB, error)
	flight singleflight.Group
	db     atomic.Pointer[DB]
}

// NewLazy creates a lazy handle around an open function. The composition
// root owns the Lazy and passes it to whatever needs the store.
func NewLazy(open func() (*DB, error)) *Lazy {
	return &Lazy{open: open}
}

// Get returns the shared handle, opening the database if needed.
func (l *Lazy) Get() (*DB, error) {
	if db := l.db.Load(); db != nil {
		return db, nil
	}
	v, err, _ := l.flight.Do("open", func() (interface{}, error) {
		// re-check: an earlier flight may have won while we queued
		if db := l.db.Load(); db != nil {
			return db, nil
		}
		db, err := l.open()
		if err != nil {
			return nil, err
		}
		l.db.Store(db)
		return db, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*DB), nil
}

// Close closes the handle if it was ever opened.
func (l *Lazy) Close() error {
	if db := l.db.Swap(nil); db != nil {
		return db.Close()
	}
	return nil
}

// Opened reports whether the handle has been established.
func (l *Lazy) Opened() bool {
	return l.db.Load() != nil
}
