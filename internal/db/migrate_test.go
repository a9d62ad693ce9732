package db

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

func openRaw(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigratorUpFreshDatabase(t *testing.T) {
	db := openRaw(t)
	m := NewMigrator(db)

	if err := m.Up(); err != nil {
		t.Fatalf("Up() error = %v", err)
	}

	version, err := m.CurrentVersion()
	if err != nil {
		t.Fatalf("CurrentVersion() error = %v", err)
	}
	if want := migrations[len(migrations)-1].Version; version != want {
		t.Errorf("schema version = %d, want %d", version, want)
	}

	for _, table := range []string{"notes", "folders", "settings"} {
		var name string
		err := db.QueryRow(
			`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %q missing after migration: %v", table, err)
		}
	}
}

func TestMigratorUpIdempotent(t *testing.T) {
	db := openRaw(t)
	m := NewMigrator(db)

	if err := m.Up(); err != nil {
		t.Fatalf("first Up() error = %v", err)
	}
	if err := m.Up(); err != nil {
		t.Fatalf("second Up() error = %v", err)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&count); err != nil {
		t.Fatalf("count error = %v", err)
	}
	if count != len(migrations) {
		t.Errorf("recorded migrations = %d, want %d", count, len(migrations))
	}
}

func TestMigratorRecordsChecksum(t *testing.T) {
	db := openRaw(t)
	if err := NewMigrator(db).Up(); err != nil {
		t.Fatalf("Up() error = %v", err)
	}

	var checksum, description string
	err := db.QueryRow(
		`SELECT checksum, description FROM schema_migrations WHERE version = 1`,
	).Scan(&checksum, &description)
	if err != nil {
		t.Fatalf("select error = %v", err)
	}
	if len(checksum) != 64 {
		t.Errorf("checksum length = %d, want 64", len(checksum))
	}
	if description != "initial_schema" {
		t.Errorf("description = %q, want %q", description, "initial_schema")
	}
}

func TestCurrentVersionEmpty(t *testing.T) {
	db := openRaw(t)
	m := NewMigrator(db)
	if err := m.Initialize(); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	version, err := m.CurrentVersion()
	if err != nil {
		t.Fatalf("CurrentVersion() error = %v", err)
	}
	if version != 0 {
		t.Errorf("version = %d, want 0", version)
	}
}
