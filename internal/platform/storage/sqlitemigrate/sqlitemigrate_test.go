package sqlitemigrate

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func TestApplyRecordsApplied(t *testing.T) {
	db := openInMemoryDB(t)
	migrations := fstest.MapFS{
		"001_species.sql": &fstest.MapFile{
			Data: []byte("-- +migrate Up\nCREATE TABLE species(id INTEGER PRIMARY KEY);\n-- +migrate Down\nDROP TABLE species;"),
		},
	}

	applied, err := Apply(context.Background(), db, migrations, "")
	if err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	if len(applied) != 1 || applied[0] != "001_species.sql" {
		t.Fatalf("applied = %v", applied)
	}
	if got := queryInt64(t, db, "SELECT COUNT(*) FROM schema_migrations"); got != 1 {
		t.Fatalf("expected 1 migration row, got %d", got)
	}
	if !tableExists(t, db, "species") {
		t.Fatal("expected applied table to exist")
	}
}

func TestApplySkipsAlreadyApplied(t *testing.T) {
	db := openInMemoryDB(t)
	first := fstest.MapFS{
		"001_species.sql": &fstest.MapFile{Data: []byte("CREATE TABLE species(id INTEGER PRIMARY KEY);")},
	}
	if _, err := Apply(context.Background(), db, first, "."); err != nil {
		t.Fatalf("apply first: %v", err)
	}

	second := fstest.MapFS{
		"001_species.sql": &fstest.MapFile{Data: []byte("CREATE TABLE species(id INTEGER PRIMARY KEY);")},
		"002_moves.sql":   &fstest.MapFile{Data: []byte("CREATE TABLE moves(id INTEGER PRIMARY KEY);")},
	}
	applied, err := Apply(context.Background(), db, second, ".")
	if err != nil {
		t.Fatalf("apply second: %v", err)
	}
	if len(applied) != 1 || applied[0] != "002_moves.sql" {
		t.Fatalf("applied = %v, want only 002_moves.sql", applied)
	}
}

func TestApplyDoesNotRecordFailedMigration(t *testing.T) {
	db := openInMemoryDB(t)
	migrations := fstest.MapFS{
		"001_bad.sql": &fstest.MapFile{Data: []byte("CREATE TABLE broken(")},
	}
	if _, err := Apply(context.Background(), db, migrations, ""); err == nil {
		t.Fatal("expected migration error")
	}
	if got := queryInt64(t, db, "SELECT COUNT(*) FROM schema_migrations"); got != 0 {
		t.Fatalf("expected no recorded migrations, got %d", got)
	}
}

func TestApplyRespectsRoot(t *testing.T) {
	db := openInMemoryDB(t)
	migrations := fstest.MapFS{
		"seed/001_items.sql": &fstest.MapFile{Data: []byte("CREATE TABLE items(id INTEGER PRIMARY KEY);")},
	}
	if _, err := Apply(context.Background(), db, migrations, "seed"); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got := queryString(t, db, "SELECT name FROM schema_migrations"); got != "seed/001_items.sql" {
		t.Fatalf("recorded name = %q", got)
	}
	if !tableExists(t, db, "items") {
		t.Fatal("expected items table")
	}
}

func TestApplyTreatsExistingTableAsApplied(t *testing.T) {
	db := openInMemoryDB(t)
	if _, err := db.Exec("CREATE TABLE moves(id INTEGER PRIMARY KEY)"); err != nil {
		t.Fatalf("create: %v", err)
	}
	migrations := fstest.MapFS{
		"001_moves.sql": &fstest.MapFile{Data: []byte("CREATE TABLE moves(id INTEGER PRIMARY KEY);")},
	}
	if _, err := Apply(context.Background(), db, migrations, ""); err != nil {
		t.Fatalf("apply: %v", err)
	}
}

func TestUpSection(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no markers", "SELECT 1;", "SELECT 1;"},
		{"up only", "-- +migrate Up\nSELECT 1;", "\nSELECT 1;"},
		{"up and down", "-- +migrate Up\nSELECT 1;\n-- +migrate Down\nSELECT 2;", "\nSELECT 1;\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UpSection(tt.in); got != tt.want {
				t.Fatalf("UpSection = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestApplyRequiresDB(t *testing.T) {
	if _, err := Apply(context.Background(), nil, fstest.MapFS{}, ""); err == nil {
		t.Fatal("expected error for nil db")
	}
}

func openInMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Fatalf("close db: %v", err)
		}
	})
	return db
}

func queryInt64(t *testing.T, db *sql.DB, query string) int64 {
	t.Helper()
	var value int64
	if err := db.QueryRow(query).Scan(&value); err != nil {
		t.Fatalf("query int value: %v", err)
	}
	return value
}

func queryString(t *testing.T, db *sql.DB, query string) string {
	t.Helper()
	var value string
	if err := db.QueryRow(query).Scan(&value); err != nil {
		t.Fatalf("query string value: %v", err)
	}
	return value
}

func tableExists(t *testing.T, db *sql.DB, tableName string) bool {
	t.Helper()
	var name string
	err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name = ?", tableName).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return false
	}
	if err != nil {
		t.Fatalf("check table exists: %v", err)
	}
	return name == tableName
}
