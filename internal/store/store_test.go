package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mjovanc/njord/internal/dberr"
)

const testSchema = `
CREATE TABLE users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT NOT NULL,
	email TEXT NOT NULL,
	address TEXT NOT NULL
);
CREATE TABLE products (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL REFERENCES users(id),
	name TEXT NOT NULL,
	description TEXT,
	price REAL NOT NULL,
	stock_quantity INTEGER NOT NULL,
	discount REAL NOT NULL DEFAULT 0
);
CREATE TABLE categories (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL
);
`

// createTestStore opens a file-backed SQLite store with the test schema.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(context.Background(), Config{Driver: DriverSQLite, DSN: path})
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	if err := s.ApplySchema(context.Background(), testSchema); err != nil {
		t.Fatalf("ApplySchema() failed: %v", err)
	}
	return s
}

func TestOpen_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(context.Background(), Config{Driver: DriverSQLite, DSN: path})
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
	if s.Driver() != DriverSQLite {
		t.Errorf("Driver() = %q, want %q", s.Driver(), DriverSQLite)
	}
}

func TestOpen_AppliesPragmas(t *testing.T) {
	s := createTestStore(t)

	checks := map[string]string{
		"journal_mode": "wal",
		"synchronous":  "1",
		"busy_timeout": "5000",
		"foreign_keys": "1",
	}
	for name, want := range checks {
		if err := s.verifyPragma(name, want); err != nil {
			t.Error(err)
		}
	}
}

func TestOpen_InMemory(t *testing.T) {
	s, err := Open(context.Background(), Config{Driver: DriverSQLite, DSN: ":memory:"})
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	if err := s.ApplySchema(context.Background(), testSchema); err != nil {
		t.Fatalf("ApplySchema() failed: %v", err)
	}
	// One pooled connection keeps the in-memory database alive across calls.
	if _, err := s.ExecuteStatement(context.Background(), "INSERT INTO categories (id, name) VALUES ('1', 'Books')"); err != nil {
		t.Fatalf("insert into in-memory table failed: %v", err)
	}
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), Config{Driver: "postgres", DSN: "x"})
	if !dberr.IsConnectionError(err) {
		t.Fatalf("Open() error = %v, want ConnectionError", err)
	}
}

func TestOpen_UnreachableDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "test.db")

	_, err := Open(context.Background(), Config{Driver: DriverSQLite, DSN: path})
	if !dberr.IsConnectionError(err) {
		t.Fatalf("Open() error = %v, want ConnectionError", err)
	}
}

func TestExecute_CanonicalText(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	if err := s.ApplySchema(ctx, `CREATE TABLE samples (
		n INTEGER, f REAL, t TEXT, b BLOB, missing TEXT, at DATETIME
	)`); err != nil {
		t.Fatalf("ApplySchema() failed: %v", err)
	}
	at := time.Date(2024, 5, 1, 12, 30, 45, 0, time.UTC).Format("2006-01-02 15:04:05")
	if _, err := s.ExecuteStatement(ctx,
		"INSERT INTO samples VALUES (42, 2.5, 'hello', X'6869', NULL, '"+at+"')"); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	rows, err := s.Execute(ctx, "SELECT n, f, t, b, missing, at FROM samples")
	if err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}
	defer rows.Close()

	if !rows.Next() {
		t.Fatalf("expected one row, err = %v", rows.Err())
	}
	want := map[string]string{
		"n":       "42",
		"f":       "2.5",
		"t":       "hello",
		"b":       "hi",
		"missing": "NULL",
		"at":      "2024-05-01 12:30:45.000000",
	}
	rec := rows.Record()
	if len(rec) != len(want) {
		t.Fatalf("record has %d cells, want %d", len(rec), len(want))
	}
	for _, cell := range rec {
		if cell.Value != want[cell.Column] {
			t.Errorf("%s = %q, want %q", cell.Column, cell.Value, want[cell.Column])
		}
	}
	if rows.Next() {
		t.Error("expected exactly one row")
	}
	if err := rows.Err(); err != nil {
		t.Errorf("Err() = %v", err)
	}
}

func TestExecute_ColumnOrder(t *testing.T) {
	s := createTestStore(t)

	rows, err := s.Execute(context.Background(), "SELECT email, id, username FROM users")
	if err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}
	defer rows.Close()

	cols := rows.(*Rows).Columns()
	want := []string{"email", "id", "username"}
	for i := range want {
		if cols[i] != want[i] {
			t.Errorf("column %d = %q, want %q", i, cols[i], want[i])
		}
	}
	if rows.Next() {
		t.Error("expected empty result")
	}
}

func TestExecute_InvalidSQL(t *testing.T) {
	s := createTestStore(t)

	if _, err := s.Execute(context.Background(), "SELECT * FROM nowhere"); err == nil {
		t.Fatal("expected error for unknown table")
	}
	if _, err := s.ExecuteStatement(context.Background(), "DELETE FROM nowhere"); err == nil {
		t.Fatal("expected error for unknown table")
	}
}

func TestExecuteStatement_RowsAffected(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	n, err := s.ExecuteStatement(ctx, "INSERT INTO categories (id, name) VALUES ('1', 'Books'), ('2', 'Games')")
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if n != 2 {
		t.Errorf("RowsAffected = %d, want 2", n)
	}

	n, err = s.ExecuteStatement(ctx, "DELETE FROM categories WHERE id = '1'")
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if n != 1 {
		t.Errorf("RowsAffected = %d, want 1", n)
	}
}
