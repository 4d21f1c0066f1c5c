package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
	_ "github.com/microsoft/go-mssqldb"

	"github.com/mjovanc/njord/internal/dberr"
	"github.com/mjovanc/njord/internal/query"
)

// Supported database/sql driver names.
const (
	DriverSQLite    = "sqlite3"
	DriverMySQL     = "mysql"
	DriverSQLServer = "sqlserver"
)

// Drivers lists the accepted Config.Driver values.
var Drivers = []string{DriverSQLite, DriverMySQL, DriverSQLServer}

// Config selects a backend and how to reach it.
type Config struct {
	// Driver is one of Drivers.
	Driver string

	// DSN is the driver-specific data source name. For SQLite this is a
	// file path or ":memory:".
	DSN string
}

// Store is a database/sql backed query.Executor.
type Store struct {
	db     *sql.DB
	driver string
}

var _ query.Executor = (*Store)(nil)

// Open connects to the configured backend and verifies the connection.
//
// SQLite databases are additionally configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode (balance durability/performance)
//   - 5-second busy timeout for lock contention
//   - Foreign key enforcement
//   - a single open connection, so ":memory:" databases persist
//
// Every failure is returned as a dberr ConnectionError.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	if !supported(cfg.Driver) {
		return nil, dberr.Connection(fmt.Sprintf("unsupported driver %q", cfg.Driver), nil)
	}

	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, dberr.Connection("open database", err)
	}

	if cfg.Driver == DriverSQLite {
		// SQLite only supports one writer at a time
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, dberr.Connection("connect to database", err)
	}

	if cfg.Driver == DriverSQLite {
		if err := applyPragmas(ctx, db); err != nil {
			db.Close()
			return nil, dberr.Connection("apply pragmas", err)
		}
	}

	return &Store{db: db, driver: cfg.Driver}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Driver returns the driver name the store was opened with.
func (s *Store) Driver() string {
	return s.driver
}

// DB returns the underlying sql.DB for direct queries.
// Use with caution - prefer the Executor methods.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Execute runs a read query. Column values are converted to canonical text
// as rows are read; see Rows.
func (s *Store) Execute(ctx context.Context, sql string) (query.Rows, error) {
	rows, err := s.db.QueryContext(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	columns, err := rows.Columns()
	if err != nil {
		rows.Close()
		return nil, fmt.Errorf("read columns: %w", err)
	}

	return newRows(rows, columns), nil
}

// ExecuteStatement runs INSERT, UPDATE or DELETE and returns the number of
// affected rows. Drivers that cannot report it yield 0.
func (s *Store) ExecuteStatement(ctx context.Context, sql string) (int64, error) {
	res, err := s.db.ExecContext(ctx, sql)
	if err != nil {
		return 0, fmt.Errorf("exec: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return n, nil
}

// ApplySchema executes DDL text, typically CREATE TABLE statements.
// SQLite accepts several statements in one call; other drivers may need
// them applied one at a time.
func (s *Store) ApplySchema(ctx context.Context, ddl string) error {
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

func supported(driver string) bool {
	for _, d := range Drivers {
		if d == driver {
			return true
		}
	}
	return false
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// verifyPragma checks that a pragma is set to the expected value.
// Used for testing.
func (s *Store) verifyPragma(name, expected string) error {
	var value string
	q := fmt.Sprintf("PRAGMA %s", name)
	if err := s.db.QueryRow(q).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}
