// Package store is the database/sql backend collaborator for the query
// layer.
//
// A Store runs the SQL text rendered by package query and hands rows back
// as (column, text) records. It is the only place driver-native values
// exist; everything above it sees canonical text.
//
// # Drivers
//
//   - sqlite3 (github.com/mattn/go-sqlite3)
//   - mysql (github.com/go-sql-driver/mysql)
//   - sqlserver (github.com/microsoft/go-mssqldb)
//
// # Database Configuration
//
// SQLite connections get:
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// Connection and ping failures surface as dberr ConnectionError values.
// Query failures are returned as plain wrapped errors; the query layer
// classifies them.
package store
