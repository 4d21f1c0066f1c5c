package store

import (
	"database/sql"
	"fmt"

	"github.com/mjovanc/njord/internal/row"
)

// Rows adapts *sql.Rows to query.Rows.
//
// Each row is scanned into driver-native values and converted with
// row.FormatDriverValue: NULL becomes "NULL", byte slices are read as UTF-8
// text, numbers are decimal, times use row.DateTimeLayout and durations the
// [-]HH:MM:SS.ffffff clock form.
type Rows struct {
	rows    *sql.Rows
	columns []string
	current row.Record
	err     error
}

func newRows(rows *sql.Rows, columns []string) *Rows {
	return &Rows{rows: rows, columns: columns}
}

// Next advances to the next row. It returns false at the end of the stream
// or after a scan failure; check Err.
func (r *Rows) Next() bool {
	if r.err != nil || !r.rows.Next() {
		return false
	}

	values := make([]any, len(r.columns))
	dest := make([]any, len(r.columns))
	for i := range values {
		dest[i] = &values[i]
	}
	if err := r.rows.Scan(dest...); err != nil {
		r.err = fmt.Errorf("scan row: %w", err)
		return false
	}

	rec := make(row.Record, len(r.columns))
	for i, col := range r.columns {
		rec[i] = row.Cell{Column: col, Value: row.FormatDriverValue(values[i])}
	}
	r.current = rec
	return true
}

// Record returns the row read by the last successful Next.
func (r *Rows) Record() row.Record {
	return r.current
}

// Err returns the first scan or iteration error.
func (r *Rows) Err() error {
	if r.err != nil {
		return r.err
	}
	if err := r.rows.Err(); err != nil {
		return fmt.Errorf("iterate rows: %w", err)
	}
	return nil
}

// Close releases the underlying result set.
func (r *Rows) Close() error {
	return r.rows.Close()
}

// Columns returns the result column names in order.
func (r *Rows) Columns() []string {
	return append([]string(nil), r.columns...)
}
