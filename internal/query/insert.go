package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mjovanc/njord/internal/dberr"
	"github.com/mjovanc/njord/internal/row"
	"github.com/mjovanc/njord/internal/sqltext"
)

// BuildInsert renders one multi-row INSERT for rows:
//
//	INSERT INTO users (username, email) VALUES ('a', 'a@x'), ('b', 'b@x')
//
// Columns flagged as auto-increment primary keys are left out of both the
// column list and every value tuple. Values are quoted with embedded single
// quotes doubled; the table name is sanitized.
//
// All rows must name the same table and report as many values as columns.
func BuildInsert[R row.Row](rows []R) (string, error) {
	sql, _, err := assembleInsert(rows)
	return sql, err
}

// Insert renders rows as one INSERT statement and executes it, returning
// the number of rows affected.
func Insert[R row.Row](ctx context.Context, exec Executor, rows []R, opts ...Option) (int64, error) {
	sql, skipped, err := assembleInsert(rows)
	if err != nil {
		return 0, err
	}

	cfg := newExecConfig(opts)
	if len(skipped) > 0 {
		cfg.logger.WithFields(logrus.Fields{
			"table":   sanitizedTable(rows[0]),
			"columns": skipped,
		}).Debug("skipping auto-increment columns")
	}
	return execStatement(ctx, exec, sql, cfg)
}

func assembleInsert[R row.Row](rows []R) (string, []string, error) {
	if len(rows) == 0 {
		return "", nil, dberr.InvalidQuery("", "INSERT needs at least one row", nil)
	}

	table := sanitizedTable(rows[0])
	if table == "" {
		return "", nil, dberr.InvalidQuery("", "INSERT row has no table name", nil)
	}

	var skipped []string
	fragments := make([]string, 0, len(rows))
	for i, r := range rows {
		if t := sanitizedTable(r); t != table {
			return "", nil, dberr.InvalidQuery("", fmt.Sprintf("INSERT row %d targets %q, expected %q", i, t, table), nil)
		}

		fields, values := r.ColumnFields(), r.ColumnValues()
		if len(fields) != len(values) {
			return "", nil, dberr.InvalidQuery("",
				fmt.Sprintf("INSERT row %d has %d columns but %d values", i, len(fields), len(values)), nil)
		}

		cols := make([]string, 0, len(fields))
		vals := make([]string, 0, len(values))
		for j, f := range fields {
			if r.IsAutoIncrementPrimaryKey(f) {
				if i == 0 {
					skipped = append(skipped, f)
				}
				continue
			}
			cols = append(cols, f)
			vals = append(vals, sqltext.Quote(values[j]))
		}

		tuple := "(" + strings.Join(vals, ", ") + ")"
		if i == 0 {
			fragments = append(fragments,
				fmt.Sprintf("INSERT INTO %s (%s) VALUES %s", table, strings.Join(cols, ", "), tuple))
			continue
		}
		fragments = append(fragments, tuple)
	}

	return strings.Join(fragments, ", "), skipped, nil
}

// BuildInsertFrom renders INSERT INTO table (columns) followed by the
// rendered source SELECT. An empty column list omits the parenthesized list.
func BuildInsertFrom(table row.Table, columns []string, src Statement) string {
	target := sanitizedTable(table)
	if len(columns) > 0 {
		target += " (" + strings.Join(columns, ", ") + ")"
	}
	return "INSERT INTO " + target + " " + strings.TrimSpace(src.BuildQuery())
}

// InsertFrom copies the result of src into table.
func InsertFrom(ctx context.Context, exec Executor, table row.Table, columns []string, src Statement, opts ...Option) (int64, error) {
	if sanitizedTable(table) == "" {
		return 0, dberr.InvalidQuery("", "INSERT has no target table", nil)
	}
	if src == nil {
		return 0, dberr.InvalidQuery("", "INSERT ... SELECT has no source query", nil)
	}
	return execStatement(ctx, exec, BuildInsertFrom(table, columns, src), newExecConfig(opts))
}
