package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/mjovanc/njord/internal/clause"
	"github.com/mjovanc/njord/internal/condition"
	"github.com/mjovanc/njord/internal/dberr"
	"github.com/mjovanc/njord/internal/row"
	"github.com/mjovanc/njord/internal/sqltext"
)

// Update builds an UPDATE whose SET values are read from a row instance.
type Update struct {
	row     row.Row
	set     []string
	where   condition.Condition
	orderBy clause.OrderBy
	limit   *uint64
	offset  *uint64
}

// NewUpdate starts an UPDATE of r's table. Without Set, every column except
// auto-increment primary keys is assigned.
func NewUpdate(r row.Row) *Update {
	return &Update{row: r}
}

// Set restricts the assignment to the named columns, in the given order.
// The slice is copied.
func (u *Update) Set(columns ...string) *Update {
	u.set = append([]string(nil), columns...)
	return u
}

// Where sets the WHERE condition.
func (u *Update) Where(c condition.Condition) *Update {
	u.where = c
	return u
}

// OrderBy sets the ORDER BY entries.
func (u *Update) OrderBy(spec clause.OrderBy) *Update {
	u.orderBy = spec.Clone()
	return u
}

// Limit sets LIMIT n.
func (u *Update) Limit(n uint64) *Update {
	u.limit = &n
	return u
}

// Offset sets OFFSET n.
func (u *Update) Offset(n uint64) *Update {
	u.offset = &n
	return u
}

// assignments resolves the SET list against the row. Unknown names are
// returned separately so Execute can reject them.
func (u *Update) assignments() (set []string, unknown []string) {
	fields, values := u.row.ColumnFields(), u.row.ColumnValues()
	index := make(map[string]int, len(fields))
	for i, f := range fields {
		index[f] = i
	}

	names := u.set
	if len(names) == 0 {
		for _, f := range fields {
			if !u.row.IsAutoIncrementPrimaryKey(f) {
				names = append(names, f)
			}
		}
	}

	for _, name := range names {
		i, ok := index[name]
		if !ok || i >= len(values) {
			unknown = append(unknown, name)
			continue
		}
		set = append(set, name+" = "+sqltext.Quote(values[i]))
	}
	return set, unknown
}

// BuildQuery renders the statement. Unknown SET columns are left out.
func (u *Update) BuildQuery() string {
	if u.row == nil {
		return ""
	}
	set, _ := u.assignments()
	return sqltext.JoinNonEmpty(" ",
		"UPDATE "+sanitizedTable(u.row),
		"SET "+strings.Join(set, ", "),
		clause.Where(u.where),
		clause.RenderOrderBy(u.orderBy),
		clause.Pagination(u.limit, u.offset),
	)
}

// Execute runs the UPDATE and returns the number of rows affected.
func (u *Update) Execute(ctx context.Context, exec Executor, opts ...Option) (int64, error) {
	if u.row == nil || sanitizedTable(u.row) == "" {
		return 0, dberr.InvalidQuery("", "UPDATE has no table", nil)
	}
	set, unknown := u.assignments()
	sql := u.BuildQuery()
	if len(unknown) > 0 {
		return 0, dberr.InvalidQuery(sql, fmt.Sprintf("UPDATE sets unknown columns %v", unknown), nil)
	}
	if len(set) == 0 {
		return 0, dberr.InvalidQuery(sql, "UPDATE has no columns to set", nil)
	}
	return execStatement(ctx, exec, sql, newExecConfig(opts))
}
