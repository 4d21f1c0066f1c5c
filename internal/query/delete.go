package query

import (
	"context"

	"github.com/mjovanc/njord/internal/clause"
	"github.com/mjovanc/njord/internal/condition"
	"github.com/mjovanc/njord/internal/dberr"
	"github.com/mjovanc/njord/internal/row"
	"github.com/mjovanc/njord/internal/sqltext"
)

// Delete builds a DELETE statement.
type Delete struct {
	table   row.Table
	where   condition.Condition
	orderBy clause.OrderBy
	limit   *uint64
	offset  *uint64
}

// NewDelete starts a DELETE from table.
func NewDelete(table row.Table) *Delete {
	return &Delete{table: table}
}

// Where sets the WHERE condition. Without one every row is deleted.
func (d *Delete) Where(c condition.Condition) *Delete {
	d.where = c
	return d
}

// OrderBy sets the ORDER BY entries.
func (d *Delete) OrderBy(spec clause.OrderBy) *Delete {
	d.orderBy = spec.Clone()
	return d
}

// Limit sets LIMIT n.
func (d *Delete) Limit(n uint64) *Delete {
	d.limit = &n
	return d
}

// Offset sets OFFSET n.
func (d *Delete) Offset(n uint64) *Delete {
	d.offset = &n
	return d
}

// BuildQuery renders DELETE FROM <table> followed by the set clauses.
func (d *Delete) BuildQuery() string {
	return sqltext.JoinNonEmpty(" ",
		"DELETE FROM "+sanitizedTable(d.table),
		clause.Where(d.where),
		clause.RenderOrderBy(d.orderBy),
		clause.Pagination(d.limit, d.offset),
	)
}

// Execute runs the DELETE and returns the number of rows affected.
func (d *Delete) Execute(ctx context.Context, exec Executor, opts ...Option) (int64, error) {
	sql := d.BuildQuery()
	if sanitizedTable(d.table) == "" {
		return 0, dberr.InvalidQuery(sql, "DELETE has no table", nil)
	}
	return execStatement(ctx, exec, sql, newExecConfig(opts))
}
