package query

import (
	"context"
	"fmt"

	"github.com/mjovanc/njord/internal/clause"
	"github.com/mjovanc/njord/internal/condition"
	"github.com/mjovanc/njord/internal/dberr"
	"github.com/mjovanc/njord/internal/row"
	"github.com/mjovanc/njord/internal/sqltext"
)

// Select accumulates the state of one SELECT statement whose results map
// into T through PT.
//
// Builder methods mutate the receiver and return it for chaining. Use Clone
// to branch a builder into independent copies. EXCEPT, UNION and sub-query
// operands are copied when registered, so a builder never shares state with
// the statements embedded in it.
//
// A Select is not safe for concurrent mutation.
type Select[T any, PT row.Pointer[T]] struct {
	table    row.Table
	columns  []Column
	where    condition.Condition
	having   condition.Condition
	groupBy  []string
	orderBy  clause.OrderBy
	limit    *uint64
	offset   *uint64
	distinct bool
	excepts  []Statement
	unions   []Statement
	joins    []clause.Join
}

// NewSelect starts a SELECT of the given projections. With no projections
// the statement selects *.
//
//	q := query.NewSelect[User](query.Name("id"), query.Name("username")).
//		From(row.Name("users")).
//		Where(condition.Eq{Column: "username", Value: "mjovanc"})
func NewSelect[T any, PT row.Pointer[T]](columns ...Column) *Select[T, PT] {
	return &Select[T, PT]{columns: cloneColumns(columns)}
}

// Columns replaces the projection list.
func (s *Select[T, PT]) Columns(columns ...Column) *Select[T, PT] {
	s.columns = cloneColumns(columns)
	return s
}

// Distinct adds the DISTINCT modifier.
func (s *Select[T, PT]) Distinct() *Select[T, PT] {
	s.distinct = true
	return s
}

// From sets the table being selected from.
func (s *Select[T, PT]) From(table row.Table) *Select[T, PT] {
	s.table = table
	return s
}

// Where sets the WHERE condition, replacing any earlier one. A nil
// condition clears it.
func (s *Select[T, PT]) Where(c condition.Condition) *Select[T, PT] {
	s.where = c
	return s
}

// GroupBy sets the GROUP BY columns. The slice is copied.
func (s *Select[T, PT]) GroupBy(columns ...string) *Select[T, PT] {
	s.groupBy = append([]string(nil), columns...)
	return s
}

// OrderBy sets the ORDER BY entries. spec is copied.
func (s *Select[T, PT]) OrderBy(spec clause.OrderBy) *Select[T, PT] {
	s.orderBy = spec.Clone()
	return s
}

// Limit sets LIMIT n.
func (s *Select[T, PT]) Limit(n uint64) *Select[T, PT] {
	s.limit = &n
	return s
}

// Offset sets OFFSET n.
func (s *Select[T, PT]) Offset(n uint64) *Select[T, PT] {
	s.offset = &n
	return s
}

// Having sets the HAVING condition. It renders only while a GROUP BY list
// is also set; otherwise it is omitted from the statement.
func (s *Select[T, PT]) Having(c condition.Condition) *Select[T, PT] {
	s.having = c
	return s
}

// Join appends a JOIN clause. Joins render in the order they are added.
func (s *Select[T, PT]) Join(kind clause.JoinKind, table row.Table, on condition.Condition) *Select[T, PT] {
	s.joins = append(s.joins, clause.Join{Kind: kind, Table: table, On: on})
	return s
}

// Except appends " EXCEPT <other>" after the base statement. Set operations
// render left to right in registration order, all EXCEPTs before all
// UNIONs; no SQL set-operator precedence is applied.
func (s *Select[T, PT]) Except(other Statement) *Select[T, PT] {
	s.excepts = append(s.excepts, cloneStatement(other))
	return s
}

// Union appends " UNION <other>" after the base statement and any EXCEPTs.
func (s *Select[T, PT]) Union(other Statement) *Select[T, PT] {
	s.unions = append(s.unions, cloneStatement(other))
	return s
}

// Clone returns a deep copy of the builder. Tables referenced by FROM and
// JOIN are shared; conditions are immutable and shared as well.
func (s *Select[T, PT]) Clone() *Select[T, PT] {
	c := &Select[T, PT]{
		table:    s.table,
		columns:  cloneColumns(s.columns),
		where:    s.where,
		having:   s.having,
		groupBy:  append([]string(nil), s.groupBy...),
		orderBy:  s.orderBy.Clone(),
		distinct: s.distinct,
		joins:    append([]clause.Join(nil), s.joins...),
	}
	if s.limit != nil {
		n := *s.limit
		c.limit = &n
	}
	if s.offset != nil {
		n := *s.offset
		c.offset = &n
	}
	for _, e := range s.excepts {
		c.excepts = append(c.excepts, cloneStatement(e))
	}
	for _, u := range s.unions {
		c.unions = append(c.unions, cloneStatement(u))
	}
	return c
}

func (s *Select[T, PT]) cloneStatement() Statement {
	return s.Clone()
}

// BuildQuery renders the statement. It never fails: absent clauses render
// as empty fragments and keep their separating spaces, so the keyword
// order is always SELECT, FROM, JOIN, WHERE, GROUP BY, HAVING, ORDER BY,
// LIMIT, OFFSET followed by the registered EXCEPT and UNION operands.
func (s *Select[T, PT]) BuildQuery() string {
	distinct := ""
	if s.distinct {
		distinct = "DISTINCT "
	}
	projection := "*"
	if len(s.columns) > 0 {
		projection = renderColumns(s.columns)
	}

	q := fmt.Sprintf("SELECT %s%s FROM %s %s %s %s %s %s",
		distinct,
		projection,
		tableName(s.table),
		clause.Joins(s.joins),
		clause.Where(s.where),
		clause.GroupBy(s.groupBy),
		clause.Having(s.groupBy, s.having),
		clause.RenderOrderBy(s.orderBy),
	)
	if pagination := clause.Pagination(s.limit, s.offset); pagination != "" {
		q += " " + pagination
	}

	for _, e := range s.excepts {
		q += " EXCEPT " + e.BuildQuery()
	}
	for _, u := range s.unions {
		q += " UNION " + u.BuildQuery()
	}
	return q
}

// Build renders the statement, runs it on exec and maps every returned
// record into a new T.
//
// Unknown columns and unparsable values are skipped unless
// WithStrictMapping is given. Backend failures are returned as a single
// *dberr.Error and no rows are returned with it.
func (s *Select[T, PT]) Build(ctx context.Context, exec Executor, opts ...Option) ([]T, error) {
	sql := s.BuildQuery()
	if s.table == nil || s.table.TableName() == "" {
		return nil, dberr.InvalidQuery(sql, "SELECT has no FROM table", nil)
	}

	cfg := newExecConfig(opts)
	if s.having != nil && len(s.groupBy) == 0 {
		cfg.logger.WithField("sql", sql).Warn("HAVING omitted: no GROUP BY columns set")
	}
	return fetch[T, PT](ctx, exec, sql, cfg)
}

func tableName(t row.Table) string {
	if t == nil {
		return ""
	}
	return t.TableName()
}

func sanitizedTable(t row.Table) string {
	return sqltext.SanitizeIdentifier(tableName(t))
}

func cloneStatement(s Statement) Statement {
	if s == nil {
		return nil
	}
	return s.cloneStatement()
}
