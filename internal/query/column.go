package query

import (
	"strings"

	"github.com/mjovanc/njord/internal/row"
)

// Column is one projection in a SELECT list.
//
// This is a sealed interface - only types in this package implement it.
type Column interface {
	render() string
	clone() Column
}

// Name is a plain column reference.
type Name string

func (n Name) render() string { return string(n) }
func (n Name) clone() Column  { return n }

// Qualified is a table-qualified column reference: table.column.
type Qualified struct {
	Table  string
	Column string
}

func (q Qualified) render() string { return q.Table + "." + q.Column }
func (q Qualified) clone() Column  { return q }

// Expr is raw projection text, used for aggregates and functions:
//
//	Expr("COUNT(*)")
//
// The text is emitted verbatim.
type Expr string

func (e Expr) render() string { return string(e) }
func (e Expr) clone() Column  { return e }

// Statement is a SELECT builder usable as an EXCEPT or UNION operand, a
// sub-query or an INSERT ... SELECT source. Only Select implements it;
// Update and Delete render text but are not Statements.
type Statement interface {
	BuildQuery() string
	cloneStatement() Statement
}

// SubQuery embeds another SELECT as a projection. The nested statement is
// wrapped in parentheses; Alias, when set, names the resulting column.
//
// Builders copy a SubQuery's statement when it is added to a projection
// list, so later changes to the original do not leak into the outer query.
type SubQuery struct {
	Query Statement
	Alias string
}

func (s SubQuery) render() string {
	inner := ""
	if s.Query != nil {
		inner = strings.TrimSpace(s.Query.BuildQuery())
	}
	out := "(" + inner + ")"
	if s.Alias != "" {
		out += " AS " + s.Alias
	}
	return out
}

func (s SubQuery) clone() Column {
	return SubQuery{Query: cloneStatement(s.Query), Alias: s.Alias}
}

// SubQueryOf copies q into a SubQuery projection.
func SubQueryOf[T any, PT row.Pointer[T]](q *Select[T, PT], alias string) SubQuery {
	return SubQuery{Query: q.Clone(), Alias: alias}
}

// Names converts plain column names into projections.
func Names(names ...string) []Column {
	out := make([]Column, len(names))
	for i, n := range names {
		out[i] = Name(n)
	}
	return out
}

func renderColumns(cols []Column) string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = c.render()
	}
	return strings.Join(parts, ", ")
}

func cloneColumns(cols []Column) []Column {
	if cols == nil {
		return nil
	}
	out := make([]Column, len(cols))
	for i, c := range cols {
		out[i] = c.clone()
	}
	return out
}
