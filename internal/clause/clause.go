// Package clause renders the individual clauses of a SELECT statement.
//
// Every renderer is a pure, total function of its input. An absent or empty
// input renders to "" so callers can concatenate fragments without
// special-casing missing clauses.
package clause

import (
	"strconv"
	"strings"

	"github.com/mjovanc/njord/internal/condition"
	"github.com/mjovanc/njord/internal/sqltext"
)

// Where renders "WHERE <condition>", or "" when c is nil.
func Where(c condition.Condition) string {
	if c == nil {
		return ""
	}
	return "WHERE " + condition.Render(c)
}

// GroupBy renders "GROUP BY a, b", or "" for an empty list.
func GroupBy(columns []string) string {
	if len(columns) == 0 {
		return ""
	}
	return "GROUP BY " + strings.Join(columns, ", ")
}

// Having renders "HAVING <condition>" only when a GROUP BY list is present.
//
// HAVING without GROUP BY is dropped silently rather than reported as an
// error. Callers that need to detect this should check their own state.
func Having(groupBy []string, c condition.Condition) string {
	if len(groupBy) == 0 || c == nil {
		return ""
	}
	return "HAVING " + condition.Render(c)
}

// Limit renders "LIMIT n", or "" when n is nil.
func Limit(n *uint64) string {
	if n == nil {
		return ""
	}
	return "LIMIT " + strconv.FormatUint(*n, 10)
}

// Offset renders "OFFSET n", or "" when n is nil.
func Offset(n *uint64) string {
	if n == nil {
		return ""
	}
	return "OFFSET " + strconv.FormatUint(*n, 10)
}

// Pagination renders LIMIT and OFFSET together, separated by one space.
// Either may be absent; token order is always LIMIT then OFFSET.
func Pagination(limit, offset *uint64) string {
	return sqltext.JoinNonEmpty(" ", Limit(limit), Offset(offset))
}
