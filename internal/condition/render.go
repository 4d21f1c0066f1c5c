package condition

import (
	"fmt"
	"strings"

	"github.com/mjovanc/njord/internal/sqltext"
)

// Render converts a condition tree to its SQL text.
// A nil condition renders to "".
//
// Both value and pointer forms of every variant are accepted. A nil pointer
// renders to "" like a nil condition.
func Render(c Condition) string {
	c, ok := deref(c)
	if !ok || c == nil {
		return ""
	}

	switch cond := c.(type) {
	case Eq:
		return compare(cond.Column, "=", cond.Value)
	case Ne:
		return compare(cond.Column, "!=", cond.Value)
	case Gt:
		return compare(cond.Column, ">", cond.Value)
	case Ge:
		return compare(cond.Column, ">=", cond.Value)
	case Lt:
		return compare(cond.Column, "<", cond.Value)
	case Le:
		return compare(cond.Column, "<=", cond.Value)
	case Like:
		return compare(cond.Column, "LIKE", cond.Pattern)
	case NotLike:
		return compare(cond.Column, "NOT LIKE", cond.Pattern)
	case In:
		return list(cond.Column, "IN", cond.Values)
	case NotIn:
		return list(cond.Column, "NOT IN", cond.Values)
	case IsNull:
		return cond.Column + " IS NULL"
	case IsNotNull:
		return cond.Column + " IS NOT NULL"
	case EqColumns:
		return cond.Left + " = " + cond.Right
	case And:
		return combine(cond.Left, "AND", cond.Right)
	case Or:
		return combine(cond.Left, "OR", cond.Right)
	case Not:
		return "NOT (" + Render(cond.Inner) + ")"
	default:
		// Unreachable while the interface stays sealed.
		panic(fmt.Sprintf("condition: unknown condition type %T", c))
	}
}

func compare(column, op, value string) string {
	return column + " " + op + " " + sqltext.Quote(value)
}

func list(column, op string, values []string) string {
	return column + " " + op + " (" + strings.Join(sqltext.QuoteAll(values), ", ") + ")"
}

func combine(left Condition, op string, right Condition) string {
	return "(" + Render(left) + " " + op + " " + Render(right) + ")"
}
