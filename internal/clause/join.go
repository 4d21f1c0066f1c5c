package clause

import (
	"fmt"
	"strings"

	"github.com/mjovanc/njord/internal/condition"
)

// JoinKind selects the JOIN keyword.
type JoinKind int

const (
	Inner JoinKind = iota
	Left
	Right
	Full
)

// Keyword returns the SQL keyword for the join kind.
func (k JoinKind) Keyword() string {
	switch k {
	case Inner:
		return "INNER JOIN"
	case Left:
		return "LEFT JOIN"
	case Right:
		return "RIGHT JOIN"
	case Full:
		return "FULL OUTER JOIN"
	default:
		return fmt.Sprintf("JoinKind(%d)", int(k))
	}
}

// ParseJoinKind accepts inner, left, right and full (any case).
func ParseJoinKind(s string) (JoinKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "inner", "":
		return Inner, nil
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	case "full":
		return Full, nil
	default:
		return 0, fmt.Errorf("invalid join kind %q: must be inner, left, right or full", s)
	}
}

// Table is anything that can name a table. Joined tables are referenced,
// never mutated.
type Table interface {
	TableName() string
}

// Join is one JOIN clause.
type Join struct {
	Kind  JoinKind
	Table Table
	On    condition.Condition
}

// Joins renders every join in insertion order, separated by a space:
//
//	INNER JOIN products ON users.id = products.user_id
func Joins(joins []Join) string {
	parts := make([]string, 0, len(joins))
	for _, j := range joins {
		name := ""
		if j.Table != nil {
			name = j.Table.TableName()
		}
		parts = append(parts, j.Kind.Keyword()+" "+name+" ON "+condition.Render(j.On))
	}
	return strings.Join(parts, " ")
}
