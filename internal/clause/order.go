package clause

import (
	"fmt"
	"strings"
)

// Direction is an ORDER BY direction token.
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// ParseDirection accepts "asc"/"desc" in any case.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ASC":
		return Asc, nil
	case "DESC":
		return Desc, nil
	default:
		return "", fmt.Errorf("invalid order direction %q: must be ASC or DESC", s)
	}
}

// Order sorts one or more columns in the same direction.
type Order struct {
	Columns   []string
	Direction Direction
}

// OrderBy is an ordered list of sort keys. Entries render in slice order.
type OrderBy []Order

// By is shorthand for a single OrderBy entry.
func By(dir Direction, columns ...string) OrderBy {
	return OrderBy{{Columns: append([]string(nil), columns...), Direction: dir}}
}

// Then returns a new list holding o followed by one more entry. o itself
// is left untouched, so several lists can branch from the same base.
func (o OrderBy) Then(dir Direction, columns ...string) OrderBy {
	out := make(OrderBy, len(o), len(o)+1)
	copy(out, o)
	return append(out, Order{Columns: append([]string(nil), columns...), Direction: dir})
}

// Clone returns a deep copy of o, or nil for an empty list.
func (o OrderBy) Clone() OrderBy {
	if len(o) == 0 {
		return nil
	}
	out := make(OrderBy, len(o))
	for i, e := range o {
		out[i] = Order{Columns: append([]string(nil), e.Columns...), Direction: e.Direction}
	}
	return out
}

// RenderOrderBy renders "ORDER BY a, b DESC, c ASC", or "" when spec has
// no entries. Entries without columns are skipped.
func RenderOrderBy(spec OrderBy) string {
	var parts []string
	for _, o := range spec {
		if len(o.Columns) == 0 {
			continue
		}
		parts = append(parts, strings.Join(o.Columns, ", ")+" "+string(o.Direction))
	}
	if len(parts) == 0 {
		return ""
	}
	return "ORDER BY " + strings.Join(parts, ", ")
}
