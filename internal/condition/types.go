package condition

import "reflect"

// Condition represents a predicate over columns and literal values.
//
// This is a sealed interface - only types in this package implement it.
type Condition interface {
	conditionNode()
}

// Eq is column = value.
type Eq struct {
	Column string
	Value  string
}

func (Eq) conditionNode() {}

// Ne is column != value.
type Ne struct {
	Column string
	Value  string
}

func (Ne) conditionNode() {}

// Gt is column > value.
type Gt struct {
	Column string
	Value  string
}

func (Gt) conditionNode() {}

// Ge is column >= value.
type Ge struct {
	Column string
	Value  string
}

func (Ge) conditionNode() {}

// Lt is column < value.
type Lt struct {
	Column string
	Value  string
}

func (Lt) conditionNode() {}

// Le is column <= value.
type Le struct {
	Column string
	Value  string
}

func (Le) conditionNode() {}

// Like is column LIKE pattern. The pattern is passed through verbatim, so
// callers supply their own % and _ wildcards.
type Like struct {
	Column  string
	Pattern string
}

func (Like) conditionNode() {}

// NotLike is column NOT LIKE pattern.
type NotLike struct {
	Column  string
	Pattern string
}

func (NotLike) conditionNode() {}

// In is column IN (v1, v2, ...).
//
// An empty Values list renders "column IN ()", which most backends reject.
// Validate reports it.
type In struct {
	Column string
	Values []string
}

func (In) conditionNode() {}

// NotIn is column NOT IN (v1, v2, ...).
type NotIn struct {
	Column string
	Values []string
}

func (NotIn) conditionNode() {}

// IsNull is column IS NULL.
type IsNull struct {
	Column string
}

func (IsNull) conditionNode() {}

// IsNotNull is column IS NOT NULL.
type IsNotNull struct {
	Column string
}

func (IsNotNull) conditionNode() {}

// EqColumns compares two column references without quoting either side.
// This is the equi-join predicate for JOIN ... ON:
//
//	EqColumns{Left: "users.id", Right: "products.user_id"}
//
// renders as
//
//	users.id = products.user_id
type EqColumns struct {
	Left  string
	Right string
}

func (EqColumns) conditionNode() {}

// And is (left AND right).
type And struct {
	Left  Condition
	Right Condition
}

func (And) conditionNode() {}

// Or is (left OR right).
type Or struct {
	Left  Condition
	Right Condition
}

func (Or) conditionNode() {}

// Not is NOT (inner).
type Not struct {
	Inner Condition
}

func (Not) conditionNode() {}

// All folds conditions into a left-deep chain of And nodes.
// Nil entries are skipped. All() with nothing left returns nil, and a
// single condition is returned unchanged.
func All(conds ...Condition) Condition {
	return fold(conds, func(l, r Condition) Condition { return And{Left: l, Right: r} })
}

// Any folds conditions into a left-deep chain of Or nodes.
func Any(conds ...Condition) Condition {
	return fold(conds, func(l, r Condition) Condition { return Or{Left: l, Right: r} })
}

func fold(conds []Condition, join func(l, r Condition) Condition) Condition {
	var acc Condition
	for _, c := range conds {
		if c == nil {
			continue
		}
		if acc == nil {
			acc = c
			continue
		}
		acc = join(acc, c)
	}
	return acc
}

// deref returns the value form of a pointer variant. ok is false for a nil
// pointer.
func deref(c Condition) (Condition, bool) {
	v := reflect.ValueOf(c)
	if v.Kind() != reflect.Pointer {
		return c, true
	}
	if v.IsNil() {
		return nil, false
	}
	return v.Elem().Interface().(Condition), true
}
