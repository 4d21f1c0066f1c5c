package condition

import "fmt"

// ValidationResult lists problems found in a condition tree.
//
// Rendering never fails, so a tree that Validate complains about still
// produces text; the backend is then likely to reject it.
type ValidationResult struct {
	// OK is true when no warnings were produced.
	OK bool

	// Warnings describes each problem in traversal order.
	Warnings []string
}

// Validate walks a condition tree and reports constructs that render to SQL
// a backend will reject or misread:
//  1. Empty column names
//  2. Empty IN / NOT IN lists
//  3. Combinators with a nil child
//  4. Nil pointer conditions
//
// A nil tree is valid (no filter). Validate is a pure function.
func Validate(c Condition) ValidationResult {
	v := &validator{
		warnings: []string{},
	}
	v.validate(c, "root")

	return ValidationResult{
		OK:       len(v.warnings) == 0,
		Warnings: v.warnings,
	}
}

// validator accumulates warnings during traversal.
type validator struct {
	warnings []string
}

func (v *validator) addWarning(format string, args ...any) {
	v.warnings = append(v.warnings, fmt.Sprintf(format, args...))
}

func (v *validator) validate(c Condition, path string) {
	if c == nil {
		return
	}
	c, ok := deref(c)
	if !ok {
		v.addWarning("%s: nil pointer condition renders as empty text", path)
		return
	}

	switch cond := c.(type) {
	case Eq:
		v.column(cond.Column, path)
	case Ne:
		v.column(cond.Column, path)
	case Gt:
		v.column(cond.Column, path)
	case Ge:
		v.column(cond.Column, path)
	case Lt:
		v.column(cond.Column, path)
	case Le:
		v.column(cond.Column, path)
	case Like:
		v.column(cond.Column, path)
	case NotLike:
		v.column(cond.Column, path)
	case In:
		v.list(cond.Column, cond.Values, "IN", path)
	case NotIn:
		v.list(cond.Column, cond.Values, "NOT IN", path)
	case IsNull:
		v.column(cond.Column, path)
	case IsNotNull:
		v.column(cond.Column, path)
	case EqColumns:
		v.column(cond.Left, path+".left")
		v.column(cond.Right, path+".right")
	case And:
		v.pair(cond.Left, cond.Right, "AND", path)
	case Or:
		v.pair(cond.Left, cond.Right, "OR", path)
	case Not:
		if cond.Inner == nil {
			v.addWarning("%s: NOT with nil operand renders as NOT ()", path)
			return
		}
		v.validate(cond.Inner, path+".not")
	default:
		v.addWarning("%s: unknown condition type %T", path, c)
	}
}

func (v *validator) column(name, path string) {
	if name == "" {
		v.addWarning("%s: empty column name", path)
	}
}

func (v *validator) list(name string, values []string, op, path string) {
	v.column(name, path)
	if len(values) == 0 {
		v.addWarning("%s: %s list for column '%s' is empty", path, op, name)
	}
}

func (v *validator) pair(left, right Condition, op, path string) {
	if left == nil {
		v.addWarning("%s: %s with nil left operand", path, op)
	}
	if right == nil {
		v.addWarning("%s: %s with nil right operand", path, op)
	}
	v.validate(left, path+".left")
	v.validate(right, path+".right")
}
