// Package condition provides the predicate tree used to render WHERE,
// HAVING and JOIN ... ON clauses.
//
// Condition is a sealed interface using the marker method pattern: only the
// types in this package implement it, so renderers can switch over every
// variant exhaustively.
//
// LEAVES:
//
// Comparison leaves hold a column name and the textual form of one or more
// literal values:
//
//	Eq{Column: "username", Value: "mjovanc"}            username = 'mjovanc'
//	In{Column: "id", Values: []string{"1", "2"}}        id IN ('1', '2')
//	IsNull{Column: "deleted_at"}                        deleted_at IS NULL
//	EqColumns{Left: "users.id", Right: "orders.uid"}    users.id = orders.uid
//
// COMBINATORS:
//
// And, Or and Not own their children. Rendering always wraps a combinator in
// parentheses so that precedence never depends on nesting depth:
//
//	And{Left: a, Right: Or{Left: b, Right: c}}          (a AND (b OR c))
//
// A condition tree is immutable once constructed. Render is deterministic
// and has no side effects. A nil Condition renders to the empty string; the
// clause renderers are responsible for omitting the WHERE/HAVING keyword in
// that case.
package condition
