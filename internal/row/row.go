// Package row defines the row-reflection contract: the capability a record
// type provides so the query layer can read and write its fields by column
// name without per-type code in the engine.
//
// # The Contract
//
// A Row reports its table name, its column names in declaration order, the
// textual form of its current values in the same order, which columns are
// auto-generated primary keys, and accepts a (column, text) pair to populate
// one field.
//
// ColumnFields and ColumnValues always have equal length and the same
// positional column identity across calls. INSERT generation zips the two.
//
// # Implementing Rows
//
// Rows are normally backed by a Schema: a mapping table from column name to
// a typed getter/setter closure, built once per record type and shared by
// every instance. The Row methods then delegate to it:
//
//	var userSchema = row.NewSchema("users",
//		row.AutoKey("id", func(u *User) *row.AutoIncrementPrimaryKey[int64] { return &u.ID }),
//		row.String("username", func(u *User) *string { return &u.Username }),
//	)
//
//	func (u *User) TableName() string                 { return userSchema.TableName() }
//	func (u *User) ColumnFields() []string            { return userSchema.Columns() }
//	func (u *User) ColumnValues() []string            { return userSchema.Values(u) }
//	func (u *User) IsAutoIncrementPrimaryKey(c string) bool { return userSchema.IsAutoIncrement(c) }
//	func (u *User) SetColumnValue(c, v string) error  { return userSchema.Set(u, c, v) }
//
// # Textual Values
//
// Every value crosses the contract as text. Backends convert driver-native
// values with FormatDriverValue; the Field constructors in this package
// parse that text back into native Go types.
package row

import "errors"

// ErrUnknownColumn is returned by SetColumnValue for a column the row does
// not declare.
var ErrUnknownColumn = errors.New("unknown column")

// Table names a database table.
type Table interface {
	TableName() string
}

// Row is the row-reflection contract.
type Row interface {
	Table

	// ColumnFields returns the declared column names in declaration order.
	ColumnFields() []string

	// ColumnValues returns the textual form of the current field values,
	// positionally matching ColumnFields.
	ColumnValues() []string

	// IsAutoIncrementPrimaryKey reports whether the column is an
	// auto-generated primary key that INSERT statements must skip.
	IsAutoIncrementPrimaryKey(column string) bool

	// SetColumnValue parses value into the named field. It returns an error
	// wrapping ErrUnknownColumn for undeclared columns, or the parse error
	// for text the field cannot represent.
	SetColumnValue(column, value string) error
}

// Pointer constrains PT to be a pointer to T that implements Row.
// The query layer uses it to allocate a zero T per result row and populate
// it through PT.
type Pointer[T any] interface {
	*T
	Row
}

// Name is a bare table name usable wherever a Table is expected.
type Name string

// TableName returns the name itself.
func (n Name) TableName() string { return string(n) }

// Cell is one (column, textual value) pair produced by a backend.
type Cell struct {
	Column string
	Value  string
}

// Record is one result row as a sequence of cells in column order.
type Record []Cell
