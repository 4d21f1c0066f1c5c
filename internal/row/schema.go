package row

import (
	"fmt"
	"strconv"
	"time"
)

// Field maps one column to a record field through typed closures.
type Field[T any] struct {
	// Name is the column name.
	Name string

	// AutoIncrement marks a database-generated primary key.
	AutoIncrement bool

	// Get renders the field's current value as text.
	Get func(*T) string

	// Set parses text into the field.
	Set func(*T, string) error
}

// Schema is the mapping table for a record type: column name to typed
// accessor. Build it once per type (usually as a package variable) and
// delegate the Row methods to it.
//
// Schema is read-only after construction and safe for concurrent use.
type Schema[T any] struct {
	table  string
	fields []Field[T]
	names  []string
	index  map[string]int
}

// NewSchema builds a schema for the given table. Column order is the order
// of fields. Duplicate or empty column names panic, since they indicate a
// broken record declaration rather than a runtime condition.
func NewSchema[T any](table string, fields ...Field[T]) *Schema[T] {
	s := &Schema[T]{
		table:  table,
		fields: fields,
		names:  make([]string, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for i, f := range fields {
		if f.Name == "" {
			panic(fmt.Sprintf("row: schema %q: field %d has no column name", table, i))
		}
		if _, dup := s.index[f.Name]; dup {
			panic(fmt.Sprintf("row: schema %q: duplicate column %q", table, f.Name))
		}
		s.names[i] = f.Name
		s.index[f.Name] = i
	}
	return s
}

// TableName returns the table the schema maps.
func (s *Schema[T]) TableName() string { return s.table }

// Columns returns the column names in declaration order.
func (s *Schema[T]) Columns() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Values renders every field of r in declaration order.
func (s *Schema[T]) Values(r *T) []string {
	out := make([]string, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.Get(r)
	}
	return out
}

// IsAutoIncrement reports whether column is declared as an auto-generated key.
func (s *Schema[T]) IsAutoIncrement(column string) bool {
	i, ok := s.index[column]
	return ok && s.fields[i].AutoIncrement
}

// Set parses value into the field mapped to column.
func (s *Schema[T]) Set(r *T, column, value string) error {
	i, ok := s.index[column]
	if !ok {
		return fmt.Errorf("%s.%s: %w", s.table, column, ErrUnknownColumn)
	}
	if err := s.fields[i].Set(r, value); err != nil {
		return fmt.Errorf("%s.%s: %w", s.table, column, err)
	}
	return nil
}

// String maps a string field.
func String[T any](name string, field func(*T) *string) Field[T] {
	return Field[T]{
		Name: name,
		Get:  func(r *T) string { return *field(r) },
		Set: func(r *T, v string) error {
			*field(r) = v
			return nil
		},
	}
}

// Int maps an int64 field.
func Int[T any](name string, field func(*T) *int64) Field[T] {
	return Field[T]{
		Name: name,
		Get:  func(r *T) string { return strconv.FormatInt(*field(r), 10) },
		Set: func(r *T, v string) error {
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return err
			}
			*field(r) = n
			return nil
		},
	}
}

// Uint maps a uint64 field.
func Uint[T any](name string, field func(*T) *uint64) Field[T] {
	return Field[T]{
		Name: name,
		Get:  func(r *T) string { return strconv.FormatUint(*field(r), 10) },
		Set: func(r *T, v string) error {
			n, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return err
			}
			*field(r) = n
			return nil
		},
	}
}

// Float maps a float64 field.
func Float[T any](name string, field func(*T) *float64) Field[T] {
	return Field[T]{
		Name: name,
		Get:  func(r *T) string { return FormatFloat(*field(r)) },
		Set: func(r *T, v string) error {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return err
			}
			*field(r) = f
			return nil
		},
	}
}

// Bool maps a bool field. Text is written as true/false and read with
// strconv.ParseBool, so the 1/0 produced by backends also parses.
func Bool[T any](name string, field func(*T) *bool) Field[T] {
	return Field[T]{
		Name: name,
		Get:  func(r *T) string { return strconv.FormatBool(*field(r)) },
		Set: func(r *T, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return err
			}
			*field(r) = b
			return nil
		},
	}
}

// Time maps a time.Time field using DateTimeLayout.
func Time[T any](name string, field func(*T) *time.Time) Field[T] {
	return Field[T]{
		Name: name,
		Get:  func(r *T) string { return FormatDateTime(*field(r)) },
		Set: func(r *T, v string) error {
			t, err := ParseDateTime(v)
			if err != nil {
				return err
			}
			*field(r) = t
			return nil
		},
	}
}

// Duration maps a time.Duration field using the [-]HH:MM:SS.ffffff form.
func Duration[T any](name string, field func(*T) *time.Duration) Field[T] {
	return Field[T]{
		Name: name,
		Get:  func(r *T) string { return FormatClock(*field(r)) },
		Set: func(r *T, v string) error {
			d, err := ParseClock(v)
			if err != nil {
				return err
			}
			*field(r) = d
			return nil
		},
	}
}

// Key maps a caller-assigned primary key.
func Key[T any, K Scalar](name string, field func(*T) *PrimaryKey[K]) Field[T] {
	return Field[T]{
		Name: name,
		Get:  func(r *T) string { return field(r).String() },
		Set:  func(r *T, v string) error { return field(r).Parse(v) },
	}
}

// AutoKey maps a database-generated primary key. The column is flagged
// AutoIncrement so INSERT statements skip it.
func AutoKey[T any, K Scalar](name string, field func(*T) *AutoIncrementPrimaryKey[K]) Field[T] {
	return Field[T]{
		Name:          name,
		AutoIncrement: true,
		Get:           func(r *T) string { return field(r).String() },
		Set:           func(r *T, v string) error { return field(r).Parse(v) },
	}
}
