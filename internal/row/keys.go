package row

import (
	"fmt"
	"reflect"
	"strconv"
)

// Scalar is the set of types a key can wrap.
type Scalar interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~string
}

// PrimaryKey marks a caller-assigned primary key column.
type PrimaryKey[K Scalar] struct {
	value K
}

// NewPrimaryKey wraps v.
func NewPrimaryKey[K Scalar](v K) PrimaryKey[K] {
	return PrimaryKey[K]{value: v}
}

// Get returns the key value.
func (k PrimaryKey[K]) Get() K { return k.value }

// String returns the textual form of the key.
func (k PrimaryKey[K]) String() string { return fmt.Sprint(k.value) }

// Parse replaces the key with the parsed value of s.
func (k *PrimaryKey[K]) Parse(s string) error {
	v, err := parseScalar[K](s)
	if err != nil {
		return err
	}
	k.value = v
	return nil
}

// AutoIncrementPrimaryKey marks a database-generated primary key column.
// The zero value is unset and renders as NULL; INSERT statements skip the
// column entirely.
type AutoIncrementPrimaryKey[K Scalar] struct {
	value K
	valid bool
}

// NewAutoIncrementPrimaryKey wraps an already-assigned key value.
func NewAutoIncrementPrimaryKey[K Scalar](v K) AutoIncrementPrimaryKey[K] {
	return AutoIncrementPrimaryKey[K]{value: v, valid: true}
}

// Get returns the key value and whether it has been assigned.
func (k AutoIncrementPrimaryKey[K]) Get() (K, bool) { return k.value, k.valid }

// Set assigns the key value.
func (k *AutoIncrementPrimaryKey[K]) Set(v K) {
	k.value = v
	k.valid = true
}

// String returns the key value, or NULL when unset.
func (k AutoIncrementPrimaryKey[K]) String() string {
	if !k.valid {
		return NullText
	}
	return fmt.Sprint(k.value)
}

// Parse assigns the parsed value of s. Text that does not parse (including
// NULL) leaves the key unset rather than failing.
func (k *AutoIncrementPrimaryKey[K]) Parse(s string) error {
	v, err := parseScalar[K](s)
	if err != nil {
		*k = AutoIncrementPrimaryKey[K]{}
		return nil
	}
	k.Set(v)
	return nil
}

// parseScalar parses s into any Scalar, including named types whose
// underlying type is a scalar.
func parseScalar[K Scalar](s string) (K, error) {
	var out K
	rv := reflect.ValueOf(&out).Elem()

	switch rv.Kind() {
	case reflect.String:
		rv.SetString(s)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, rv.Type().Bits())
		if err != nil {
			return out, fmt.Errorf("parse %s: %w", rv.Type(), err)
		}
		rv.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 10, rv.Type().Bits())
		if err != nil {
			return out, fmt.Errorf("parse %s: %w", rv.Type(), err)
		}
		rv.SetUint(n)
	default:
		return out, fmt.Errorf("parse %s: unsupported key kind", rv.Type())
	}
	return out, nil
}
