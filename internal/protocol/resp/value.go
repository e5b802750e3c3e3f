package resp

import (
	"bytes"
	"fmt"
)

// Type identifies the wire variant of a Value.
type Type uint8

const (
	// TypeNull is the zero value, so an uninitialized Value is Null.
	TypeNull Type = iota
	TypeSimpleString
	TypeError
	TypeInteger
	TypeBulkString
	TypeArray
)

// String returns a human-readable type name for logs and errors.
func (t Type) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeSimpleString:
		return "simple-string"
	case TypeError:
		return "error"
	case TypeInteger:
		return "integer"
	case TypeBulkString:
		return "bulk-string"
	case TypeArray:
		return "array"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// Value is the wire-level tagged union. Exactly one payload field is
// meaningful, selected by Type:
//
//   - TypeSimpleString, TypeError: Str
//   - TypeInteger: Num
//   - TypeBulkString: Bulk
//   - TypeArray: Array
//   - TypeNull: none
type Value struct {
	Type  Type
	Str   string
	Num   int64
	Bulk  []byte
	Array []Value
}

// NewNull returns the null value.
func NewNull() Value {
	return Value{}
}

// NewSimpleString returns a simple string value.
func NewSimpleString(s string) Value {
	return Value{Type: TypeSimpleString, Str: s}
}

// NewError returns an error value.
func NewError(s string) Value {
	return Value{Type: TypeError, Str: s}
}

// NewInteger returns an integer value.
func NewInteger(n int64) Value {
	return Value{Type: TypeInteger, Num: n}
}

// NewBulk returns a bulk string value holding b. A nil slice is a valid
// empty bulk string, not null.
func NewBulk(b []byte) Value {
	return Value{Type: TypeBulkString, Bulk: b}
}

// NewBulkString returns a bulk string value holding s.
func NewBulkString(s string) Value {
	return Value{Type: TypeBulkString, Bulk: []byte(s)}
}

// NewArray returns an array value with the given elements.
func NewArray(elems ...Value) Value {
	return Value{Type: TypeArray, Array: elems}
}

// IsNull reports whether the value is null.
func (v Value) IsNull() bool {
	return v.Type == TypeNull
}

// Equal reports whether two values are semantically identical. Empty and
// nil payload slices compare equal, so a decoded value always equals the
// value it was encoded from.
func (v Value) Equal(o Value) bool {
	if v.Type != o.Type {
		return false
	}
	switch v.Type {
	case TypeNull:
		return true
	case TypeSimpleString, TypeError:
		return v.Str == o.Str
	case TypeInteger:
		return v.Num == o.Num
	case TypeBulkString:
		return bytes.Equal(v.Bulk, o.Bulk)
	case TypeArray:
		if len(v.Array) != len(o.Array) {
			return false
		}
		for i := range v.Array {
			if !v.Array[i].Equal(o.Array[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
