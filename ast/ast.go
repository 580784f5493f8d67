// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package ast defines a tree of JSON values, and a decoder that constructs
// trees from JSON source using pooled working storage.
package ast

import (
	"fmt"
	"maps"
	"slices"
)

// Type identifies the kind of a Value.
type Type byte

// Constants defining the valid Type values.
const (
	NullType Type = iota
	BoolType
	NumberType
	StringType
	ObjectType
	ArrayType
)

var typeStr = [...]string{
	NullType:   "null",
	BoolType:   "bool",
	NumberType: "number",
	StringType: "string",
	ObjectType: "object",
	ArrayType:  "array",
}

func (t Type) String() string {
	if int(t) >= len(typeStr) {
		return fmt.Sprintf("Type(%d)", byte(t))
	}
	return typeStr[t]
}

// A Value is a JSON value: null, a Boolean, a number, a string, an object,
// or an array. The zero Value is null.
//
// The accessor for each type panics if called on a value of another type, so
// callers should check Type first when the shape of the input is not known.
// A Value owns its children, and does not refer to the input it was decoded
// from.
type Value struct {
	kind Type
	b    bool
	n    float64
	s    string
	obj  map[string]Value
	arr  []Value
}

// Null returns a null value. It is equivalent to the zero Value.
func Null() Value { return Value{} }

// Bool returns a Boolean value.
func Bool(b bool) Value { return Value{kind: BoolType, b: b} }

// Number returns a number value.
func Number(n float64) Value { return Value{kind: NumberType, n: n} }

// String returns a string value.
func String(s string) Value { return Value{kind: StringType, s: s} }

// Object returns an object value with the given members. The object takes
// ownership of m; a nil map is treated as empty.
func Object(m map[string]Value) Value {
	if m == nil {
		m = make(map[string]Value)
	}
	return Value{kind: ObjectType, obj: m}
}

// Array returns an array value with the given elements.
func Array(vs ...Value) Value {
	if vs == nil {
		vs = []Value{}
	}
	return Value{kind: ArrayType, arr: vs}
}

// Type reports the type of v.
func (v Value) Type() Type { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == NullType }

// Bool returns the value of a Boolean. It panics if v is not a Boolean.
func (v Value) Bool() bool {
	v.want(BoolType)
	return v.b
}

// Float64 returns the value of a number. It panics if v is not a number.
func (v Value) Float64() float64 {
	v.want(NumberType)
	return v.n
}

// Text returns the contents of a string. It panics if v is not a string.
func (v Value) Text() string {
	v.want(StringType)
	return v.s
}

// Members returns the members of an object. The caller must not modify the
// map. It panics if v is not an object.
func (v Value) Members() map[string]Value {
	v.want(ObjectType)
	return v.obj
}

// Keys returns the keys of an object in lexicographic order. It panics if v
// is not an object.
func (v Value) Keys() []string {
	v.want(ObjectType)
	return slices.Sorted(maps.Keys(v.obj))
}

// Find returns the member of an object with the given key, and reports
// whether it was present. It panics if v is not an object.
func (v Value) Find(key string) (Value, bool) {
	v.want(ObjectType)
	m, ok := v.obj[key]
	return m, ok
}

// Values returns the elements of an array. The caller must not modify the
// slice. It panics if v is not an array.
func (v Value) Values() []Value {
	v.want(ArrayType)
	return v.arr
}

// Index returns the element of an array at offset i. It panics if v is not
// an array or i is out of range.
func (v Value) Index(i int) Value {
	v.want(ArrayType)
	return v.arr[i]
}

// Len returns the number of members of an object, elements of an array, or
// bytes of a string. It returns 0 for other values.
func (v Value) Len() int {
	switch v.kind {
	case ObjectType:
		return len(v.obj)
	case ArrayType:
		return len(v.arr)
	case StringType:
		return len(v.s)
	default:
		return 0
	}
}

// String renders a brief description of v for diagnostics.
func (v Value) String() string {
	switch v.kind {
	case NullType:
		return "null"
	case BoolType:
		return fmt.Sprint(v.b)
	case NumberType:
		return fmt.Sprint(v.n)
	case StringType:
		return fmt.Sprintf("%q", v.s)
	case ObjectType:
		return fmt.Sprintf("object[%d]", len(v.obj))
	case ArrayType:
		return fmt.Sprintf("array[%d]", len(v.arr))
	default:
		return v.kind.String()
	}
}

func (v Value) want(t Type) {
	if v.kind != t {
		panic(fmt.Sprintf("ast: value is %v, not %v", v.kind, t))
	}
}
