package jsonvalue

import "math"

// Kind identifies which variant of a Value is active.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindArray
	KindObject
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a JSON value with exactly one active kind.
//
// The zero Value is null. Mutators store deep copies and accessors hand out
// deep copies, so a tree never shares mutable nodes with its caller.
// Assigning a container Value with = copies only the top level; Clone before
// mutating the copy.
type Value struct {
	kind    Kind
	b       bool
	i       int64
	f       float64
	s       string
	items   []Value
	members []member
	index   map[string]int
}

type member struct {
	key   string
	value Value
}

// Null returns the null value.
func Null() Value { return Value{} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int returns an integer value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float returns a floating-point value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Array returns an array holding copies of vs.
func Array(vs ...Value) Value {
	items := make([]Value, len(vs))
	for i, v := range vs {
		items[i] = v.Clone()
	}
	return Value{kind: KindArray, items: items}
}

// Object returns an empty object.
func Object() Value {
	return Value{kind: KindObject, index: map[string]int{}}
}

// FromFloats returns an array of float values.
func FromFloats(fs []float64) Value {
	items := make([]Value, len(fs))
	for i, f := range fs {
		items[i] = Float(f)
	}
	return Value{kind: KindArray, items: items}
}

// FromStrings returns an array of string values.
func FromStrings(ss []string) Value {
	items := make([]Value, len(ss))
	for i, s := range ss {
		items[i] = String(s)
	}
	return Value{kind: KindArray, items: items}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool   { return v.kind == KindNull }
func (v Value) IsBool() bool   { return v.kind == KindBool }
func (v Value) IsInt() bool    { return v.kind == KindInt }
func (v Value) IsFloat() bool  { return v.kind == KindFloat }
func (v Value) IsString() bool { return v.kind == KindString }
func (v Value) IsArray() bool  { return v.kind == KindArray }
func (v Value) IsObject() bool { return v.kind == KindObject }

// IsNumber reports whether v is an int or a float.
func (v Value) IsNumber() bool { return v.kind == KindInt || v.kind == KindFloat }

func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

func (v Value) AsInt() (int64, bool) { return v.i, v.kind == KindInt }

func (v Value) AsFloat() (float64, bool) { return v.f, v.kind == KindFloat }

func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// Number returns an int or float value widened to float64.
func (v Value) Number() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.i), true
	case KindFloat:
		return v.f, true
	default:
		return 0, false
	}
}

// Len returns the number of array elements or object members, and 0 for
// every other kind.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.items)
	case KindObject:
		return len(v.members)
	default:
		return 0
	}
}

// Index returns a copy of the i-th array element, or null when v is not an
// array or i is out of range.
func (v Value) Index(i int) Value {
	if v.kind != KindArray || i < 0 || i >= len(v.items) {
		return Value{}
	}
	return v.items[i].Clone()
}

// Items returns copies of the array elements.
func (v Value) Items() []Value {
	if v.kind != KindArray {
		return nil
	}
	out := make([]Value, len(v.items))
	for i, item := range v.items {
		out[i] = item.Clone()
	}
	return out
}

// Get returns a copy of the member stored under key.
func (v Value) Get(key string) (Value, bool) {
	m, ok := v.lookup(key)
	if !ok {
		return Value{}, false
	}
	return m.Clone(), true
}

// Has reports whether v is an object with a member named key.
func (v Value) Has(key string) bool {
	_, ok := v.lookup(key)
	return ok
}

func (v Value) lookup(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	i, ok := v.index[key]
	if !ok {
		return Value{}, false
	}
	return v.members[i].value, true
}

// Keys returns object keys in insertion order.
func (v Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}
	keys := make([]string, len(v.members))
	for i, m := range v.members {
		keys[i] = m.key
	}
	return keys
}

// Members calls fn with a copy of every object member in insertion order
// until fn returns false.
func (v Value) Members(fn func(key string, val Value) bool) {
	if v.kind != KindObject {
		return
	}
	for _, m := range v.members {
		if !fn(m.key, m.value.Clone()) {
			return
		}
	}
}

// Set stores a copy of val under key, replacing an existing member in
// place. A non-object receiver is first reset to an empty object.
func (v *Value) Set(key string, val Value) {
	if v.kind != KindObject {
		*v = Object()
	}
	if i, ok := v.index[key]; ok {
		v.members[i].value = val.Clone()
		return
	}
	v.index[key] = len(v.members)
	v.members = append(v.members, member{key: key, value: val.Clone()})
}

// SetIndex stores a copy of val at position i. A non-array receiver is
// first reset to an empty array; slots between the old end and i are
// filled with null.
func (v *Value) SetIndex(i int, val Value) {
	if i < 0 {
		return
	}
	if v.kind != KindArray {
		*v = Value{kind: KindArray}
	}
	for len(v.items) <= i {
		v.items = append(v.items, Value{})
	}
	v.items[i] = val.Clone()
}

// Append adds a copy of val to the end of the array.
func (v *Value) Append(val Value) {
	if v.kind != KindArray {
		*v = Value{kind: KindArray}
	}
	v.items = append(v.items, val.Clone())
}

// Clone returns a deep copy of v.
func (v Value) Clone() Value {
	switch v.kind {
	case KindArray:
		items := make([]Value, len(v.items))
		for i, item := range v.items {
			items[i] = item.Clone()
		}
		return Value{kind: KindArray, items: items}
	case KindObject:
		out := Value{
			kind:    KindObject,
			members: make([]member, len(v.members)),
			index:   make(map[string]int, len(v.members)),
		}
		for i, m := range v.members {
			out.members[i] = member{key: m.key, value: m.value.Clone()}
			out.index[m.key] = i
		}
		return out
	default:
		return v
	}
}

// Equal reports structural equality. Kinds must match exactly, so Int(1)
// and Float(1) differ. Object member order is not significant.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.b == b.b
	case KindInt:
		return a.i == b.i
	case KindFloat:
		return a.f == b.f || (math.IsNaN(a.f) && math.IsNaN(b.f))
	case KindString:
		return a.s == b.s
	case KindArray:
		if len(a.items) != len(b.items) {
			return false
		}
		for i := range a.items {
			if !Equal(a.items[i], b.items[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(a.members) != len(b.members) {
			return false
		}
		for _, m := range a.members {
			other, ok := b.lookup(m.key)
			if !ok || !Equal(m.value, other) {
				return false
			}
		}
		return true
	}
	return false
}
