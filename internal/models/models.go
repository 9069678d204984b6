package models

// Kind identifies which JSON variant a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindNumberString
	KindString
	KindArray
	KindObject
)

// String returns a human-readable name for the kind, used in diagnostics.
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
	case KindNumberString:
		return "number"
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

// Member is a single key/value pair of a JSON object.
type Member struct {
	Key   string
	Value *Value
}

// Value is the in-memory representation of any JSON value.
//
// A Value is built once, by the parser, and is read-only afterwards.
// Object members keep the order they appeared in the input text, which
// is what lets serialization reproduce the original key order.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string // string payload, or the original numeric literal text
	a    []*Value
	o    []Member
}

// Shared immutable singletons for the payload-free variants.
var (
	NullValue  = &Value{kind: KindNull}
	TrueValue  = &Value{kind: KindBool, b: true}
	FalseValue = &Value{kind: KindBool}
)

// NewNull returns the JSON null value.
func NewNull() *Value { return NullValue }

// NewBool returns a JSON boolean value.
func NewBool(b bool) *Value {
	if b {
		return TrueValue
	}
	return FalseValue
}

// NewInt returns a JSON number value backed by a 64-bit signed integer.
func NewInt(n int64) *Value {
	return &Value{kind: KindInt, i: n}
}

// NewFloat returns a JSON number value backed by a 64-bit float.
func NewFloat(f float64) *Value {
	return &Value{kind: KindFloat, f: f}
}

// NewNumberString returns a JSON number value that keeps the original
// literal text. It is used for numbers that neither int64 nor float64
// can hold without changing how the literal reads back out.
func NewNumberString(text string) *Value {
	return &Value{kind: KindNumberString, s: text}
}

// NewString returns a JSON string value.
func NewString(s string) *Value {
	return &Value{kind: KindString, s: s}
}

// NewArray returns a JSON array holding items in order.
func NewArray(items ...*Value) *Value {
	return &Value{kind: KindArray, a: items}
}

// NewObject returns a JSON object holding members in order.
func NewObject(members ...Member) *Value {
	v := &Value{kind: KindObject}
	for _, m := range members {
		v.AppendMember(m.Key, m.Value)
	}
	return v
}

// Kind reports which variant v holds.
func (v *Value) Kind() Kind { return v.kind }

// Bool returns the boolean payload. Valid only for KindBool.
func (v *Value) Bool() bool { return v.b }

// Int returns the integer payload. Valid only for KindInt.
func (v *Value) Int() int64 { return v.i }

// Float returns the float payload. Valid only for KindFloat.
func (v *Value) Float() float64 { return v.f }

// Text returns the string payload. Valid only for KindString.
func (v *Value) Text() string { return v.s }

// NumberText returns the original numeric literal text. Valid only for
// KindNumberString.
func (v *Value) NumberText() string { return v.s }

// Items returns the array elements in positional order, or nil for
// non-array values.
func (v *Value) Items() []*Value {
	if v.kind != KindArray {
		return nil
	}
	return v.a
}

// Members returns the object members in insertion order, or nil for
// non-object values.
func (v *Value) Members() []Member {
	if v.kind != KindObject {
		return nil
	}
	return v.o
}

// Len returns the number of elements in an array or members in an
// object, and 0 for every other kind.
func (v *Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.a)
	case KindObject:
		return len(v.o)
	default:
		return 0
	}
}

// Keys returns the object keys in insertion order, or nil for
// non-object values.
func (v *Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}
	keys := make([]string, 0, len(v.o))
	for _, m := range v.o {
		keys = append(keys, m.Key)
	}
	return keys
}

// Field returns the member value for key, if v is an object and has
// one. The returned value is a reference into v's tree, not a copy.
// For any other kind it reports no match rather than failing.
func (v *Value) Field(key string) (*Value, bool) {
	if v.kind != KindObject {
		return nil, false
	}
	// Objects in practice are small enough that a linear scan beats
	// maintaining a side index.
	for _, m := range v.o {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// Visit calls f for each object member in insertion order.
func (v *Value) Visit(f func(key string, child *Value)) {
	if v == nil || v.kind != KindObject {
		return
	}
	for _, m := range v.o {
		f(m.Key, m.Value)
	}
}

// AppendMember adds a key/value pair to an object under construction.
// A duplicate key replaces the earlier member in place, keeping the
// original position (last value wins, matching encoding/json). It is
// only meant to be called by whatever builds the tree; once a Value
// has been handed out it must be treated as immutable.
func (v *Value) AppendMember(key string, child *Value) {
	if v.kind != KindObject {
		return
	}
	for i := range v.o {
		if v.o[i].Key == key {
			v.o[i].Value = child
			return
		}
	}
	v.o = append(v.o, Member{Key: key, Value: child})
}

// Append adds an element to an array under construction. Same caveat
// as AppendMember.
func (v *Value) Append(child *Value) {
	if v.kind != KindArray {
		return
	}
	v.a = append(v.a, child)
}

// Equal reports whether v and other are structurally identical: same
// kinds, same payloads, same array order, and same object key order.
func (v *Value) Equal(other *Value) bool {
	if v == nil || other == nil {
		return v == other
	}
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindInt:
		return v.i == other.i
	case KindFloat:
		return v.f == other.f
	case KindNumberString, KindString:
		return v.s == other.s
	case KindArray:
		if len(v.a) != len(other.a) {
			return false
		}
		for i := range v.a {
			if !v.a[i].Equal(other.a[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.o) != len(other.o) {
			return false
		}
		for i := range v.o {
			if v.o[i].Key != other.o[i].Key {
				return false
			}
			if !v.o[i].Value.Equal(other.o[i].Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
