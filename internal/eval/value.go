package eval

import (
	"sort"
	"strconv"
)

// Kind identifies the JS type of a folded value.
type Kind uint8

const (
	KindUndefined Kind = iota
	KindNull
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	}
	return "unknown"
}

// Value is a compile-time JS value. Arrays and objects are pointers so
// that strict equality compares identity, as in JS.
type Value interface {
	Kind() Kind
}

type Undefined struct{}

type Null struct{}

type Bool bool

type Number float64

type String string

type Array struct {
	Elems []Value
}

func (Undefined) Kind() Kind { return KindUndefined }
func (Null) Kind() Kind      { return KindNull }
func (Bool) Kind() Kind      { return KindBool }
func (Number) Kind() Kind    { return KindNumber }
func (String) Kind() Kind    { return KindString }
func (*Array) Kind() Kind    { return KindArray }
func (*Object) Kind() Kind   { return KindObject }

// NewArray copies elems into a fresh array value.
func NewArray(elems ...Value) *Array {
	return &Array{Elems: append([]Value(nil), elems...)}
}

// Object is a plain object with own data properties only.
type Object struct {
	props map[string]Value
	order []string
}

func NewObject() *Object {
	return &Object{props: make(map[string]Value)}
}

// Set defines or overwrites a property. Overwriting keeps the key's
// original position.
func (o *Object) Set(key string, v Value) {
	if _, ok := o.props[key]; !ok {
		o.order = append(o.order, key)
	}
	o.props[key] = v
}

func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.props[key]
	return v, ok
}

func (o *Object) Len() int { return len(o.order) }

// Keys returns own keys in JS enumeration order: array-index keys in
// ascending numeric order, then string keys in insertion order.
func (o *Object) Keys() []string {
	var indices []uint32
	keys := make([]string, 0, len(o.order))
	for _, k := range o.order {
		if idx, ok := arrayIndex(k); ok {
			indices = append(indices, idx)
			continue
		}
		keys = append(keys, k)
	}
	if len(indices) == 0 {
		return keys
	}
	sort.Slice(indices, func(i, j int) bool { return indices[i] < indices[j] })
	out := make([]string, 0, len(o.order))
	for _, idx := range indices {
		out = append(out, strconv.FormatUint(uint64(idx), 10))
	}
	return append(out, keys...)
}

// Clone makes a shallow copy.
func (o *Object) Clone() *Object {
	c := NewObject()
	for _, k := range o.order {
		c.Set(k, o.props[k])
	}
	return c
}

// arrayIndex reports whether key is a canonical array index.
func arrayIndex(key string) (uint32, bool) {
	if key == "" || (len(key) > 1 && key[0] == '0') {
		return 0, false
	}
	n, err := strconv.ParseUint(key, 10, 32)
	if err != nil || n == 1<<32-1 {
		return 0, false
	}
	return uint32(n), true
}

// ToGo converts a value to plain Go data: nil for undefined and null,
// bool, float64, string, []any and map[string]any.
func ToGo(v Value) any {
	switch v := v.(type) {
	case Bool:
		return bool(v)
	case Number:
		return float64(v)
	case String:
		return string(v)
	case *Array:
		out := make([]any, len(v.Elems))
		for i, e := range v.Elems {
			out[i] = ToGo(e)
		}
		return out
	case *Object:
		out := make(map[string]any, v.Len())
		for _, k := range v.order {
			out[k] = ToGo(v.props[k])
		}
		return out
	}
	return nil
}
