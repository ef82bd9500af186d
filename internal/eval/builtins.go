package eval

import (
	"sort"
	"strconv"
	"unicode/utf8"
)

// builtin is a pure function of already-folded arguments.
type builtin func(args []Value) (Value, bool)

// allowedCalls is the complete set of callees the evaluator will invoke.
// Anything not listed here fails the fold.
var allowedCalls = map[string]builtin{
	"Object.assign": objectAssign,
	"Object.freeze": objectFreeze,
	"Array.from":    arrayFrom,
	"String":        callString,
	"Number":        callNumber,
	"Boolean":       callBoolean,
}

// AllowedCalls lists the qualified callee names the evaluator folds,
// sorted.
func AllowedCalls() []string {
	names := make([]string, 0, len(allowedCalls))
	for name := range allowedCalls {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// objectAssign merges the remaining arguments onto a copy of the first.
func objectAssign(args []Value) (Value, bool) {
	if len(args) == 0 {
		return nil, false
	}
	target, ok := args[0].(*Object)
	if !ok {
		return nil, false
	}
	out := target.Clone()
	for _, src := range args[1:] {
		if !assignOwn(out, src) {
			return nil, false
		}
	}
	return out, true
}

func assignOwn(dst *Object, src Value) bool {
	switch s := src.(type) {
	case Undefined, Null, Bool, Number:
		// no own enumerable properties
	case *Object:
		for _, k := range s.Keys() {
			if k == "__proto__" {
				return false
			}
			v, _ := s.Get(k)
			dst.Set(k, v)
		}
	case *Array:
		for i, e := range s.Elems {
			dst.Set(strconv.Itoa(i), e)
		}
	case String:
		str := string(s)
		if !utf8.ValidString(str) {
			return false
		}
		for i, u := range utf16Units(str) {
			if isSurrogate(u) {
				return false
			}
			dst.Set(strconv.Itoa(i), String(rune(u)))
		}
	default:
		return false
	}
	return true
}

func objectFreeze(args []Value) (Value, bool) {
	if len(args) == 0 {
		return Undefined{}, true
	}
	return args[0], true
}

// arrayFrom accepts an array or a string and no mapping function.
func arrayFrom(args []Value) (Value, bool) {
	if len(args) != 1 {
		return nil, false
	}
	switch v := args[0].(type) {
	case *Array:
		return NewArray(v.Elems...), true
	case String:
		return NewArray(codePoints(string(v))...), true
	}
	return nil, false
}

func callString(args []Value) (Value, bool) {
	if len(args) == 0 {
		return String(""), true
	}
	return String(ToString(args[0])), true
}

func callNumber(args []Value) (Value, bool) {
	if len(args) == 0 {
		return Number(0), true
	}
	return Number(ToNumber(args[0])), true
}

func callBoolean(args []Value) (Value, bool) {
	if len(args) == 0 {
		return Bool(false), true
	}
	return Bool(ToBoolean(args[0])), true
}

// codePoints splits s the way the string iterator does.
func codePoints(s string) []Value {
	out := make([]Value, 0, len(s))
	for _, r := range s {
		out = append(out, String(string(r)))
	}
	return out
}

func isSurrogate(u uint16) bool {
	return u >= 0xd800 && u <= 0xdfff
}
