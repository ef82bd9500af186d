package eval

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf16"
)

// ToBoolean implements JS truthiness.
func ToBoolean(v Value) bool {
	switch v := v.(type) {
	case Undefined, Null:
		return false
	case Bool:
		return bool(v)
	case Number:
		f := float64(v)
		return f != 0 && !math.IsNaN(f)
	case String:
		return v != ""
	}
	return true
}

// ToPrimitive applies the default-hint conversion for the values the
// evaluator can produce: arrays join, plain objects stringify.
func ToPrimitive(v Value) Value {
	switch v := v.(type) {
	case *Array:
		return String(joinArray(v, ","))
	case *Object:
		return String("[object Object]")
	}
	return v
}

func joinArray(a *Array, sep string) string {
	parts := make([]string, len(a.Elems))
	for i, e := range a.Elems {
		switch e.(type) {
		case Undefined, Null, nil:
			parts[i] = ""
		default:
			parts[i] = ToString(e)
		}
	}
	return strings.Join(parts, sep)
}

// ToString implements JS string conversion.
func ToString(v Value) string {
	switch v := v.(type) {
	case Undefined:
		return "undefined"
	case Null:
		return "null"
	case Bool:
		if v {
			return "true"
		}
		return "false"
	case Number:
		return NumberToString(float64(v))
	case String:
		return string(v)
	}
	return ToString(ToPrimitive(v))
}

// ToNumber implements JS numeric conversion.
func ToNumber(v Value) float64 {
	switch v := v.(type) {
	case Undefined:
		return math.NaN()
	case Null:
		return 0
	case Bool:
		if v {
			return 1
		}
		return 0
	case Number:
		return float64(v)
	case String:
		return stringToNumber(string(v))
	}
	return ToNumber(ToPrimitive(v))
}

// NumberToString formats f the way Number.prototype.toString does for
// radix 10.
func NumberToString(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		mantissa, exp, _ := strings.Cut(s, "e")
		sign := exp[:1]
		digits := strings.TrimLeft(exp[1:], "0")
		if digits == "" {
			digits = "0"
		}
		return mantissa + "e" + sign + digits
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func stringToNumber(s string) float64 {
	s = strings.TrimFunc(s, isJSSpace)
	switch s {
	case "":
		return 0
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}

	lower := strings.ToLower(s)
	for prefix, base := range map[string]int{"0x": 16, "0o": 8, "0b": 2} {
		if strings.HasPrefix(lower, prefix) {
			n, err := strconv.ParseUint(lower[2:], base, 64)
			if err != nil {
				return math.NaN()
			}
			return float64(n)
		}
	}

	// ParseFloat accepts forms JS rejects (hex floats, "inf", "nan", "_").
	for _, r := range lower {
		if !strings.ContainsRune("0123456789.e+-", r) {
			return math.NaN()
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return f
		}
		return math.NaN()
	}
	return f
}

func isJSSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ', '\u00a0', '\u1680', '\u2028', '\u2029', '\u202f', '\u205f', '\u3000', '\ufeff':
		return true
	}
	return r >= '\u2000' && r <= '\u200a'
}

func toUint32(v Value) uint32 {
	f := ToNumber(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	f = math.Mod(math.Trunc(f), 1<<32)
	if f < 0 {
		f += 1 << 32
	}
	return uint32(f)
}

func toInt32(v Value) int32 {
	return int32(toUint32(v))
}

// TypeOf implements the typeof operator.
func TypeOf(v Value) string {
	switch v.(type) {
	case Undefined:
		return "undefined"
	case Null, *Array, *Object:
		return "object"
	case Bool:
		return "boolean"
	case Number:
		return "number"
	case String:
		return "string"
	}
	return "undefined"
}

// StrictEquals implements ===.
func StrictEquals(a, b Value) bool {
	switch a := a.(type) {
	case Undefined:
		_, ok := b.(Undefined)
		return ok
	case Null:
		_, ok := b.(Null)
		return ok
	case Bool:
		bb, ok := b.(Bool)
		return ok && a == bb
	case Number:
		bn, ok := b.(Number)
		return ok && float64(a) == float64(bn)
	case String:
		bs, ok := b.(String)
		return ok && a == bs
	case *Array:
		bb, ok := b.(*Array)
		return ok && a == bb
	case *Object:
		bb, ok := b.(*Object)
		return ok && a == bb
	}
	return false
}

// LooseEquals implements ==.
func LooseEquals(a, b Value) bool {
	if a.Kind() == b.Kind() {
		return StrictEquals(a, b)
	}
	if isNullish(a) && isNullish(b) {
		return true
	}
	if isNullish(a) || isNullish(b) {
		return false
	}

	switch {
	case a.Kind() == KindNumber && b.Kind() == KindString:
		return float64(a.(Number)) == ToNumber(b)
	case a.Kind() == KindString && b.Kind() == KindNumber:
		return ToNumber(a) == float64(b.(Number))
	case a.Kind() == KindBool:
		return LooseEquals(Number(ToNumber(a)), b)
	case b.Kind() == KindBool:
		return LooseEquals(a, Number(ToNumber(b)))
	case isReference(a) && !isReference(b):
		return LooseEquals(ToPrimitive(a), b)
	case !isReference(a) && isReference(b):
		return LooseEquals(a, ToPrimitive(b))
	}
	return false
}

func isNullish(v Value) bool {
	switch v.(type) {
	case Undefined, Null:
		return true
	}
	return false
}

func isReference(v Value) bool {
	switch v.(type) {
	case *Array, *Object:
		return true
	}
	return false
}

// compareStrings orders strings by UTF-16 code units, as JS does.
func compareStrings(a, b string) int {
	ua := utf16.Encode([]rune(a))
	ub := utf16.Encode([]rune(b))
	for i := 0; i < len(ua) && i < len(ub); i++ {
		if ua[i] != ub[i] {
			if ua[i] < ub[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(ua) < len(ub):
		return -1
	case len(ua) > len(ub):
		return 1
	}
	return 0
}

// utf16Units returns the UTF-16 code units of s.
func utf16Units(s string) []uint16 {
	return utf16.Encode([]rune(s))
}
