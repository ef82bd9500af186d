package eval

import (
	"math"
)

// unary applies a prefix operator. ok is false for operators the
// evaluator does not fold (delete) and anything that would throw.
func unary(op string, v Value) (Value, bool) {
	switch op {
	case "+":
		return Number(ToNumber(v)), true
	case "-":
		return Number(-ToNumber(v)), true
	case "!":
		return Bool(!ToBoolean(v)), true
	case "~":
		return Number(float64(^toInt32(v))), true
	case "void":
		return Undefined{}, true
	case "typeof":
		return String(TypeOf(v)), true
	}
	return nil, false
}

// binary applies an arithmetic, comparison, bitwise or `in` operator to
// already-folded operands.
func binary(op string, a, b Value) (Value, bool) {
	switch op {
	case "+":
		pa, pb := ToPrimitive(a), ToPrimitive(b)
		if pa.Kind() == KindString || pb.Kind() == KindString {
			return String(ToString(pa) + ToString(pb)), true
		}
		return Number(ToNumber(pa) + ToNumber(pb)), true
	case "-":
		return Number(ToNumber(a) - ToNumber(b)), true
	case "*":
		return Number(ToNumber(a) * ToNumber(b)), true
	case "/":
		return Number(ToNumber(a) / ToNumber(b)), true
	case "%":
		return Number(math.Mod(ToNumber(a), ToNumber(b))), true
	case "**":
		return Number(pow(ToNumber(a), ToNumber(b))), true

	case "==":
		return Bool(LooseEquals(a, b)), true
	case "!=":
		return Bool(!LooseEquals(a, b)), true
	case "===":
		return Bool(StrictEquals(a, b)), true
	case "!==":
		return Bool(!StrictEquals(a, b)), true

	case "<":
		r, ok := lessThan(a, b)
		return Bool(ok && r), true
	case ">":
		r, ok := lessThan(b, a)
		return Bool(ok && r), true
	case "<=":
		r, ok := lessThan(b, a)
		return Bool(ok && !r), true
	case ">=":
		r, ok := lessThan(a, b)
		return Bool(ok && !r), true

	case "&":
		return Number(float64(toInt32(a) & toInt32(b))), true
	case "|":
		return Number(float64(toInt32(a) | toInt32(b))), true
	case "^":
		return Number(float64(toInt32(a) ^ toInt32(b))), true
	case "<<":
		return Number(float64(toInt32(a) << (toUint32(b) & 31))), true
	case ">>":
		return Number(float64(toInt32(a) >> (toUint32(b) & 31))), true
	case ">>>":
		return Number(float64(toUint32(a) >> (toUint32(b) & 31))), true

	case "in":
		return hasProperty(b, ToString(ToPrimitive(a)))
	}
	return nil, false
}

// lessThan is the abstract relational comparison. The second result is
// false when either side converts to NaN (the "undefined" outcome).
func lessThan(a, b Value) (bool, bool) {
	pa, pb := ToPrimitive(a), ToPrimitive(b)
	if sa, ok := pa.(String); ok {
		if sb, ok := pb.(String); ok {
			return compareStrings(string(sa), string(sb)) < 0, true
		}
	}
	na, nb := ToNumber(pa), ToNumber(pb)
	if math.IsNaN(na) || math.IsNaN(nb) {
		return false, false
	}
	return na < nb, true
}

func pow(x, y float64) float64 {
	// Go returns 1 for (±1)**±Inf; JS returns NaN.
	if math.IsInf(y, 0) && math.Abs(x) == 1 {
		return math.NaN()
	}
	if math.IsNaN(y) {
		return math.NaN()
	}
	return math.Pow(x, y)
}

// hasProperty implements `key in target`. A primitive target throws in
// JS, so it fails the fold.
func hasProperty(target Value, key string) (Value, bool) {
	switch t := target.(type) {
	case *Object:
		if _, ok := t.Get(key); ok {
			return Bool(true), true
		}
		if isObjectPrototypeKey(key) {
			return Bool(true), true
		}
		return Bool(false), true
	case *Array:
		if key == "length" {
			return Bool(true), true
		}
		if idx, ok := arrayIndex(key); ok {
			if int(idx) >= len(t.Elems) {
				return Bool(false), true
			}
			if t.Elems[idx].Kind() == KindUndefined {
				// holes and explicit undefined look the same once folded
				return nil, false
			}
			return Bool(true), true
		}
		// array prototype members would be inherited
		return nil, false
	}
	return nil, false
}
