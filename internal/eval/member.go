package eval

// objectPrototypeKeys are the members every plain object inherits. A read
// that would land on one of them can not be folded to a plain value.
var objectPrototypeKeys = map[string]struct{}{
	"constructor":          {},
	"hasOwnProperty":       {},
	"isPrototypeOf":        {},
	"propertyIsEnumerable": {},
	"toLocaleString":       {},
	"toString":             {},
	"valueOf":              {},
	"__proto__":            {},
	"__defineGetter__":     {},
	"__defineSetter__":     {},
	"__lookupGetter__":     {},
	"__lookupSetter__":     {},
}

func isObjectPrototypeKey(key string) bool {
	_, ok := objectPrototypeKeys[key]
	return ok
}

// getMember reads an own data property. Nullish targets are handled by
// the caller. Reads that would resolve through a built-in prototype fail.
func getMember(target Value, key string) (Value, bool) {
	switch t := target.(type) {
	case *Object:
		if v, ok := t.Get(key); ok {
			return v, true
		}
		if isObjectPrototypeKey(key) {
			return nil, false
		}
		return Undefined{}, true

	case *Array:
		if key == "length" {
			return Number(len(t.Elems)), true
		}
		if idx, ok := arrayIndex(key); ok {
			if int(idx) < len(t.Elems) {
				return t.Elems[idx], true
			}
			return Undefined{}, true
		}
		return nil, false

	case String:
		units := utf16Units(string(t))
		if key == "length" {
			return Number(len(units)), true
		}
		if idx, ok := arrayIndex(key); ok {
			if int(idx) >= len(units) {
				return Undefined{}, true
			}
			if isSurrogate(units[idx]) {
				return nil, false
			}
			return String(rune(units[idx])), true
		}
		return nil, false
	}
	return nil, false
}
