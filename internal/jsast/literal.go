package jsast

import (
	"math"
	"math/big"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// decodeStringLiteral turns a quoted JS string literal into its value.
func decodeStringLiteral(raw string) (string, bool) {
	if len(raw) < 2 {
		return "", false
	}
	quote := raw[0]
	if (quote != '"' && quote != '\'') || raw[len(raw)-1] != quote {
		return "", false
	}
	return unescape(raw[1 : len(raw)-1])
}

// cookTemplate produces the cooked value of a template quasi. Line
// terminators are normalised to \n before escapes are processed.
func cookTemplate(raw string) (string, bool) {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")
	return unescape(raw)
}

// unescape decodes JS escape sequences. Work happens in UTF-16 code
// units so that escaped surrogate pairs combine the way they do in JS.
func unescape(s string) (string, bool) {
	if !strings.ContainsRune(s, '\\') {
		return s, true
	}

	units := make([]uint16, 0, len(s))
	appendRune := func(r rune) {
		units = utf16.AppendRune(units, r)
	}

	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r != '\\' {
			appendRune(r)
			i += size
			continue
		}
		i++
		if i >= len(s) {
			return "", false
		}
		c, size := utf8.DecodeRuneInString(s[i:])
		i += size
		switch c {
		case 'n':
			appendRune('\n')
		case 't':
			appendRune('\t')
		case 'r':
			appendRune('\r')
		case 'b':
			appendRune('\b')
		case 'f':
			appendRune('\f')
		case 'v':
			appendRune('\v')
		case '0':
			if i < len(s) && s[i] >= '0' && s[i] <= '9' {
				// legacy octal escapes are a syntax error in modules
				return "", false
			}
			appendRune(0)
		case 'x':
			if i+2 > len(s) {
				return "", false
			}
			v, err := strconv.ParseUint(s[i:i+2], 16, 8)
			if err != nil {
				return "", false
			}
			appendRune(rune(v))
			i += 2
		case 'u':
			if i < len(s) && s[i] == '{' {
				end := strings.IndexByte(s[i:], '}')
				if end < 0 {
					return "", false
				}
				v, err := strconv.ParseUint(s[i+1:i+end], 16, 32)
				if err != nil || v > utf8.MaxRune {
					return "", false
				}
				appendRune(rune(v))
				i += end + 1
				continue
			}
			if i+4 > len(s) {
				return "", false
			}
			v, err := strconv.ParseUint(s[i:i+4], 16, 16)
			if err != nil {
				return "", false
			}
			units = append(units, uint16(v))
			i += 4
		case '\r':
			if i < len(s) && s[i] == '\n' {
				i++
			}
		case '\n', '\u2028', '\u2029':
			// line continuation
		default:
			if c >= '1' && c <= '9' {
				return "", false
			}
			appendRune(c)
		}
	}
	return string(utf16.Decode(units)), true
}

// parseNumber parses a JS numeric literal. BigInt literals and legacy
// octal forms are rejected.
func parseNumber(raw string) (float64, bool) {
	s := strings.ReplaceAll(raw, "_", "")
	if s == "" || strings.HasSuffix(s, "n") {
		return 0, false
	}

	lower := strings.ToLower(s)
	for prefix, base := range map[string]int{"0x": 16, "0o": 8, "0b": 2} {
		if strings.HasPrefix(lower, prefix) {
			n, ok := new(big.Int).SetString(lower[2:], base)
			if !ok {
				return 0, false
			}
			f, _ := new(big.Float).SetInt(n).Float64()
			return f, true
		}
	}

	if len(s) > 1 && s[0] == '0' && s[1] >= '0' && s[1] <= '9' {
		return 0, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			if math.IsInf(f, 0) || f == 0 {
				return f, true
			}
		}
		return 0, false
	}
	return f, true
}
