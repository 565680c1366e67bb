package metrics

import (
	"math"
	"strconv"
	"strings"
)

// NumberFormat controls locale-aware numeric coercion. Zero separators mean
// auto-detect per value.
type NumberFormat struct {
	DecimalSeparator   rune
	ThousandsSeparator rune
}

// ParseNumber coerces an export cell to a float. It accepts "%" suffixes,
// non-breaking spaces and either ',' or '.' as the decimal separator.
func ParseNumber(s string, nf NumberFormat) (float64, bool) {
	raw := strings.TrimSpace(s)
	raw = strings.TrimSuffix(raw, "%")
	raw = strings.ReplaceAll(raw, "\u00A0", " ")
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	dec := nf.DecimalSeparator
	thou := nf.ThousandsSeparator
	if dec == 0 {
		cpos := strings.LastIndex(raw, ",")
		dpos := strings.LastIndex(raw, ".")
		switch {
		case cpos >= 0 && dpos >= 0:
			if cpos > dpos {
				dec, thou = ',', '.'
			} else {
				dec, thou = '.', ','
			}
		case cpos >= 0 && looksLikeThousands(raw, cpos):
			dec, thou = '.', ','
		case cpos >= 0:
			dec = ','
		default:
			dec = '.'
		}
	}
	if thou == 0 {
		for _, sep := range []rune{',', '.', ' '} {
			if sep != dec {
				raw = strings.ReplaceAll(raw, string(sep), "")
			}
		}
	} else if thou != dec {
		raw = strings.ReplaceAll(raw, string(thou), "")
	}
	if dec != '.' {
		raw = strings.ReplaceAll(raw, string(dec), ".")
	}
	if !plainDecimal(raw) {
		return 0, false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// plainDecimal reports whether raw holds only digits, one optional leading
// sign and '.'; hex floats, exponents and "Inf" are not export values.
func plainDecimal(raw string) bool {
	for i, r := range raw {
		switch {
		case r >= '0' && r <= '9', r == '.':
		case (r == '+' || r == '-') && i == 0:
		default:
			return false
		}
	}
	return true
}

// looksLikeThousands treats "1,520" (exactly three digits after a single
// comma, non-zero integer part) as a grouped integer, which is how BMR values
// are exported. "0,385" stays a decimal.
func looksLikeThousands(raw string, cpos int) bool {
	if strings.Count(raw, ",") > 1 {
		return true
	}
	head := strings.TrimLeft(raw[:cpos], "+-")
	tail := raw[cpos+1:]
	if len(tail) != 3 || head == "" || head == "0" {
		return false
	}
	for _, r := range tail {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// FormatNumber renders f in the shortest form that parses back to f.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
