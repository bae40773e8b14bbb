package numeric

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ParseNumber converts loosely formatted user text into a number.
// It is total: any string, including garbage or partially typed input,
// resolves to a finite float64. Commas are treated as decimal points.
// When several dots survive normalization, the last one is the decimal
// separator and the earlier ones are discarded as thousands separators.
func ParseNumber(s string) float64 {
	if strings.TrimSpace(s) == "" {
		return 0
	}

	var b strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			// drop whitespace so a leading minus can still follow it
		case r == ',':
			b.WriteByte('.')
		case r >= '0' && r <= '9', r == '.':
			b.WriteRune(r)
		case r == '-' && b.Len() == 0:
			b.WriteByte('-')
		}
	}
	normalized := b.String()
	if normalized == "" {
		return 0
	}

	if parts := strings.Split(normalized, "."); len(parts) > 2 {
		decimal := parts[len(parts)-1]
		integer := strings.Join(parts[:len(parts)-1], "")
		normalized = integer + "." + decimal
	}

	v, err := strconv.ParseFloat(normalized, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Sanitize strips every character that cannot be part of a numeric value
// (anything but digits, dot and comma). Applied per keystroke on numeric
// fields; the raw text stays the source of truth and is only converted
// through ParseNumber at read time.
func Sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' {
			return r
		}
		return -1
	}, s)
}
