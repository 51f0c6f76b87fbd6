package store

import (
	"strconv"
	"strings"
	"unicode"
)

// dateLayout renders project dates as "14 October".
const dateLayout = "2 January"

// dayLayout stamps the work timer's last active day.
const dayLayout = "2006-01-02"

// digitsOnly drops every non-digit rune.
func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) && r < unicode.MaxASCII {
			return r
		}
		return -1
	}, s)
}

// formatPrice groups the digits of s in thousands with spaces and appends the
// rouble sign. ok is false when s holds no usable number.
func formatPrice(s string) (string, bool) {
	n, err := strconv.ParseInt(digitsOnly(s), 10, 64)
	if err != nil {
		return "", false
	}
	raw := strconv.FormatInt(n, 10)
	var b strings.Builder
	for i, r := range raw {
		if i > 0 && (len(raw)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String() + " ₽", true
}

func clampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
