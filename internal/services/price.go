package services

import (
	"fmt"
	"regexp"
	"strings"
)

// At most eight integer digits, matching the numeric(10,2) price column.
var priceRe = regexp.MustCompile(`^0*\d{1,8}(\.\d{1,2})?$`)

// ValidPrice reports whether s is a non-negative decimal below 100,000,000 with
// at most two decimals.
func ValidPrice(s string) bool {
	return priceRe.MatchString(s)
}

// CanonicalPrice pads a valid price to exactly two decimals, e.g. "19.9" -> "19.90".
func CanonicalPrice(s string) (string, error) {
	if !ValidPrice(s) {
		return "", fmt.Errorf("invalid price %q", s)
	}
	whole, frac, _ := strings.Cut(s, ".")
	whole = strings.TrimLeft(whole, "0")
	if whole == "" {
		whole = "0"
	}
	return whole + "." + (frac + "00")[:2], nil
}

// DisplayPrice renders a price with thousands separators and no trailing
// zero decimals, e.g. "12500.50" -> "12,500.5".
func DisplayPrice(s string) string {
	whole, frac, _ := strings.Cut(s, ".")
	frac = strings.TrimRight(frac, "0")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if frac != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}
