package goquery

import (
	"regexp"
	"strings"
)

// pricePatterns match currency-symbol-prefixed amounts in page text.
// Order matters: the first pattern to match wins.
var pricePatterns = []struct {
	currency string
	re       *regexp.Regexp
}{
	{"INR", regexp.MustCompile(`(?:₹|Rs\.?\s)\s*([0-9][0-9,]*(?:\.[0-9]+)?)`)},
	{"USD", regexp.MustCompile(`\$\s*([0-9][0-9,]*(?:\.[0-9]+)?)`)},
	{"EUR", regexp.MustCompile(`€\s*([0-9][0-9,]*(?:\.[0-9]+)?)`)},
	{"GBP", regexp.MustCompile(`£\s*([0-9][0-9,]*(?:\.[0-9]+)?)`)},
}

// MatchPrice scans text for a currency-symbol-prefixed amount and returns
// the numeric value (commas stripped) and ISO currency code of the first
// match. Returns ok=false when no pattern matches.
func MatchPrice(text string) (amount, currency string, ok bool) {
	for _, p := range pricePatterns {
		if m := p.re.FindStringSubmatch(text); m != nil {
			return strings.ReplaceAll(m[1], ",", ""), p.currency, true
		}
	}
	return "", "", false
}
