// Package phone cleans, validates, and normalizes phone numbers scraped
// from web pages.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// Number is a cleaned, validated phone number.
type Number struct {
	Raw    string `json:"raw"`
	E164   string `json:"e164"`
	Mobile bool   `json:"mobile"`
}

var labelPrefixes = []string{"tel:", "phone:", "mobile:", "fax:"}

// Clean strips label prefixes and punctuation, keeping digits and a leading
// plus. Bare 10-digit numbers are assumed US and get a +1 prefix; 11-digit
// numbers starting with 1 get a bare plus.
func Clean(raw string) string {
	s := strings.TrimSpace(strings.ToLower(raw))
	for _, p := range labelPrefixes {
		s = strings.TrimSpace(strings.TrimPrefix(s, p))
	}
	hasPlus := strings.HasPrefix(s, "+")
	digits := Digits(s)
	switch {
	case hasPlus:
		return "+" + digits
	case len(digits) == 10:
		return "+1" + digits
	case len(digits) == 11 && strings.HasPrefix(digits, "1"):
		return "+" + digits
	default:
		return digits
	}
}

// Digits returns only the decimal digits of s, used as a dedup key.
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// junk numbers that pass the length checks but never belong to a business
var denied = map[string]struct{}{
	"1234567890": {},
	"1111111111": {},
	"0000000000": {},
}

// Valid reports whether a cleaned number looks like a real phone number:
// 10 to 15 digits, at least 4 distinct digits, and not a known junk value.
func Valid(cleaned string) bool {
	digits := Digits(cleaned)
	if len(digits) < 10 || len(digits) > 15 {
		return false
	}
	distinct := map[rune]struct{}{}
	for _, r := range digits {
		distinct[r] = struct{}{}
	}
	if len(distinct) < 4 {
		return false
	}
	if _, bad := denied[digits]; bad {
		return false
	}
	if _, bad := denied[strings.TrimPrefix(digits, "1")]; bad {
		return false
	}
	return true
}

// Parse cleans and validates raw, then normalizes it to E.164 and
// classifies mobile numbers via libphonenumber metadata. Numbers that pass
// the format check but cannot be parsed keep their cleaned form.
func Parse(raw string) (Number, bool) {
	cleaned := Clean(raw)
	if !Valid(cleaned) {
		return Number{}, false
	}
	num, err := phonenumbers.Parse(cleaned, "US")
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return Number{Raw: raw, E164: cleaned}, true
	}
	kind := phonenumbers.GetNumberType(num)
	return Number{
		Raw:    raw,
		E164:   phonenumbers.Format(num, phonenumbers.E164),
		Mobile: kind == phonenumbers.MOBILE || kind == phonenumbers.FIXED_LINE_OR_MOBILE,
	}, true
}
