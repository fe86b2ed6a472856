// Package email generates, validates, and scores candidate email
// addresses.
package email

import "strings"

// GeneratePatterns produces candidate addresses for a person at a domain.
// Pure and deterministic: same inputs always yield the same slice. Local
// parts are never empty and never start or end with a dot.
func GeneratePatterns(first, last, domain string) []string {
	first = lettersOnly(first)
	last = lettersOnly(last)
	if domain == "" || (first == "" && last == "") {
		return nil
	}

	var locals []string
	switch {
	case first != "" && last != "":
		locals = []string{
			first + "." + last,
			first + last,
			first[:1] + last,
			first + last[:1],
			first,
			first[:1] + "." + last,
			last + "." + first,
			last + first,
			last,
		}
	case first != "":
		locals = []string{first}
	default:
		locals = []string{last}
	}

	seen := make(map[string]struct{}, len(locals))
	var out []string
	for _, local := range locals {
		if local == "" || strings.HasPrefix(local, ".") || strings.HasSuffix(local, ".") {
			continue
		}
		addr := local + "@" + domain
		if _, dup := seen[addr]; dup {
			continue
		}
		seen[addr] = struct{}{}
		out = append(out, addr)
	}
	return out
}

func lettersOnly(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
