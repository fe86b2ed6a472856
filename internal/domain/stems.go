package domain

import "strings"

const maxStems = 8

var corporateSuffixes = map[string]struct{}{
	"inc": {}, "llc": {}, "ltd": {}, "corp": {}, "co": {},
	"company": {}, "corporation": {}, "limited": {}, "plc": {},
}

var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "of": {}, "for": {}, "a": {}, "an": {},
}

// splitWords breaks a normalized name into lowercase alphanumeric words,
// dropping corporate suffixes.
func splitWords(normalized string) []string {
	fields := strings.FieldsFunc(normalized, func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9')
	})
	var words []string
	for _, w := range fields {
		if _, skip := corporateSuffixes[w]; skip {
			continue
		}
		words = append(words, w)
	}
	return words
}

// significantWords keeps words long enough to identify the company.
func significantWords(normalized string) []string {
	var out []string
	for _, w := range splitWords(normalized) {
		if _, stop := stopwords[w]; stop {
			continue
		}
		if len(w) > 3 {
			out = append(out, w)
		}
	}
	return out
}

// GenerateStems produces up to 8 candidate domain stems from a normalized
// company name. Deterministic; stems shorter than 3 characters are dropped.
func GenerateStems(normalized string) []string {
	words := splitWords(normalized)
	var raw []string
	switch len(words) {
	case 0:
	case 1:
		w := words[0]
		raw = []string{w, w + "tech", w + "ai", w + "systems", "get" + w}
	case 2:
		a, b := words[0], words[1]
		raw = []string{a + b, a, b, a + "-" + b, a[:1] + b}
	default:
		first, last := words[0], words[len(words)-1]
		acronym := ""
		for _, w := range words {
			acronym += w[:1]
		}
		raw = []string{first + last, first, last, acronym, first + acronym}
		for _, kw := range significantWords(normalized) {
			if kw != first && kw != last {
				raw = append(raw, kw, first+kw)
			}
		}
	}

	seen := make(map[string]struct{}, len(raw))
	var stems []string
	for _, s := range raw {
		if len(s) <= 2 {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		stems = append(stems, s)
		if len(stems) == maxStems {
			break
		}
	}
	return stems
}

// TLDPriority orders TLD guesses by lexical hints in the company name.
// Short hints like "ai" must match a whole word so names such as
// "retail" do not trip them.
func TLDPriority(normalized string) []string {
	words := splitWords(normalized)
	containsAny := func(hints ...string) bool {
		for _, h := range hints {
			if len(h) >= 4 && strings.Contains(normalized, h) {
				return true
			}
			for _, w := range words {
				if w == h {
					return true
				}
			}
		}
		return false
	}
	switch {
	case containsAny("ai", "tech", "software", "digital", "data"):
		return []string{".ai", ".com", ".io", ".tech", ".org"}
	case containsAny("venture", "capital", "fund", "invest"):
		return []string{".vc", ".com", ".capital", ".io"}
	case containsAny("government", "ministry", "department", "agency"):
		return []string{".gov", ".org", ".com"}
	default:
		return []string{".com", ".org", ".net", ".io", ".ai", ".co"}
	}
}
