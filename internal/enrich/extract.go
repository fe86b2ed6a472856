package enrich

import (
	"regexp"
	"strings"
)

var (
	emailInText = regexp.MustCompile(`[a-zA-Z0-9.\-+_]{1,64}@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

	// "San Francisco, CA" style, or prose like "based in Austin".
	cityStatePattern = regexp.MustCompile(`\b([A-Z][a-z]+(?: [A-Z][a-z]+)*, [A-Z]{2})\b`)
	basedInPattern   = regexp.MustCompile(`(?i)(?:based|located) in ([A-Z][A-Za-z]+(?: [A-Z][A-Za-z]+)*)`)
)

var honorificPrefixes = []string{"dr. ", "dr ", "mr. ", "mr ", "mrs. ", "mrs ", "ms. ", "ms ", "prof. ", "prof "}

var titleKeywords = []string{
	"ceo", "cto", "cfo", "coo", "founder", "president", "director",
	"engineer", "developer", "manager", "officer", "head of", "vp",
	"vice president", "lead", "consultant", "analyst", "partner",
}

var companySuffixHints = []string{
	"inc", "llc", "ltd", "corp", "co", "company", "technologies",
	"systems", "solutions", "labs", "ventures", "capital", "group",
	"studio", "software", "media", "partners",
}

var industryKeywords = map[string][]string{
	"technology":    {"software", "saas", " tech", "technology", " ai ", "artificial intelligence", "cloud", "data"},
	"finance":       {"bank", "financial", "fintech", "investment", "capital", "insurance"},
	"healthcare":    {"health", "medical", "biotech", "pharma", "clinic"},
	"retail":        {"retail", "ecommerce", "e-commerce", "commerce", "store", "shop"},
	"manufacturing": {"manufactur", "factory", "industrial"},
	"education":     {"education", "university", "school", "learning"},
	"real estate":   {"real estate", "property", "realty"},
	"marketing":     {"marketing", "advertising", "agency", "media"},
}

var industryOrder = []string{
	"technology", "finance", "healthcare", "retail",
	"manufacturing", "education", "real estate", "marketing",
}

// normalizeRecord fills missing person/company/title fields by parsing the
// record's raw text line.
func normalizeRecord(rec InputRecord) InputRecord {
	if rec.RawText == "" {
		return rec
	}
	person, company, title := parseRawLine(rec.RawText)
	if rec.PersonName == "" {
		rec.PersonName = person
	}
	if rec.CompanyName == "" {
		rec.CompanyName = company
	}
	if rec.JobTitle == "" {
		rec.JobTitle = title
	}
	if rec.Location == "" {
		rec.Location = extractLocation(rec.RawText)
	}
	if rec.Industry == "" {
		rec.Industry = extractIndustry(rec.RawText)
	}
	return rec
}

// parseRawLine splits a free-text line like "John Smith, CEO, Acme Inc"
// into its person, company, and title parts. First match wins per slot.
func parseRawLine(line string) (person, company, title string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", "", ""
	}
	for _, sep := range []string{" - ", " | ", " at ", " @ "} {
		line = strings.ReplaceAll(line, sep, ",")
	}
	parts := strings.Split(line, ",")
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		switch {
		case person == "" && looksLikePerson(part):
			person = stripHonorific(part)
		case title == "" && looksLikeTitle(part):
			title = part
		case company == "":
			company = part
		}
	}
	return person, company, title
}

// looksLikePerson mirrors the person-name shape check: two or more
// capitalized words with no company or title markers.
func looksLikePerson(s string) bool {
	if len(s) < 4 || len(s) > 60 {
		return false
	}
	lower := strings.ToLower(s)
	for _, hint := range companySuffixHints {
		if strings.HasSuffix(lower, " "+hint) || lower == hint {
			return false
		}
	}
	if looksLikeTitle(s) {
		return false
	}
	words := strings.Fields(s)
	if len(words) < 2 || len(words) > 4 {
		return false
	}
	for _, w := range words {
		r := rune(w[0])
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

func looksLikeTitle(s string) bool {
	lower := " " + strings.ToLower(s) + " "
	for _, kw := range titleKeywords {
		if strings.Contains(lower, " "+kw) {
			return true
		}
	}
	return false
}

func stripHonorific(name string) string {
	lower := strings.ToLower(name)
	for _, h := range honorificPrefixes {
		if strings.HasPrefix(lower, h) {
			return strings.TrimSpace(name[len(h):])
		}
	}
	return name
}

func extractLocation(text string) string {
	if m := cityStatePattern.FindString(text); m != "" {
		return m
	}
	if m := basedInPattern.FindStringSubmatch(text); len(m) == 2 {
		return m[1]
	}
	return ""
}

func extractIndustry(text string) string {
	lower := " " + strings.ToLower(text) + " "
	for _, industry := range industryOrder {
		for _, kw := range industryKeywords[industry] {
			if strings.Contains(lower, kw) {
				return industry
			}
		}
	}
	return ""
}

// emailsIn returns the addresses mentioned in a text snippet, lowercased.
func emailsIn(text string) []string {
	var out []string
	seen := map[string]struct{}{}
	for _, m := range emailInText.FindAllString(text, -1) {
		addr := strings.ToLower(m)
		if _, dup := seen[addr]; dup {
			continue
		}
		seen[addr] = struct{}{}
		out = append(out, addr)
	}
	return out
}

// splitPersonName yields first/last for pattern generation.
func splitPersonName(full string) (string, string) {
	words := strings.Fields(full)
	switch len(words) {
	case 0:
		return "", ""
	case 1:
		return words[0], ""
	default:
		return words[0], words[len(words)-1]
	}
}
