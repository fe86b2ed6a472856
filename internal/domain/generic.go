package domain

import "strings"

// GenericPolicy rejects domain guesses too generic to plausibly belong to
// one company. The lists are hand-tuned and injectable so deployments can
// adjust them without code changes.
type GenericPolicy struct {
	Words   map[string]struct{}
	Domains map[string]struct{}
}

// DefaultGenericPolicy mirrors the stock deny lists.
func DefaultGenericPolicy() GenericPolicy {
	words := []string{
		"company", "solutions", "services", "group", "holdings",
		"enterprises", "consulting", "partners", "associates",
		"international", "global", "national", "business", "corporate",
		"office", "info", "mail", "email", "web", "online", "home",
	}
	domains := []string{
		"company.com", "solutions.com", "services.com", "group.com",
		"business.com", "info.com", "mail.com", "email.com", "web.com",
		"online.com", "home.com", "consulting.com",
	}
	p := GenericPolicy{
		Words:   make(map[string]struct{}, len(words)),
		Domains: make(map[string]struct{}, len(domains)),
	}
	for _, w := range words {
		p.Words[w] = struct{}{}
	}
	for _, d := range domains {
		p.Domains[d] = struct{}{}
	}
	return p
}

// IsGeneric reports whether the domain's registrable label is on a deny
// list. A generic domain is discarded even if syntactically valid.
func (p GenericPolicy) IsGeneric(domain string) bool {
	d := strings.ToLower(strings.TrimPrefix(domain, "www."))
	if _, bad := p.Domains[d]; bad {
		return true
	}
	label := d
	if i := strings.IndexByte(label, '.'); i > 0 {
		label = label[:i]
	}
	_, bad := p.Words[label]
	return bad
}
