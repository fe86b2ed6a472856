package scrape

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// teamPaths are visited in order during the team pass; at most
// maxTeamPages of them.
var teamPaths = []string{
	"/team", "/about", "/people", "/leadership",
	"/staff", "/management", "/executive-team", "/our-team",
}

var teamIndicators = []string{
	"our team", "meet the team", "leadership", "founders",
	"executive", "staff", "people", "who we are",
}

// containerSelectors is the prioritized cascade tried against a team page;
// the generic card/grid selectors are a last resort.
var containerSelectors = []string{
	".team-member", ".employee", ".staff", ".person",
	".team-item", ".member", ".profile",
	"[class*='team']", "[class*='member']", "[class*='staff']",
	".card", ".grid-item", ".col", ".item",
}

// navLabels are strings that pass the shape check for a person name but
// are navigation chrome, not people.
var navLabels = map[string]struct{}{
	"home": {}, "about": {}, "contact": {}, "services": {},
	"products": {}, "blog": {}, "careers": {}, "team": {},
	"read more": {}, "learn more": {}, "view profile": {},
	"our team": {}, "get in touch": {},
}

var honorifics = []string{"dr.", "dr", "mr.", "mr", "mrs.", "mrs", "ms.", "ms", "prof.", "prof"}

var departmentKeywords = map[string][]string{
	"engineering": {"engineer", "developer", "cto", "technical", "software", "devops", "architect"},
	"sales":       {"sales", "account executive", "business development", "revenue"},
	"marketing":   {"marketing", "growth", "brand", "content", "communications"},
	"management":  {"ceo", "coo", "cfo", "founder", "president", "director", "chief", "head of", "vp", "manager"},
	"operations":  {"operations", "hr", "people ops", "finance", "admin", "support", "customer success"},
}

// departmentOrder keeps bucketing deterministic when a role matches
// several departments.
var departmentOrder = []string{"management", "engineering", "sales", "marketing", "operations"}

// teamLike confirms a page actually describes a team before container
// extraction runs, via keyword density in its text.
func teamLike(doc *goquery.Document) bool {
	text := strings.ToLower(doc.Text())
	hits := 0
	for _, kw := range teamIndicators {
		if strings.Contains(text, kw) {
			hits++
		}
	}
	return hits >= 2
}

// extractTeamMembers pulls person records out of the first container
// selector that matches anything on the page.
func extractTeamMembers(doc *goquery.Document, pageURL string) []TeamMember {
	var containers *goquery.Selection
	for _, sel := range containerSelectors {
		found := doc.Find(sel)
		if found.Length() > 0 {
			containers = found
			break
		}
	}
	if containers == nil {
		return nil
	}

	var members []TeamMember
	containers.Each(func(_ int, s *goquery.Selection) {
		m, ok := memberFromContainer(s, pageURL)
		if !ok {
			return
		}
		members = append(members, m)
	})
	return members
}

func memberFromContainer(s *goquery.Selection, pageURL string) (TeamMember, bool) {
	name := findPersonName(s)
	if name == "" {
		return TeamMember{}, false
	}

	m := TeamMember{Name: name, SourcePage: pageURL}
	m.Role = findRole(s, name)
	m.Department = bucketDepartment(m.Role)
	m.Bio = findBio(s)
	m.Phone = firstPhone(s.Text())
	m.PhotoURL = resolveAttr(s.Find("img").First().AttrOr("src", ""), pageURL)

	s.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href := a.AttrOr("href", "")
		if platformOf(href) != "" {
			m.SocialLinks = append(m.SocialLinks, href)
		}
	})

	// Email priority: explicit mailto beats a regex hit in the text.
	if mailto := s.Find("a[href^='mailto:']").First().AttrOr("href", ""); mailto != "" {
		addr := strings.TrimPrefix(mailto, "mailto:")
		if i := strings.IndexByte(addr, '?'); i >= 0 {
			addr = addr[:i]
		}
		m.Email = strings.ToLower(strings.TrimSpace(addr))
	} else if found := emailPattern.FindString(s.Text()); found != "" {
		m.Email = strings.ToLower(found)
	}

	return m, true
}

// findPersonName tries the name-bearing elements in priority order and
// returns the first candidate that passes the person-name check.
func findPersonName(s *goquery.Selection) string {
	candidates := []string{}
	s.Find("h1, h2, h3, h4, strong, b, .name").Each(func(_ int, el *goquery.Selection) {
		candidates = append(candidates, el.Text())
	})
	candidates = append(candidates, strings.Split(s.Text(), "\n")...)
	for _, c := range candidates {
		name := stripHonorific(strings.TrimSpace(c))
		if looksLikePersonName(name) {
			return name
		}
	}
	return ""
}

func findRole(s *goquery.Selection, name string) string {
	role := strings.TrimSpace(s.Find(".title, .role, .position, .job-title").First().Text())
	if role == "" {
		role = strings.TrimSpace(s.Find("em, small").First().Text())
	}
	if strings.EqualFold(role, name) {
		return ""
	}
	return role
}

func findBio(s *goquery.Selection) string {
	bio := ""
	s.Find("p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		if containsAny(strings.ToLower(p.AttrOr("class", "")), []string{"title", "role", "position"}) {
			return true
		}
		text := strings.TrimSpace(p.Text())
		if len(text) >= 20 && len(text) <= 500 {
			bio = text
			return false
		}
		return true
	})
	return bio
}

func firstPhone(text string) string {
	return strings.TrimSpace(phonePattern.FindString(text))
}

// looksLikePersonName accepts strings shaped like a human name: at least
// two capitalized words, a minimum length, and not a navigation label.
func looksLikePersonName(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) < 4 || len(s) > 60 {
		return false
	}
	if _, nav := navLabels[strings.ToLower(s)]; nav {
		return false
	}
	words := strings.Fields(s)
	if len(words) < 2 {
		return false
	}
	capitalized := 0
	for _, w := range words {
		r := rune(w[0])
		if r >= 'A' && r <= 'Z' {
			capitalized++
		}
	}
	return capitalized >= 2
}

func stripHonorific(name string) string {
	lower := strings.ToLower(name)
	for _, h := range honorifics {
		if strings.HasPrefix(lower, h+" ") {
			return strings.TrimSpace(name[len(h):])
		}
	}
	return name
}

func bucketDepartment(role string) string {
	if role == "" {
		return ""
	}
	lower := strings.ToLower(role)
	for _, dept := range departmentOrder {
		for _, kw := range departmentKeywords[dept] {
			if strings.Contains(lower, kw) {
				return dept
			}
		}
	}
	return ""
}

func resolveAttr(ref, pageURL string) string {
	if ref == "" {
		return ""
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return ref
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(u).String()
}
