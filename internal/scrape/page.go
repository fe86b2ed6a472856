package scrape

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9.\-+_]{1,64}@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phonePattern = regexp.MustCompile(`(?:\+?\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
)

// contactPaths are the common paths tried on every domain, beyond the root.
var contactPaths = []string{
	"/contact", "/contact-us", "/contactus",
	"/about", "/about-us", "/aboutus",
	"/team", "/support", "/help",
	"/customer-service", "/get-in-touch", "/connect",
}

// socialPlatforms gates both social-link extraction and the quick-scrape
// special case for domains that are themselves platforms.
var socialPlatforms = []string{
	"linkedin.com", "facebook.com", "twitter.com", "x.com",
	"instagram.com", "youtube.com", "tiktok.com",
	"whatsapp.com", "telegram.org",
}

var formKeywords = []string{"contact", "inquiry", "support", "lead", "signup"}

var headingKeywords = []string{
	"contact", "get in touch", "reach", "office", "location", "phone", "email",
}

// accumulator collects artifacts across pages before bundle assembly.
type accumulator struct {
	emailSources map[string]map[string]struct{}
	mailto       []string
	mailtoSeen   map[string]struct{}
	phones       []string
	phoneSeen    map[string]struct{}
	socials      []string
	socialSeen   map[string]struct{}
	forms        []ContactForm
	pages        []string
}

func newAccumulator() *accumulator {
	return &accumulator{
		emailSources: make(map[string]map[string]struct{}),
		mailtoSeen:   make(map[string]struct{}),
		phoneSeen:    make(map[string]struct{}),
		socialSeen:   make(map[string]struct{}),
	}
}

func (a *accumulator) addEmail(addr, source string) {
	addr = strings.ToLower(strings.TrimSpace(addr))
	if addr == "" || !emailPattern.MatchString(addr) {
		return
	}
	if a.emailSources[addr] == nil {
		a.emailSources[addr] = make(map[string]struct{})
	}
	a.emailSources[addr][source] = struct{}{}
}

func (a *accumulator) addPhone(raw string) {
	key := strings.TrimSpace(raw)
	if key == "" {
		return
	}
	if _, dup := a.phoneSeen[key]; dup {
		return
	}
	a.phoneSeen[key] = struct{}{}
	a.phones = append(a.phones, key)
}

func (a *accumulator) addSocial(link string) {
	if _, dup := a.socialSeen[link]; dup {
		return
	}
	a.socialSeen[link] = struct{}{}
	a.socials = append(a.socials, link)
}

// parsePage extracts every contact artifact from one fetched page.
func (a *accumulator) parsePage(pageURL string, doc *goquery.Document) {
	a.pages = append(a.pages, pageURL)

	doc.Find("a[href^='mailto:']").Each(func(_ int, s *goquery.Selection) {
		href := s.AttrOr("href", "")
		addr := strings.TrimPrefix(href, "mailto:")
		if i := strings.IndexByte(addr, '?'); i >= 0 {
			addr = addr[:i]
		}
		addr = strings.ToLower(strings.TrimSpace(addr))
		if addr == "" {
			return
		}
		a.addEmail(addr, pageURL)
		if _, dup := a.mailtoSeen[addr]; !dup {
			a.mailtoSeen[addr] = struct{}{}
			a.mailto = append(a.mailto, addr)
		}
	})

	text := doc.Text()
	for _, addr := range emailPattern.FindAllString(text, -1) {
		a.addEmail(addr, pageURL)
	}
	for _, num := range phonePattern.FindAllString(text, -1) {
		a.addPhone(num)
	}

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := s.AttrOr("href", "")
		if platformOf(href) != "" {
			a.addSocial(href)
		}
	})

	a.parseForms(pageURL, doc)
	a.parseContactHeadings(pageURL, doc)
}

// parseForms records forms whose action/id/class suggest a contact form.
func (a *accumulator) parseForms(pageURL string, doc *goquery.Document) {
	base, _ := url.Parse(pageURL)
	doc.Find("form").Each(func(_ int, s *goquery.Selection) {
		hint := strings.ToLower(strings.Join([]string{
			s.AttrOr("action", ""), s.AttrOr("id", ""), s.AttrOr("class", ""),
		}, " "))
		if !containsAny(hint, formKeywords) {
			return
		}

		action := s.AttrOr("action", "")
		if base != nil && action != "" {
			if ref, err := url.Parse(action); err == nil {
				action = base.ResolveReference(ref).String()
			}
		} else if action == "" {
			action = pageURL
		}

		method := strings.ToUpper(s.AttrOr("method", "GET"))
		var fields []string
		s.Find("input[name], textarea[name], select[name]").Each(func(_ int, in *goquery.Selection) {
			fields = append(fields, in.AttrOr("name", ""))
		})

		a.forms = append(a.forms, ContactForm{
			Action: action,
			Method: method,
			Fields: fields,
			Page:   pageURL,
		})
	})
}

// parseContactHeadings scans sibling text of contact-intent headings for
// emails and phones the broad page scan may render far from context.
func (a *accumulator) parseContactHeadings(pageURL string, doc *goquery.Document) {
	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		heading := strings.ToLower(s.Text())
		if !containsAny(heading, headingKeywords) {
			return
		}
		sibling := s.NextUntil("h1, h2, h3, h4, h5, h6").Text()
		for _, addr := range emailPattern.FindAllString(sibling, -1) {
			a.addEmail(addr, pageURL)
		}
		for _, num := range phonePattern.FindAllString(sibling, -1) {
			a.addPhone(num)
		}
	})
}

// scoredEmails assembles the final email list with per-address scores:
// 10 points per distinct source page, +20 if any source is a contact
// page, capped at 100.
func (a *accumulator) scoredEmails() []ScrapedEmail {
	out := make([]ScrapedEmail, 0, len(a.emailSources))
	for addr, sources := range a.emailSources {
		var pages []string
		contact := false
		for src := range sources {
			pages = append(pages, src)
			if strings.Contains(strings.ToLower(src), "contact") {
				contact = true
			}
		}
		score := 10 * len(pages)
		if contact {
			score += 20
		}
		if score > 100 {
			score = 100
		}
		out = append(out, ScrapedEmail{Address: addr, Sources: pages, Score: score})
	}
	return out
}

// platformOf returns the matching social platform for a link, or "".
func platformOf(link string) string {
	u, err := url.Parse(strings.ToLower(link))
	if err != nil {
		return ""
	}
	host := strings.TrimPrefix(u.Hostname(), "www.")
	for _, platform := range socialPlatforms {
		if host == platform || strings.HasSuffix(host, "."+platform) {
			return platform
		}
	}
	return ""
}

// isSocialPlatform reports whether the domain itself is a known platform.
func isSocialPlatform(domain string) bool {
	d := strings.ToLower(strings.TrimPrefix(domain, "www."))
	for _, platform := range socialPlatforms {
		if d == platform || strings.HasSuffix(d, "."+platform) {
			return true
		}
	}
	return false
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
