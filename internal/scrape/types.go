// Package scrape fetches a bounded, polite set of pages on a resolved
// domain and extracts contact artifacts from them.
package scrape

import "net/http"

// Page is one fetched page.
type Page struct {
	URL        string
	FinalURL   string
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// ScrapedEmail is an address found on one or more pages, scored by how
// many distinct pages it appeared on and whether any was a contact page.
type ScrapedEmail struct {
	Address string   `json:"address"`
	Sources []string `json:"sources"`
	Score   int      `json:"score"`
}

// ContactForm describes a form that looks like a contact/lead form.
type ContactForm struct {
	Action string   `json:"action"`
	Method string   `json:"method"`
	Fields []string `json:"fields"`
	Page   string   `json:"page"`
}

// TeamMember is a person extracted from a team-like page container.
type TeamMember struct {
	Name        string   `json:"name"`
	Role        string   `json:"role,omitempty"`
	Department  string   `json:"department,omitempty"`
	Bio         string   `json:"bio,omitempty"`
	Email       string   `json:"email,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	SocialLinks []string `json:"social_links,omitempty"`
	PhotoURL    string   `json:"photo_url,omitempty"`
	SourcePage  string   `json:"source_page"`
}

// CompanyInfo is the homepage's self-description.
type CompanyInfo struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// ContactBundle aggregates everything scraped for one domain.
type ContactBundle struct {
	Domain       string        `json:"domain"`
	Emails       []ScrapedEmail `json:"emails"`
	MailtoLinks  []string      `json:"mailto_links"`
	Phones       []string      `json:"phones"`
	SocialLinks  []string      `json:"social_links"`
	ContactForms []ContactForm `json:"contact_forms"`
	TeamMembers  []TeamMember  `json:"team_members"`
	Company      CompanyInfo   `json:"company"`
	PagesVisited []string      `json:"pages_visited"`
}
