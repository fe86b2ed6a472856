// Package enrich orchestrates the enrichment pipeline: domain resolution,
// email discovery and validation, phone normalization, scoring, ranking.
package enrich

import (
	"github.com/leadgrid/enricher/internal/email"
	"github.com/leadgrid/enricher/internal/phone"
	"github.com/leadgrid/enricher/internal/scrape"
)

// InputRecord is one sparse identifier fed into the pipeline. Immutable;
// a fresh copy is created per invocation.
type InputRecord struct {
	RawText     string `json:"raw_text,omitempty"`
	PersonName  string `json:"person_name,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
	JobTitle    string `json:"job_title,omitempty"`
	Location    string `json:"location,omitempty"`
	Industry    string `json:"industry,omitempty"`
}

// Email candidate sources, in rough precision order.
const (
	SourceKnownPattern      = "known_pattern"
	SourceWebsiteScrape     = "website_scrape"
	SourceSearchSnippet     = "search_snippet"
	SourceBusinessDirectory = "business_directory"
)

// Raw score contributions per discovery source.
const (
	snippetContactScore = 85
	directoryScore      = 75
	directSearchScore   = 70
)

// EmailCandidate is a discovered address with its provenance and score.
// Score reflects both the source and, once validated, the validation
// outcome; the merge keeps the highest-scoring candidate per address.
type EmailCandidate struct {
	Address    string                  `json:"address"`
	Source     string                  `json:"source"`
	Score      int                     `json:"score"`
	Validation *email.ValidationResult `json:"validation,omitempty"`
}

// LeadProfile is the enrichment output for one InputRecord. Built once
// per run, never mutated after scoring.
type LeadProfile struct {
	ID           string               `json:"id"`
	Name         string               `json:"name,omitempty"`
	Company      string               `json:"company,omitempty"`
	Domain       string               `json:"domain,omitempty"`
	JobTitle     string               `json:"job_title,omitempty"`
	Location     string               `json:"location,omitempty"`
	Industry     string               `json:"industry,omitempty"`
	Emails       []EmailCandidate     `json:"emails"`
	Phones       []phone.Number       `json:"phones"`
	SocialLinks  []string             `json:"social_links,omitempty"`
	ContactForms []scrape.ContactForm `json:"contact_forms,omitempty"`
	TeamMembers  []scrape.TeamMember  `json:"team_members,omitempty"`
	Description  string               `json:"description,omitempty"`
	LeadScore    int                  `json:"lead_score"`
}
