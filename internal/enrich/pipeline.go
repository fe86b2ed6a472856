package enrich

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/leadgrid/enricher/internal/domain"
	"github.com/leadgrid/enricher/internal/email"
	"github.com/leadgrid/enricher/internal/metrics"
	"github.com/leadgrid/enricher/internal/phone"
	"github.com/leadgrid/enricher/internal/policy/pacing"
	"github.com/leadgrid/enricher/internal/scrape"
	"github.com/leadgrid/enricher/internal/search"
)

// DomainResolver is the slice of the resolver the pipeline depends on.
type DomainResolver interface {
	Resolve(ctx context.Context, companyName string) (domain.Candidate, error)
}

// Scraper is the slice of the website crawler the pipeline depends on.
type Scraper interface {
	Scrape(ctx context.Context, domain string) (scrape.ContactBundle, error)
}

// Pipeline wires the enrichment strategies for one process. It owns the
// lifetime of all intermediate candidates; the cache-backed collaborators
// are injected and shared.
type Pipeline struct {
	resolver  DomainResolver
	scraper   Scraper
	validator *email.Validator
	searchc   search.Client
	pacer     *pacing.Pacer
	logger    *zap.Logger
}

// New wires a Pipeline. searchc and pacer may be nil; the corresponding
// discovery strategies are then skipped.
func New(resolver DomainResolver, scraper Scraper, validator *email.Validator, searchc search.Client, pacer *pacing.Pacer, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		resolver:  resolver,
		scraper:   scraper,
		validator: validator,
		searchc:   searchc,
		pacer:     pacer,
		logger:    logger,
	}
}

// TeamEmailGenerator returns the generated-email fallback the crawler uses
// for team members: best pattern for the name, kept only when it validates.
func (p *Pipeline) TeamEmailGenerator() scrape.GenerateEmailFunc {
	return func(ctx context.Context, first, last, dom string) (string, bool) {
		for _, addr := range email.GeneratePatterns(first, last, dom) {
			if res := p.validator.Validate(ctx, addr); res.IsValid {
				return addr, true
			}
		}
		return "", false
	}
}

// Enrich runs the full pipeline for one record. A record that finds
// nothing still yields a profile shell rather than an error.
func (p *Pipeline) Enrich(ctx context.Context, rec InputRecord) (LeadProfile, error) {
	if err := ctx.Err(); err != nil {
		return LeadProfile{}, err
	}

	rec = normalizeRecord(rec)
	profile := LeadProfile{
		ID:       uuid.NewString(),
		Name:     rec.PersonName,
		Company:  rec.CompanyName,
		JobTitle: rec.JobTitle,
		Location: rec.Location,
		Industry: rec.Industry,
	}

	merged := make(map[string]EmailCandidate)
	phoneSeen := make(map[string]struct{})

	if profile.Name != "" && profile.Company != "" {
		p.discoverFromSearch(ctx, &profile, merged)
	}

	if !acceptable(profile, merged) {
		metrics.RecordsSkipped.Inc()
		p.logger.Debug("record below acceptance gate, skipping contact discovery",
			zap.String("raw", rec.RawText))
		return p.finalize(profile, merged), nil
	}

	if profile.Company != "" {
		cand, err := p.resolver.Resolve(ctx, profile.Company)
		switch {
		case err == nil:
			profile.Domain = cand.Domain
		case errors.Is(err, domain.ErrNotFound):
			p.logger.Debug("no domain resolved", zap.String("company", profile.Company))
		default:
			return LeadProfile{}, fmt.Errorf("resolve domain for %q: %w", profile.Company, err)
		}
	}

	if profile.Domain != "" {
		p.discoverFromPatterns(ctx, &profile, merged)
		p.discoverFromWebsite(ctx, &profile, merged, phoneSeen)
	}

	metrics.RecordsEnriched.Inc()
	return p.finalize(profile, merged), nil
}

// EnrichMany processes records sequentially, skipping failed ones, and
// returns profiles sorted by lead score descending.
func (p *Pipeline) EnrichMany(ctx context.Context, recs []InputRecord) []LeadProfile {
	profiles := make([]LeadProfile, 0, len(recs))
	for _, rec := range recs {
		profile, err := p.Enrich(ctx, rec)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			p.logger.Warn("record enrichment failed, continuing", zap.Error(err))
			continue
		}
		profiles = append(profiles, profile)
	}
	sort.SliceStable(profiles, func(i, j int) bool {
		return profiles[i].LeadScore > profiles[j].LeadScore
	})
	return profiles
}

// discoverFromSearch runs the snippet-based strategies available when both
// a person and a company are known: a direct contact query, an email
// query, and a business-directory query. Snippets also backfill missing
// title/location/industry.
func (p *Pipeline) discoverFromSearch(ctx context.Context, profile *LeadProfile, merged map[string]EmailCandidate) {
	if p.searchc == nil {
		return
	}
	queries := []struct {
		query  string
		source string
		score  int
	}{
		{fmt.Sprintf("%q %q contact email", profile.Name, profile.Company), SourceSearchSnippet, snippetContactScore},
		{fmt.Sprintf("%q %q email", profile.Name, profile.Company), SourceSearchSnippet, directSearchScore},
		{fmt.Sprintf("%q site:yellowpages.com OR site:yelp.com OR site:crunchbase.com", profile.Company), SourceBusinessDirectory, directoryScore},
	}

	for _, q := range queries {
		if p.pacer != nil {
			if err := p.pacer.Wait(ctx); err != nil {
				return
			}
		}
		results, err := p.searchc.Search(ctx, q.query, 5)
		if err != nil {
			p.logger.Debug("search discovery failed", zap.String("query", q.query), zap.Error(err))
			continue
		}
		for _, res := range results {
			text := res.Title + " " + res.Body
			for _, addr := range emailsIn(text) {
				p.mergeCandidate(ctx, merged, EmailCandidate{
					Address: addr,
					Source:  q.source,
					Score:   q.score,
				})
			}
			if profile.JobTitle == "" && looksLikeTitle(res.Title) {
				if _, _, title := parseRawLine(res.Title); title != "" {
					profile.JobTitle = title
				}
			}
			if profile.Location == "" {
				profile.Location = extractLocation(text)
			}
			if profile.Industry == "" {
				profile.Industry = extractIndustry(text)
			}
		}
	}
}

// discoverFromPatterns generates name-based addresses on the resolved
// domain and batch-validates them.
func (p *Pipeline) discoverFromPatterns(ctx context.Context, profile *LeadProfile, merged map[string]EmailCandidate) {
	first, last := splitPersonName(profile.Name)
	addrs := email.GeneratePatterns(first, last, profile.Domain)
	if len(addrs) == 0 {
		return
	}
	for _, res := range p.validator.ValidateBatch(ctx, addrs) {
		res := res
		if !res.IsValid {
			continue
		}
		p.mergeValidated(merged, EmailCandidate{
			Address:    res.Email,
			Source:     SourceKnownPattern,
			Score:      res.Score,
			Validation: &res,
		})
	}
}

// discoverFromWebsite crawls the domain and folds the bundle into the
// profile: validated scraped emails, normalized phones, team and company
// data.
func (p *Pipeline) discoverFromWebsite(ctx context.Context, profile *LeadProfile, merged map[string]EmailCandidate, phoneSeen map[string]struct{}) {
	bundle, err := p.scraper.Scrape(ctx, profile.Domain)
	if err != nil {
		p.logger.Warn("website scrape failed", zap.String("domain", profile.Domain), zap.Error(err))
		return
	}

	addrs := make([]string, 0, len(bundle.Emails))
	scrapeScore := make(map[string]int, len(bundle.Emails))
	for _, e := range bundle.Emails {
		addrs = append(addrs, e.Address)
		scrapeScore[e.Address] = e.Score
	}
	for _, res := range p.validator.ValidateBatch(ctx, addrs) {
		res := res
		if !res.IsValid {
			continue
		}
		score := res.Score
		if s := scrapeScore[res.Email]; s > score {
			score = s
		}
		p.mergeValidated(merged, EmailCandidate{
			Address:    res.Email,
			Source:     SourceWebsiteScrape,
			Score:      score,
			Validation: &res,
		})
	}

	for _, raw := range bundle.Phones {
		num, ok := phone.Parse(raw)
		if !ok {
			continue
		}
		key := phone.Digits(num.E164)
		if _, dup := phoneSeen[key]; dup {
			continue
		}
		phoneSeen[key] = struct{}{}
		profile.Phones = append(profile.Phones, num)
	}

	profile.SocialLinks = bundle.SocialLinks
	profile.ContactForms = bundle.ContactForms
	profile.TeamMembers = bundle.TeamMembers
	if profile.Company == "" {
		profile.Company = bundle.Company.Name
	}
	profile.Description = bundle.Company.Description
}

// mergeCandidate validates a discovered address and merges it when valid.
func (p *Pipeline) mergeCandidate(ctx context.Context, merged map[string]EmailCandidate, cand EmailCandidate) {
	res := p.validator.Validate(ctx, cand.Address)
	if !res.IsValid {
		return
	}
	if res.Score > cand.Score {
		cand.Score = res.Score
	}
	cand.Validation = &res
	p.mergeValidated(merged, cand)
}

// mergeValidated applies highest-score-wins dedup keyed by lowercase
// address.
func (p *Pipeline) mergeValidated(merged map[string]EmailCandidate, cand EmailCandidate) {
	key := strings.ToLower(cand.Address)
	if existing, ok := merged[key]; ok && existing.Score >= cand.Score {
		return
	}
	merged[key] = cand
}

// acceptable is the minimal-acceptance gate: a name plus at least one
// corroborating signal.
func acceptable(profile LeadProfile, merged map[string]EmailCandidate) bool {
	if profile.Name == "" {
		return false
	}
	return profile.Company != "" ||
		profile.JobTitle != "" ||
		profile.Location != "" ||
		profile.Industry != "" ||
		len(merged) > 0
}

// finalize sorts emails, computes the lead score, and seals the profile.
func (p *Pipeline) finalize(profile LeadProfile, merged map[string]EmailCandidate) LeadProfile {
	emails := make([]EmailCandidate, 0, len(merged))
	for _, c := range merged {
		emails = append(emails, c)
	}
	sort.Slice(emails, func(i, j int) bool {
		if emails[i].Score != emails[j].Score {
			return emails[i].Score > emails[j].Score
		}
		return emails[i].Address < emails[j].Address
	})
	profile.Emails = emails
	profile.LeadScore = scoreLead(profile)
	return profile
}
