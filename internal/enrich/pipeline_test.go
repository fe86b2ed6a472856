package enrich

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/leadgrid/enricher/internal/cache"
	"github.com/leadgrid/enricher/internal/domain"
	"github.com/leadgrid/enricher/internal/email"
	"github.com/leadgrid/enricher/internal/scrape"
	"github.com/leadgrid/enricher/internal/search"
)

type fakeResolver struct {
	domains map[string]string
	err     error
	calls   int
}

func (r *fakeResolver) Resolve(_ context.Context, company string) (domain.Candidate, error) {
	r.calls++
	if r.err != nil {
		return domain.Candidate{}, r.err
	}
	d, ok := r.domains[domain.Normalize(company)]
	if !ok {
		return domain.Candidate{}, domain.ErrNotFound
	}
	return domain.Candidate{Domain: d, Strategy: domain.StrategyKnown}, nil
}

type fakeScraper struct {
	bundle scrape.ContactBundle
	err    error
	calls  int
}

func (s *fakeScraper) Scrape(_ context.Context, d string) (scrape.ContactBundle, error) {
	s.calls++
	if s.err != nil {
		return scrape.ContactBundle{}, s.err
	}
	return s.bundle, nil
}

type fakeSearcher struct {
	results []search.Result
	calls   int
}

func (s *fakeSearcher) Search(context.Context, string, int) ([]search.Result, error) {
	s.calls++
	return s.results, nil
}

type okMX struct{}

func (okMX) LookupMX(context.Context, string) (int, error) { return 1, nil }

func newTestValidator(t *testing.T) *email.Validator {
	t.Helper()
	c := cache.New(cache.NewMemoryStore(), 24*time.Hour, nil)
	return email.NewValidator(c, okMX{}, nil, nil)
}

func TestEnrichFullRecord(t *testing.T) {
	t.Parallel()
	resolver := &fakeResolver{domains: map[string]string{"acme technologies": "acme.com"}}
	scraper := &fakeScraper{bundle: scrape.ContactBundle{
		Domain: "acme.com",
		Emails: []scrape.ScrapedEmail{
			{Address: "info@acme.com", Sources: []string{"https://acme.com/contact"}, Score: 30},
		},
		Phones:      []string{"(415) 555-0123", "415.555.0123", "+1 415 555 0124"},
		SocialLinks: []string{"https://x.com/acme"},
		Company:     scrape.CompanyInfo{Name: "Acme Corporation", Description: "Rockets."},
		TeamMembers: []scrape.TeamMember{{Name: "Jane Doe", SourcePage: "https://acme.com/team"}},
	}}
	p := New(resolver, scraper, newTestValidator(t), nil, nil, nil)

	profile, err := p.Enrich(context.Background(), InputRecord{
		PersonName: "John Smith", CompanyName: "Acme Technologies",
	})
	require.NoError(t, err)
	require.NotEmpty(t, profile.ID)
	require.Equal(t, "acme.com", profile.Domain)

	addrs := map[string]EmailCandidate{}
	for _, e := range profile.Emails {
		addrs[e.Address] = e
	}
	require.Contains(t, addrs, "john.smith@acme.com")
	require.Equal(t, SourceKnownPattern, addrs["john.smith@acme.com"].Source)
	require.Contains(t, addrs, "info@acme.com")
	// Validation score (80) beats the scrape score (30).
	require.Equal(t, 80, addrs["info@acme.com"].Score)

	// Three raw phone strings collapse to two normalized numbers.
	require.Len(t, profile.Phones, 2)

	require.Equal(t, "Rockets.", profile.Description)
	require.Len(t, profile.TeamMembers, 1)
	require.Positive(t, profile.LeadScore)

	// Emails come back sorted by score descending.
	for i := 1; i < len(profile.Emails); i++ {
		require.GreaterOrEqual(t, profile.Emails[i-1].Score, profile.Emails[i].Score)
	}
}

func TestEnrichSnippetBeatsScrapeOnDedup(t *testing.T) {
	t.Parallel()
	resolver := &fakeResolver{domains: map[string]string{"acme": "acme.com"}}
	scraper := &fakeScraper{bundle: scrape.ContactBundle{
		Emails: []scrape.ScrapedEmail{{Address: "john@acme.com", Sources: []string{"https://acme.com"}, Score: 10}},
	}}
	searcher := &fakeSearcher{results: []search.Result{
		{Title: "John Smith - Acme", Body: "Contact John at john@acme.com", URL: "https://acme.com"},
	}}
	p := New(resolver, scraper, newTestValidator(t), searcher, nil, nil)

	profile, err := p.Enrich(context.Background(), InputRecord{
		PersonName: "John Smith", CompanyName: "Acme",
	})
	require.NoError(t, err)

	// The same address is also produced by the pattern generator and the
	// scrape; the highest-scoring candidate must win the merge.
	var got EmailCandidate
	for _, e := range profile.Emails {
		if e.Address == "john@acme.com" {
			got = e
		}
	}
	require.Equal(t, SourceSearchSnippet, got.Source)
	require.Equal(t, 85, got.Score)
	require.Equal(t, got, profile.Emails[0], "highest score sorts first")
}

func TestEnrichAcceptanceGateSkipsDiscovery(t *testing.T) {
	t.Parallel()
	resolver := &fakeResolver{}
	scraper := &fakeScraper{}
	p := New(resolver, scraper, newTestValidator(t), nil, nil, nil)

	profile, err := p.Enrich(context.Background(), InputRecord{PersonName: "John Smith"})
	require.NoError(t, err)
	require.Equal(t, "John Smith", profile.Name)
	require.Empty(t, profile.Domain)
	require.Zero(t, resolver.calls)
	require.Zero(t, scraper.calls)
}

func TestEnrichNoDomainStillReturnsProfile(t *testing.T) {
	t.Parallel()
	resolver := &fakeResolver{}
	scraper := &fakeScraper{}
	p := New(resolver, scraper, newTestValidator(t), nil, nil, nil)

	profile, err := p.Enrich(context.Background(), InputRecord{
		PersonName: "John Smith", CompanyName: "Xzqlorpqz Inc",
	})
	require.NoError(t, err)
	require.Empty(t, profile.Domain)
	require.Empty(t, profile.Emails)
	require.Zero(t, scraper.calls)
	require.Equal(t, 20, profile.LeadScore, "company presence still scores")
}

func TestEnrichParsesRawText(t *testing.T) {
	t.Parallel()
	resolver := &fakeResolver{domains: map[string]string{"acme technologies": "acme.com"}}
	scraper := &fakeScraper{}
	p := New(resolver, scraper, newTestValidator(t), nil, nil, nil)

	profile, err := p.Enrich(context.Background(), InputRecord{
		RawText: "John Smith, CEO, Acme Technologies",
	})
	require.NoError(t, err)
	require.Equal(t, "John Smith", profile.Name)
	require.Equal(t, "Acme Technologies", profile.Company)
	require.Equal(t, "CEO", profile.JobTitle)
	require.Equal(t, "acme.com", profile.Domain)
}

func TestEnrichManySortedAndSkipsFailures(t *testing.T) {
	t.Parallel()
	resolver := &fakeResolver{domains: map[string]string{"acme": "acme.com"}}
	scraper := &fakeScraper{bundle: scrape.ContactBundle{
		Phones: []string{"(415) 555-0123"},
	}}
	p := New(resolver, scraper, newTestValidator(t), nil, nil, nil)

	profiles := p.EnrichMany(context.Background(), []InputRecord{
		{PersonName: "Low Value"},
		{PersonName: "John Smith", CompanyName: "Acme", JobTitle: "CEO"},
	})
	require.Len(t, profiles, 2)
	for i := 1; i < len(profiles); i++ {
		require.GreaterOrEqual(t, profiles[i-1].LeadScore, profiles[i].LeadScore)
	}
	require.Equal(t, "John Smith", profiles[0].Name)
}

func TestEnrichManyContinuesPastResolverError(t *testing.T) {
	t.Parallel()
	resolver := &fakeResolver{err: errors.New("resolver exploded")}
	p := New(resolver, &fakeScraper{}, newTestValidator(t), nil, nil, nil)

	profiles := p.EnrichMany(context.Background(), []InputRecord{
		{PersonName: "John Smith", CompanyName: "Acme"},
		{PersonName: "Jane Doe", JobTitle: "CTO"},
	})
	// The failing record is omitted, the rest of the batch survives.
	require.Len(t, profiles, 1)
	require.Equal(t, "Jane Doe", profiles[0].Name)
}

func TestTeamEmailGenerator(t *testing.T) {
	t.Parallel()
	p := New(&fakeResolver{}, &fakeScraper{}, newTestValidator(t), nil, nil, nil)
	gen := p.TeamEmailGenerator()

	addr, ok := gen(context.Background(), "Jane", "Doe", "acme.com")
	require.True(t, ok)
	require.Equal(t, "jane.doe@acme.com", addr)
}
