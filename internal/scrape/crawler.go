package scrape

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/leadgrid/enricher/internal/metrics"
	"github.com/leadgrid/enricher/internal/policy/pacing"
)

// Config bounds the crawl.
type Config struct {
	MaxRetries     int
	RetryDelay     time.Duration
	MaxTeamPages   int
	MaxTeamMembers int
	SocialTimeout  time.Duration
}

// DefaultConfig returns the stock crawl bounds.
func DefaultConfig() Config {
	return Config{
		MaxRetries:     2,
		RetryDelay:     500 * time.Millisecond,
		MaxTeamPages:   4,
		MaxTeamMembers: 15,
		SocialTimeout:  8 * time.Second,
	}
}

// GenerateEmailFunc supplies a validated, generated address for a team
// member when the page itself exposes none.
type GenerateEmailFunc func(ctx context.Context, first, last, domain string) (string, bool)

// Crawler visits a bounded set of candidate pages on a domain and
// aggregates a ContactBundle. It never touches the shared cache; the
// orchestrator caches the assembled bundle.
type Crawler struct {
	fetcher       Fetcher
	pacer         *pacing.Pacer
	cfg           Config
	generateEmail GenerateEmailFunc
	logger        *zap.Logger
}

// NewCrawler wires a Crawler. Pass a nil pacer to disable politeness
// delays in tests.
func NewCrawler(fetcher Fetcher, pacer *pacing.Pacer, cfg Config, logger *zap.Logger) *Crawler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxTeamMembers <= 0 {
		cfg.MaxTeamMembers = 15
	}
	if cfg.MaxTeamPages <= 0 {
		cfg.MaxTeamPages = 4
	}
	return &Crawler{fetcher: fetcher, pacer: pacer, cfg: cfg, logger: logger}
}

// SetEmailGenerator installs the generated-email fallback for team members.
func (c *Crawler) SetEmailGenerator(fn GenerateEmailFunc) { c.generateEmail = fn }

// Scrape fetches the candidate pages for domain and extracts contacts.
// A page that fails to fetch or parse is skipped; the crawl continues.
func (c *Crawler) Scrape(ctx context.Context, domain string) (ContactBundle, error) {
	if isSocialPlatform(domain) {
		return c.scrapeSocialPlatform(ctx, domain)
	}

	base := "https://" + domain
	candidates := []string{base, base + "/"}
	for _, p := range contactPaths {
		candidates = append(candidates, base+p)
	}

	acc := newAccumulator()
	bundle := ContactBundle{Domain: domain}
	visited := make(map[string]struct{})
	teamDocs := make(map[string]*goquery.Document)

	for i, pageURL := range candidates {
		key := strings.TrimSuffix(pageURL, "/")
		if _, seen := visited[key]; seen {
			continue
		}
		visited[key] = struct{}{}
		if ctx.Err() != nil {
			break
		}

		doc, ok := c.fetchDoc(ctx, pageURL)
		if !ok {
			continue
		}
		if i == 0 {
			bundle.Company = extractCompanyInfo(doc)
		}
		acc.parsePage(pageURL, doc)
		if path := strings.TrimPrefix(key, base); pathInTeamList(path) {
			teamDocs[path] = doc
		}
	}

	bundle.TeamMembers = c.teamPass(ctx, domain, base, teamDocs)
	bundle.Emails = acc.scoredEmails()
	bundle.MailtoLinks = acc.mailto
	bundle.Phones = acc.phones
	bundle.SocialLinks = acc.socials
	bundle.ContactForms = acc.forms
	bundle.PagesVisited = acc.pages
	return bundle, nil
}

// teamPass visits up to MaxTeamPages likely team pages, reusing documents
// already fetched during the contact pass.
func (c *Crawler) teamPass(ctx context.Context, domain, base string, cached map[string]*goquery.Document) []TeamMember {
	var members []TeamMember
	seen := make(map[string]struct{})
	pages := 0

	for _, path := range teamPaths {
		if pages == c.cfg.MaxTeamPages || len(members) == c.cfg.MaxTeamMembers {
			break
		}
		if ctx.Err() != nil {
			break
		}
		pages++

		doc, ok := cached[path]
		if !ok {
			doc, ok = c.fetchDoc(ctx, base+path)
			if !ok {
				continue
			}
		}
		if !teamLike(doc) {
			continue
		}

		for _, m := range extractTeamMembers(doc, base+path) {
			if m.Email == "" && c.generateEmail != nil {
				first, last := splitName(m.Name)
				if addr, found := c.generateEmail(ctx, first, last, domain); found {
					m.Email = addr
				}
			}
			key := strings.ToLower(m.Name) + "|" + strings.ToLower(m.Email)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			members = append(members, m)
			if len(members) == c.cfg.MaxTeamMembers {
				break
			}
		}
	}
	return members
}

// scrapeSocialPlatform is the special case for domains that are social
// platforms themselves: one time-boxed homepage fetch, no multi-page
// crawl. Expiry is an explicit error, never a silent partial result.
func (c *Crawler) scrapeSocialPlatform(ctx context.Context, domain string) (ContactBundle, error) {
	boxed, cancel := context.WithTimeout(ctx, c.cfg.SocialTimeout)
	defer cancel()

	pageURL := "https://" + domain
	doc, ok := c.fetchDoc(boxed, pageURL)
	if !ok {
		if boxed.Err() != nil {
			return ContactBundle{}, fmt.Errorf("social platform scrape timed out for %s: %w", domain, boxed.Err())
		}
		return ContactBundle{}, fmt.Errorf("social platform scrape failed for %s", domain)
	}

	acc := newAccumulator()
	acc.parsePage(pageURL, doc)
	return ContactBundle{
		Domain:       domain,
		Emails:       acc.scoredEmails(),
		MailtoLinks:  acc.mailto,
		Phones:       acc.phones,
		SocialLinks:  acc.socials,
		ContactForms: acc.forms,
		Company:      extractCompanyInfo(doc),
		PagesVisited: acc.pages,
	}, nil
}

// fetchDoc paces, fetches with bounded retries, and parses one page.
func (c *Crawler) fetchDoc(ctx context.Context, pageURL string) (*goquery.Document, bool) {
	if c.pacer != nil {
		if err := c.pacer.Wait(ctx); err != nil {
			return nil, false
		}
	}

	var page Page
	var err error
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			if !pause(ctx, c.cfg.RetryDelay*time.Duration(attempt)) {
				return nil, false
			}
		}
		page, err = c.fetcher.Fetch(ctx, pageURL)
		if err == nil {
			break
		}
		if ctx.Err() != nil {
			return nil, false
		}
	}
	if err != nil {
		metrics.FetchErrors.Inc()
		c.logger.Debug("fetch failed after retries", zap.String("url", pageURL), zap.Error(err))
		return nil, false
	}
	metrics.PagesFetched.Inc()

	if page.StatusCode != http.StatusOK {
		return nil, false
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page.Body))
	if err != nil {
		c.logger.Debug("parse failed", zap.String("url", pageURL), zap.Error(err))
		return nil, false
	}
	return doc, true
}

func pathInTeamList(path string) bool {
	for _, p := range teamPaths {
		if p == path {
			return true
		}
	}
	return false
}

func splitName(full string) (string, string) {
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

func pause(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
