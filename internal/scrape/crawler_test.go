package scrape

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	pages map[string]string
	fail  map[string]error
	block bool
	calls []string
}

func (f *fakeFetcher) Fetch(ctx context.Context, rawURL string) (Page, error) {
	f.calls = append(f.calls, rawURL)
	if f.block {
		<-ctx.Done()
		return Page{}, ctx.Err()
	}
	if err, ok := f.fail[rawURL]; ok {
		return Page{}, err
	}
	html, ok := f.pages[rawURL]
	if !ok {
		return Page{URL: rawURL, StatusCode: http.StatusNotFound}, nil
	}
	return Page{URL: rawURL, FinalURL: rawURL, StatusCode: http.StatusOK, Body: []byte(html)}, nil
}

const homePage = `<html><head>
<meta property="og:site_name" content="Acme Corporation">
<meta name="description" content="Acme builds rockets.">
</head><body>
<p>Write to info@acme.test</p>
<a href="https://x.com/acme">Follow us</a>
</body></html>`

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.RetryDelay = time.Millisecond
	cfg.SocialTimeout = 50 * time.Millisecond
	return cfg
}

func TestScrapeAggregatesBundle(t *testing.T) {
	t.Parallel()
	fetcher := &fakeFetcher{pages: map[string]string{
		"https://acme.test":         homePage,
		"https://acme.test/contact": contactPage,
		"https://acme.test/team":    teamPage,
	}}
	c := NewCrawler(fetcher, nil, testConfig(), nil)

	bundle, err := c.Scrape(context.Background(), "acme.test")
	require.NoError(t, err)
	require.Equal(t, "acme.test", bundle.Domain)
	require.Equal(t, "Acme Corporation", bundle.Company.Name)

	byAddr := map[string]ScrapedEmail{}
	for _, e := range bundle.Emails {
		byAddr[e.Address] = e
	}
	require.Contains(t, byAddr, "info@acme.test")
	require.Contains(t, byAddr, "sales@acme.test")
	// Contact-page source earns the bonus.
	require.Equal(t, 30, byAddr["sales@acme.test"].Score)
	require.Equal(t, 10, byAddr["info@acme.test"].Score)

	require.Len(t, bundle.TeamMembers, 2)
	require.NotEmpty(t, bundle.Phones)
	require.NotEmpty(t, bundle.SocialLinks)
	require.Len(t, bundle.ContactForms, 1)
	require.Contains(t, bundle.PagesVisited, "https://acme.test/contact")
}

func TestScrapeContinuesPastFailingPages(t *testing.T) {
	t.Parallel()
	fetcher := &fakeFetcher{
		pages: map[string]string{"https://acme.test": homePage},
		fail:  map[string]error{"https://acme.test/contact": errors.New("connection reset")},
	}
	c := NewCrawler(fetcher, nil, testConfig(), nil)

	bundle, err := c.Scrape(context.Background(), "acme.test")
	require.NoError(t, err)
	require.NotEmpty(t, bundle.Emails)
}

func TestScrapeGeneratedEmailFallback(t *testing.T) {
	t.Parallel()
	fetcher := &fakeFetcher{pages: map[string]string{
		"https://acme.test/team": teamPage,
	}}
	c := NewCrawler(fetcher, nil, testConfig(), nil)
	c.SetEmailGenerator(func(_ context.Context, first, last, domain string) (string, bool) {
		return first + "." + last + "@" + domain, true
	})

	bundle, err := c.Scrape(context.Background(), "acme.test")
	require.NoError(t, err)
	require.Len(t, bundle.TeamMembers, 2)

	byName := map[string]TeamMember{}
	for _, m := range bundle.TeamMembers {
		byName[m.Name] = m
	}
	// Jane has a mailto; the generator must not override it.
	require.Equal(t, "jane@acme.test", byName["Jane Doe"].Email)
	require.Equal(t, "John.Smith@acme.test", byName["John Smith"].Email)
}

func TestScrapeTeamMemberCap(t *testing.T) {
	t.Parallel()
	fetcher := &fakeFetcher{pages: map[string]string{
		"https://acme.test/team": teamPage,
	}}
	cfg := testConfig()
	cfg.MaxTeamMembers = 1
	c := NewCrawler(fetcher, nil, cfg, nil)

	bundle, err := c.Scrape(context.Background(), "acme.test")
	require.NoError(t, err)
	require.Len(t, bundle.TeamMembers, 1)
}

func TestScrapeSocialPlatformQuickPass(t *testing.T) {
	t.Parallel()
	fetcher := &fakeFetcher{pages: map[string]string{
		"https://linkedin.com": homePage,
	}}
	c := NewCrawler(fetcher, nil, testConfig(), nil)

	bundle, err := c.Scrape(context.Background(), "linkedin.com")
	require.NoError(t, err)
	require.Len(t, bundle.PagesVisited, 1, "platform domains get a single homepage fetch")
	require.Len(t, fetcher.calls, 1)
}

func TestScrapeSocialPlatformTimeout(t *testing.T) {
	t.Parallel()
	fetcher := &fakeFetcher{block: true}
	c := NewCrawler(fetcher, nil, testConfig(), nil)

	_, err := c.Scrape(context.Background(), "linkedin.com")
	require.ErrorContains(t, err, "timed out")
}

func TestCollyFetcher(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer srv.Close()

	f := NewCollyFetcher("test-agent", 2*time.Second, nil)

	page, err := f.Fetch(context.Background(), srv.URL+"/")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, page.StatusCode)
	require.Contains(t, string(page.Body), "ok")

	page, err = f.Fetch(context.Background(), srv.URL+"/missing")
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, page.StatusCode)
}
