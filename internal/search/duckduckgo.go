package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/leadgrid/enricher/internal/metrics"
)

// DuckDuckGoClient implements Client against the DuckDuckGo HTML endpoint.
type DuckDuckGoClient struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewDuckDuckGo builds a search client for the given endpoint.
func NewDuckDuckGo(baseURL, userAgent string, timeout time.Duration, logger *zap.Logger) *DuckDuckGoClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DuckDuckGoClient{
		baseURL:    baseURL,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Search issues one query and parses up to maxResults organic hits.
func (c *DuckDuckGoClient) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	metrics.SearchQueries.Inc()

	endpoint := c.baseURL + "?q=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse search page: %w", err)
	}

	var results []Result
	doc.Find("div.result").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		anchor := s.Find("a.result__a").First()
		title := strings.TrimSpace(anchor.Text())
		link := decodeRedirect(anchor.AttrOr("href", ""))
		if title == "" || link == "" {
			return true
		}
		results = append(results, Result{
			Title: title,
			Body:  strings.TrimSpace(s.Find("a.result__snippet").First().Text()),
			URL:   link,
		})
		return len(results) < maxResults
	})

	c.logger.Debug("search completed",
		zap.String("query", query),
		zap.Int("results", len(results)))
	return results, nil
}

// decodeRedirect unwraps the uddg redirect parameter DuckDuckGo puts on
// result links, falling back to the raw href.
func decodeRedirect(href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	return href
}
