// Package search wraps a text-search capability returning title/snippet/url
// triples for a query.
package search

import "context"

// Result is one search hit.
type Result struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url"`
}

// Client is the text-search capability the pipeline depends on. Best
// effort: zero results is not an error, provider failures are.
type Client interface {
	Search(ctx context.Context, query string, maxResults int) ([]Result, error)
}
