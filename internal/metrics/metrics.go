// Package metrics exposes Prometheus counters for the enrichment pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RecordsEnriched tracks how many input records completed the pipeline.
	RecordsEnriched = promauto.NewCounter(prometheus.CounterOpts{
		Name: "enricher_records_enriched_total",
		Help: "The total number of input records that produced a lead profile.",
	})
	// RecordsSkipped tracks records dropped for lacking a usable name/company signal.
	RecordsSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "enricher_records_skipped_total",
		Help: "The total number of input records skipped by the acceptance gate.",
	})
	// PagesFetched tracks HTTP page fetches issued by the website crawler.
	PagesFetched = promauto.NewCounter(prometheus.CounterOpts{
		Name: "enricher_pages_fetched_total",
		Help: "The total number of pages fetched during contact scraping.",
	})
	// FetchErrors tracks page fetches that failed after retries.
	FetchErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "enricher_fetch_errors_total",
		Help: "The total number of page fetches that failed after all retries.",
	})
	// SearchQueries tracks text-search queries issued.
	SearchQueries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "enricher_search_queries_total",
		Help: "The total number of text search queries issued.",
	})
	// EmailsValidated tracks individual email validations performed.
	EmailsValidated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "enricher_emails_validated_total",
		Help: "The total number of email addresses validated.",
	})
	// CacheHits tracks TTL cache hits.
	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "enricher_cache_hits_total",
		Help: "The total number of cache reads served from a live entry.",
	})
	// CacheMisses tracks TTL cache misses, including expired entries.
	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "enricher_cache_misses_total",
		Help: "The total number of cache reads that found no live entry.",
	})
)
