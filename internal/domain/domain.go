// Package domain resolves company names to canonical web domains using a
// strategy chain: known table, pattern plus liveness probe, search fallback.
package domain

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/net/publicsuffix"

	"github.com/leadgrid/enricher/internal/cache"
	"github.com/leadgrid/enricher/internal/policy/pacing"
	"github.com/leadgrid/enricher/internal/search"
)

// ErrNotFound is returned when every resolution strategy is exhausted.
var ErrNotFound = errors.New("domain: not found")

// Strategy names recorded on resolved candidates.
const (
	StrategyKnown   = "known"
	StrategyPattern = "pattern"
	StrategySearch  = "search"
)

// Candidate is a resolved domain plus the strategy that produced it.
type Candidate struct {
	Domain   string `json:"domain"`
	Strategy string `json:"strategy"`
}

// Resolver resolves company names to domains. Failed lookups are held in a
// per-process negative cache so repeat calls short-circuit without network
// I/O; successes go to the shared durable cache.
type Resolver struct {
	cache   *cache.Cache
	searchc search.Client
	pacer   *pacing.Pacer
	prober  Prober
	generic GenericPolicy
	known   map[string]string
	logger  *zap.Logger

	mu     sync.Mutex
	failed map[string]struct{}
}

// NewResolver wires a Resolver with the default known table and generic
// policy. Pass a nil pacer to disable politeness delays in tests.
func NewResolver(c *cache.Cache, sc search.Client, pacer *pacing.Pacer, prober Prober, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		cache:   c,
		searchc: sc,
		pacer:   pacer,
		prober:  prober,
		generic: DefaultGenericPolicy(),
		known:   knownCompanies,
		logger:  logger,
		failed:  make(map[string]struct{}),
	}
}

// SetGenericPolicy replaces the generic-domain rejection policy.
func (r *Resolver) SetGenericPolicy(p GenericPolicy) { r.generic = p }

// Resolve runs the strategy chain for companyName, short-circuiting on the
// first valid non-generic result.
func (r *Resolver) Resolve(ctx context.Context, companyName string) (Candidate, error) {
	normalized := Normalize(companyName)
	if normalized == "" {
		return Candidate{}, ErrNotFound
	}

	r.mu.Lock()
	_, failedBefore := r.failed[normalized]
	r.mu.Unlock()
	if failedBefore {
		return Candidate{}, ErrNotFound
	}

	cacheKey := "domain_" + normalized
	var cached Candidate
	if r.cache != nil && r.cache.Get(ctx, cacheKey, &cached) && cached.Domain != "" {
		return cached, nil
	}

	if cand, ok := r.resolveKnown(normalized); ok {
		r.store(ctx, cacheKey, cand)
		return cand, nil
	}
	if cand, ok := r.resolvePattern(ctx, normalized); ok {
		r.store(ctx, cacheKey, cand)
		return cand, nil
	}
	if cand, ok := r.resolveSearch(ctx, companyName, normalized); ok {
		r.store(ctx, cacheKey, cand)
		return cand, nil
	}

	r.mu.Lock()
	r.failed[normalized] = struct{}{}
	r.mu.Unlock()
	r.logger.Debug("domain resolution exhausted", zap.String("company", normalized))
	return Candidate{}, ErrNotFound
}

func (r *Resolver) store(ctx context.Context, key string, cand Candidate) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Set(ctx, key, cand); err != nil {
		r.logger.Warn("cache domain candidate", zap.Error(err))
	}
}

// resolveKnown matches the normalized name exactly or by containment of a
// known key. Takes priority over every other strategy.
func (r *Resolver) resolveKnown(normalized string) (Candidate, bool) {
	if d, ok := r.known[normalized]; ok {
		return Candidate{Domain: d, Strategy: StrategyKnown}, true
	}
	for key, d := range r.known {
		if strings.Contains(normalized, key) {
			return Candidate{Domain: d, Strategy: StrategyKnown}, true
		}
	}
	return Candidate{}, false
}

// resolvePattern probes generated stem+TLD combinations for a live host.
func (r *Resolver) resolvePattern(ctx context.Context, normalized string) (Candidate, bool) {
	if r.prober == nil {
		return Candidate{}, false
	}
	stems := GenerateStems(normalized)
	tlds := TLDPriority(normalized)
	for _, stem := range stems {
		for _, tld := range tlds {
			host := stem + tld
			if r.generic.IsGeneric(host) {
				continue
			}
			if ctx.Err() != nil {
				return Candidate{}, false
			}
			if r.prober.Probe(ctx, host) {
				return Candidate{Domain: host, Strategy: StrategyPattern}, true
			}
		}
	}
	return Candidate{}, false
}

// resolveSearch queries the text search capability and validates the top
// results against the company name.
func (r *Resolver) resolveSearch(ctx context.Context, companyName, normalized string) (Candidate, bool) {
	if r.searchc == nil {
		return Candidate{}, false
	}
	if r.pacer != nil {
		if err := r.pacer.Wait(ctx); err != nil {
			return Candidate{}, false
		}
	}
	results, err := r.searchc.Search(ctx, fmt.Sprintf("%q website", companyName), 2)
	if err != nil {
		r.logger.Debug("search fallback failed", zap.String("company", normalized), zap.Error(err))
		return Candidate{}, false
	}
	for _, res := range results {
		host := hostOf(res.URL)
		if host == "" {
			continue
		}
		registrable, err := publicsuffix.EffectiveTLDPlusOne(host)
		if err != nil {
			continue
		}
		if r.generic.IsGeneric(registrable) {
			continue
		}
		if matchesCompany(normalized, registrable) {
			return Candidate{Domain: registrable, Strategy: StrategySearch}, true
		}
	}
	return Candidate{}, false
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}

// matchesCompany applies the word-overlap heuristic: a significant company
// word must substring-match the registrable label, or the concatenated
// name must equal it.
func matchesCompany(normalized, registrable string) bool {
	label := registrable
	if i := strings.IndexByte(label, '.'); i > 0 {
		label = label[:i]
	}
	words := significantWords(normalized)
	for _, w := range words {
		if strings.Contains(label, w) {
			return true
		}
	}
	return strings.Join(splitWords(normalized), "") == label
}

// Normalize lowercases, trims, and collapses whitespace in a company name.
func Normalize(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(name))), " ")
}
