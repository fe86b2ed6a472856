// Package cache provides a TTL key/value cache shared by the enrichment
// strategies so repeated lookups avoid repeat network work.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/leadgrid/enricher/internal/metrics"
)

// ErrMiss is returned by a Store when no entry exists for a key.
var ErrMiss = errors.New("cache: miss")

// Store persists raw entries under string keys. Implementations must treat
// an absent key as ErrMiss, never as an empty value.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

type envelope struct {
	Timestamp time.Time       `json:"timestamp"`
	Value     json.RawMessage `json:"value"`
}

// Cache wraps a Store with TTL semantics. An expired or corrupt entry
// behaves as a miss; corrupt entries are purged best-effort, expired ones
// are left in place for the backend to reap.
type Cache struct {
	store  Store
	ttl    time.Duration
	now    func() time.Time
	logger *zap.Logger
}

// New builds a Cache over the given store.
func New(store Store, ttl time.Duration, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{
		store:  store,
		ttl:    ttl,
		now:    time.Now,
		logger: logger,
	}
}

// Get reads a live entry into dest and reports whether one was found.
func (c *Cache) Get(ctx context.Context, key string, dest any) bool {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrMiss) {
			c.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		}
		metrics.CacheMisses.Inc()
		return false
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		c.logger.Warn("purging corrupt cache entry", zap.String("key", key), zap.Error(err))
		_ = c.store.Delete(ctx, key)
		metrics.CacheMisses.Inc()
		return false
	}
	if c.now().Sub(env.Timestamp) > c.ttl {
		metrics.CacheMisses.Inc()
		return false
	}
	if err := json.Unmarshal(env.Value, dest); err != nil {
		c.logger.Warn("purging corrupt cache value", zap.String("key", key), zap.Error(err))
		_ = c.store.Delete(ctx, key)
		metrics.CacheMisses.Inc()
		return false
	}
	metrics.CacheHits.Inc()
	return true
}

// Set writes value under key, stamped with the current time.
func (c *Cache) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	data, err := json.Marshal(envelope{Timestamp: c.now(), Value: raw})
	if err != nil {
		return err
	}
	return c.store.Set(ctx, key, data)
}
