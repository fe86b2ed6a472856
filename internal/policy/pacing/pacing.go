// Package pacing implements the politeness delay applied before every
// outbound network call.
package pacing

import (
	"context"
	"crypto/rand"
	"math/big"
	"time"

	xrate "golang.org/x/time/rate"
)

// Pacer sleeps for a jittered duration within [min, max] before each call
// and additionally enforces a hard rate floor so bursts cannot bypass the
// jitter by racing from multiple call sites.
type Pacer struct {
	min     time.Duration
	max     time.Duration
	limiter *xrate.Limiter
}

// New builds a Pacer for the given delay range. A non-positive range
// yields a no-op pacer, useful in tests.
func New(min, max time.Duration) *Pacer {
	if min < 0 {
		min = 0
	}
	if max < min {
		max = min
	}
	p := &Pacer{min: min, max: max}
	if min > 0 {
		p.limiter = xrate.NewLimiter(xrate.Every(min), 1)
	}
	return p
}

// Wait blocks for the jittered delay or until ctx is done.
func (p *Pacer) Wait(ctx context.Context) error {
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return err
		}
	}
	delay := p.min + randomJitter(p.max-p.min)
	if delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func randomJitter(limit time.Duration) time.Duration {
	if limit <= 0 {
		return 0
	}
	bound := big.NewInt(int64(limit))
	n, err := rand.Int(rand.Reader, bound)
	if err != nil {
		return limit / 2
	}
	return time.Duration(n.Int64())
}
