package pacing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWaitStaysWithinRange(t *testing.T) {
	t.Parallel()
	p := New(5*time.Millisecond, 20*time.Millisecond)

	start := time.Now()
	require.NoError(t, p.Wait(context.Background()))
	elapsed := time.Since(start)
	require.GreaterOrEqual(t, elapsed, 5*time.Millisecond)
	require.Less(t, elapsed, 500*time.Millisecond)
}

func TestWaitNoopPacer(t *testing.T) {
	t.Parallel()
	p := New(0, 0)
	require.NoError(t, p.Wait(context.Background()))
}

func TestWaitHonorsCancellation(t *testing.T) {
	t.Parallel()
	p := New(time.Second, 2*time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := p.Wait(ctx)
	require.Error(t, err)
}

func TestNewNormalizesInvertedRange(t *testing.T) {
	t.Parallel()
	p := New(10*time.Millisecond, time.Millisecond)
	require.Equal(t, p.min, p.max)
}
