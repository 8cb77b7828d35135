package dispatch

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// DefaultInterval is the pacing gap between consecutive sends, chosen to stay
// under the external providers' per-second rate limits.
const DefaultInterval = time.Second

// Pacer suspends the dispatch loop between sends. Only the loop's own
// goroutine blocks; request handling is unaffected.
type Pacer interface {
	Wait(ctx context.Context) error
}

// IntervalPacer enforces a fixed minimum gap between sends using a token
// bucket of size one.
type IntervalPacer struct {
	limiter *rate.Limiter
}

// NewIntervalPacer returns a pacer with the given gap. The initial token is
// drained so the very first Wait already blocks for a full interval; the loop
// calls Wait after each non-final send.
func NewIntervalPacer(interval time.Duration) *IntervalPacer {
	l := rate.NewLimiter(rate.Every(interval), 1)
	l.Allow()
	return &IntervalPacer{limiter: l}
}

// Wait blocks until the next send slot or until ctx is done.
func (p *IntervalPacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}

// NopPacer never waits. Used in tests to assert ordering and counters without
// real elapsed time.
type NopPacer struct{}

func (NopPacer) Wait(ctx context.Context) error { return nil }
