package llm

import (
	"context"
	"time"

	"github.com/DjordjeVuckovic/news-mann/internal/metrics"
	"golang.org/x/time/rate"
)

// Guarded wraps a Client with a shared rate limiter, a per-call timeout and call metrics.
type Guarded struct {
	name    string
	next    Client
	limiter *rate.Limiter
	timeout time.Duration
}

type GuardOption func(g *Guarded)

func WithLimiter(l *rate.Limiter) GuardOption {
	return func(g *Guarded) {
		g.limiter = l
	}
}

func WithTimeout(d time.Duration) GuardOption {
	return func(g *Guarded) {
		g.timeout = d
	}
}

// NewLimiter builds a limiter allowing perSec calls per second with a burst of one.
// A non-positive rate disables limiting.
func NewLimiter(perSec float64) *rate.Limiter {
	if perSec <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Limit(perSec), 1)
}

func NewGuarded(name string, next Client, opts ...GuardOption) *Guarded {
	g := &Guarded{
		name:    name,
		next:    next,
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Guarded) Complete(ctx context.Context, req Request) (*Response, error) {
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			metrics.RecordModelCall(g.name, metrics.OutcomeError, 0)
			return nil, err
		}
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := g.next.Complete(ctx, req)
	if err != nil {
		metrics.RecordModelCall(g.name, metrics.OutcomeError, time.Since(start))
		return nil, err
	}
	metrics.RecordModelCall(g.name, metrics.OutcomeOK, time.Since(start))
	return resp, nil
}

var _ Client = (*Guarded)(nil)
