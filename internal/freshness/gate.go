// Package freshness suppresses re-processing of a topic that was stored recently.
package freshness

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/DjordjeVuckovic/news-mann/internal/apperr"
	"github.com/DjordjeVuckovic/news-mann/pkg/stringsutil"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	DefaultWindow   = 30 * time.Minute
	defaultMemoSize = 1024
)

// LatestSource reports when an article was last stored for a topic. A nil time means never.
type LatestSource interface {
	LatestArticleAt(ctx context.Context, topic string) (*time.Time, error)
}

// Decision is the outcome of a gate check. Fresh topics were updated inside the window and
// must be skipped.
type Decision struct {
	Fresh   bool
	Elapsed time.Duration
	Message string
}

type Option func(g *Gate)

type Gate struct {
	source LatestSource
	window time.Duration
	now    func() time.Time
	memo   *expirable.LRU[string, time.Time]
}

func NewGate(source LatestSource, opts ...Option) *Gate {
	g := &Gate{
		source: source,
		window: DefaultWindow,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.memo = expirable.NewLRU[string, time.Time](defaultMemoSize, nil, g.window)
	return g
}

func WithWindow(window time.Duration) Option {
	return func(g *Gate) {
		if window > 0 {
			g.window = window
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(g *Gate) {
		g.now = now
	}
}

func (g *Gate) Window() time.Duration {
	return g.window
}

// Check decides whether topic may be processed now. Lookup failures are storage errors.
func (g *Gate) Check(ctx context.Context, topic string) (Decision, error) {
	key := stringsutil.NormalizeTopic(topic)
	now := g.now()

	if at, ok := g.memo.Get(key); ok {
		if d := g.decide(topic, now, at); d.Fresh {
			slog.Debug("Freshness memo hit", "topic", key, "elapsed", d.Elapsed)
			return d, nil
		}
	}

	latest, err := g.source.LatestArticleAt(ctx, key)
	if err != nil {
		return Decision{}, apperr.NewStorage("latest article lookup", err)
	}
	if latest == nil {
		return Decision{}, nil
	}

	d := g.decide(topic, now, *latest)
	if d.Fresh {
		g.memo.Add(key, *latest)
	}
	return d, nil
}

// Remember records that topic was stored at.
func (g *Gate) Remember(topic string, at time.Time) {
	g.memo.Add(stringsutil.NormalizeTopic(topic), at)
}

func (g *Gate) decide(topic string, now, at time.Time) Decision {
	elapsed := now.Sub(at)
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed >= g.window {
		return Decision{Elapsed: elapsed}
	}
	return Decision{
		Fresh:   true,
		Elapsed: elapsed,
		Message: Message(topic, elapsed, g.window),
	}
}

// Message renders the user facing skip notice.
func Message(topic string, elapsed, window time.Duration) string {
	minutes := int(elapsed / time.Minute)
	wait := int(math.Ceil((window - elapsed).Minutes()))
	if wait < 1 {
		wait = 1
	}
	return fmt.Sprintf("Topic '%s' was updated %s ago. Please try again after %s.", topic, pluralMinutes(minutes), pluralMinutes(wait))
}

func pluralMinutes(n int) string {
	if n == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", n)
}

// Skip converts a fresh decision to the error returned by pipeline runs.
func (d Decision) Skip(topic string) *apperr.GateSkip {
	return &apperr.GateSkip{Topic: topic, Elapsed: d.Elapsed, Message: d.Message}
}
