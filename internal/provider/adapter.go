// Package provider fetches price history through an ordered fallback
// chain: bar cache, static snapshot, then rate-limited vendor adapters.
package provider

import (
	"context"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"TradeScope/internal/model"
)

// Adapter is one external price-history vendor. Adapters are consumed
// by the waterfall in priority order within the categories they
// support. Fetch returns an empty slice when the vendor has no data;
// an error means the call itself failed and the waterfall moves on.
type Adapter interface {
	Name() string
	Supports(category model.Category) bool
	Priority() int
	Fetch(ctx context.Context, symbol string, start, end time.Time) ([]model.Bar, error)
}

// limited wraps an Adapter with its own rate limiter and circuit
// breaker. The limiter is owned by the wrapped instance, never shared
// process-wide; one token per configured interval serializes outbound
// calls per adapter.
type limited struct {
	inner   Adapter
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
}

// withGuards wraps an adapter with a per-instance limiter and breaker.
func withGuards(inner Adapter, minInterval time.Duration) *limited {
	if minInterval <= 0 {
		minInterval = time.Second
	}
	return &limited{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Every(minInterval), 1),
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        inner.Name(),
			MaxRequests: 1,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
}

func (l *limited) Name() string                          { return l.inner.Name() }
func (l *limited) Supports(category model.Category) bool { return l.inner.Supports(category) }
func (l *limited) Priority() int                         { return l.inner.Priority() }

func (l *limited) Fetch(ctx context.Context, symbol string, start, end time.Time) ([]model.Bar, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	out, err := l.breaker.Execute(func() (any, error) {
		return l.inner.Fetch(ctx, symbol, start, end)
	})
	if err != nil {
		return nil, err
	}
	return out.([]model.Bar), nil
}
