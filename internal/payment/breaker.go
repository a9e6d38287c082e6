package payment

import (
	"context"
	"time"

	"github.com/sony/gobreaker/v2"
)

// BreakerProcessor wraps a Processor in a circuit breaker so a flapping
// payment boundary fails fast instead of holding every request open. It does
// not retry: a single submission still makes at most one charge attempt.
type BreakerProcessor struct {
	inner Processor
	cb    *gobreaker.CircuitBreaker[*Result]
}

func NewBreakerProcessor(inner Processor) *BreakerProcessor {
	settings := gobreaker.Settings{
		Name:    "payment",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}

	return &BreakerProcessor{
		inner: inner,
		cb:    gobreaker.NewCircuitBreaker[*Result](settings),
	}
}

func (b *BreakerProcessor) Charge(ctx context.Context, orderID string, amount string) (*Result, error) {
	return b.cb.Execute(func() (*Result, error) {
		return b.inner.Charge(ctx, orderID, amount)
	})
}
