package payment

import (
	"context"
	"time"

	"github.com/sony/gobreaker/v2"
)

// Breaker decorates a Processor with circuit breakers so a flapping
// provider fails fast instead of hanging every checkout behind it.
// Intent creation and capture trip independently.
type Breaker struct {
	next    Processor
	intent  *gobreaker.CircuitBreaker[string]
	capture *gobreaker.CircuitBreaker[CaptureResult]
}

func NewBreaker(next Processor) *Breaker {
	settings := func(name string) gobreaker.Settings {
		return gobreaker.Settings{
			Name:    name,
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}
	}
	return &Breaker{
		next:    next,
		intent:  gobreaker.NewCircuitBreaker[string](settings("payment-create-intent")),
		capture: gobreaker.NewCircuitBreaker[CaptureResult](settings("payment-capture")),
	}
}

func (b *Breaker) CreateIntent(ctx context.Context, amountMinorUnits int64, currency string) (string, error) {
	return b.intent.Execute(func() (string, error) {
		return b.next.CreateIntent(ctx, amountMinorUnits, currency)
	})
}

func (b *Breaker) Capture(ctx context.Context, intentID string) (CaptureResult, error) {
	return b.capture.Execute(func() (CaptureResult, error) {
		return b.next.Capture(ctx, intentID)
	})
}
