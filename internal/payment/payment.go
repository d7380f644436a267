// Package payment defines the external payment processor contract and
// local adapters around it. Capture is an opaque remote call: the core
// keeps no retry state for it.
package payment

import "context"

// Capture statuses the processor may report. Anything other than
// StatusCompleted is treated as a failed capture.
const (
	StatusCompleted = "COMPLETED"
	StatusFailed    = "FAILED"
)

// CaptureResult is the processor's answer to a capture request.
type CaptureResult struct {
	ID     string
	Status string
}

// Processor is the payment provider contract. Amounts are integer minor
// units (cents).
type Processor interface {
	CreateIntent(ctx context.Context, amountMinorUnits int64, currency string) (string, error)
	Capture(ctx context.Context, intentID string) (CaptureResult, error)
}
