package checkout

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyCart rejects checkout before any external call is made.
	ErrEmptyCart = errors.New("cart is empty, nothing to checkout")

	// ErrCancelled means the attempt was abandoned before payment
	// capture began.
	ErrCancelled = errors.New("checkout attempt cancelled")

	// ErrCaptureStarted rejects cancellation once capture is underway:
	// the attempt must run to Complete or Failed so a charge never goes
	// unrecorded.
	ErrCaptureStarted = errors.New("payment capture already started")

	// ErrAttemptInFlight rejects a second Run while the first one is
	// still executing.
	ErrAttemptInFlight = errors.New("checkout attempt already running")
)

// InvalidFormError lists the required checkout form fields that were
// left blank.
type InvalidFormError struct {
	Missing []string
}

func (e *InvalidFormError) Error() string {
	return "missing required fields: " + strings.Join(e.Missing, ", ")
}

// PaymentError is a failed or refused payment capture. The cart is left
// untouched so the customer can retry.
type PaymentError struct {
	Status string
	Err    error
}

func (e *PaymentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("payment failed: %v", e.Err)
	}
	return fmt.Sprintf("payment failed with status %s", e.Status)
}

func (e *PaymentError) Unwrap() error { return e.Err }

// PersistenceError is an order write that failed after a successful
// capture. It carries the captured transaction id so an operator can
// reconcile the charge by hand; the capture is never retried.
type PersistenceError struct {
	TransactionID string
	Err           error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("order persistence failed for transaction %s: %v", e.TransactionID, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
