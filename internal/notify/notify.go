// Package notify sends fire-and-forget customer messaging. Failures
// here must never roll back an order.
package notify

import (
	"context"

	"fauve-storefront/internal/domain"
)

// Notifier is the notification sender contract.
type Notifier interface {
	// OrderConfirmation tells the customer their order went through.
	OrderConfirmation(ctx context.Context, order *domain.Order) error
	// Welcome sends the first-purchase welcome message.
	Welcome(ctx context.Context, email, firstName string) error
}
