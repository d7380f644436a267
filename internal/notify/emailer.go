package notify

import (
	"context"
	"fmt"
	"time"

	"fauve-storefront/internal/docstore"
	"fauve-storefront/internal/domain"
	"fauve-storefront/internal/money"
)

const emailCollection = "emails"

// Emailer queues outbound emails as documents in the store, where a
// separate delivery worker picks them up.
type Emailer struct {
	store docstore.Store
}

func NewEmailer(store docstore.Store) *Emailer {
	return &Emailer{store: store}
}

func (e *Emailer) OrderConfirmation(ctx context.Context, order *domain.Order) error {
	items := make([]docstore.Record, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, docstore.Record{
			"name":     item.Name,
			"quantity": item.Quantity,
			"price":    money.Round2(item.UnitPrice).InexactFloat64(),
		})
	}

	rec := docstore.Record{
		"to":       order.Customer.Email,
		"subject":  fmt.Sprintf("Order Confirmation - #%s", order.OrderNumber),
		"template": "order-confirmation",
		"data": docstore.Record{
			"orderNumber":  order.OrderNumber,
			"customerName": order.Customer.FirstName + " " + order.Customer.LastName,
			"items":        items,
			"total":        money.Round2(order.Total).InexactFloat64(),
			"shippingAddress": docstore.Record{
				"address":    order.Shipping.Address,
				"city":       order.Shipping.City,
				"country":    order.Shipping.Country,
				"postalCode": order.Shipping.PostalCode,
			},
		},
		"sentAt": time.Now().UTC(),
	}
	if _, err := e.store.Create(ctx, emailCollection, rec); err != nil {
		return fmt.Errorf("queue order confirmation: %w", err)
	}
	return nil
}

func (e *Emailer) Welcome(ctx context.Context, email, firstName string) error {
	rec := docstore.Record{
		"to":       email,
		"subject":  "Welcome to Fauve Coffee - Your Brewing Guide",
		"template": "welcome-guide",
		"data":     docstore.Record{"customerName": firstName},
		"sentAt":   time.Now().UTC(),
	}
	if _, err := e.store.Create(ctx, emailCollection, rec); err != nil {
		return fmt.Errorf("queue welcome email: %w", err)
	}
	return nil
}
