// Package seed loads a handful of demo orders into the document store
// so the admin back office has something to show during manual testing.
package seed

import (
	"context"
	"fmt"
	"time"

	"fauve-storefront/internal/checkout"
	"fauve-storefront/internal/docstore"
)

type orderSeed struct {
	OrderNumber string
	Email       string
	FirstName   string
	LastName    string
	Status      string
	Subtotal    float64
	ShippingFee float64
	Items       []docstore.Record
}

// Apply inserts demo orders for manual testing. It is idempotent: an
// order number that already exists is skipped.
func Apply(ctx context.Context, store docstore.Store) error {
	orders := []orderSeed{
		{
			OrderNumber: "FAU-000001-DEMO1",
			Email:       "alice@example.com",
			FirstName:   "Alice",
			LastName:    "Martin",
			Status:      "pending",
			Subtotal:    24.90,
			ShippingFee: 4.90,
			Items: []docstore.Record{
				{"id": "espresso-blend", "name": "Espresso Blend 250g", "price": 12.45, "quantity": 2, "image": ""},
			},
		},
		{
			OrderNumber: "FAU-000002-DEMO2",
			Email:       "bruno@example.com",
			FirstName:   "Bruno",
			LastName:    "Keller",
			Status:      "processing",
			Subtotal:    62.00,
			ShippingFee: 0,
			Items: []docstore.Record{
				{"id": "filter-roast", "name": "Filter Roast 1kg", "price": 31.00, "quantity": 2, "image": ""},
			},
		},
	}

	for _, o := range orders {
		if err := upsertOrder(ctx, store, o); err != nil {
			return fmt.Errorf("seed order %s: %w", o.OrderNumber, err)
		}
	}
	return nil
}

func upsertOrder(ctx context.Context, store docstore.Store, o orderSeed) error {
	existing, err := store.Query(ctx, checkout.OrdersCollection, docstore.Record{"orderNumber": o.OrderNumber})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	now := time.Now().UTC()
	rec := docstore.Record{
		"orderNumber": o.OrderNumber,
		"items":       o.Items,
		"customer": docstore.Record{
			"userId":    "",
			"email":     o.Email,
			"firstName": o.FirstName,
			"lastName":  o.LastName,
			"phone":     "",
		},
		"shipping": docstore.Record{
			"address":    "1 Rue du Café",
			"city":       "Paris",
			"country":    "FR",
			"postalCode": "75001",
		},
		"payment": docstore.Record{
			"method":        "external",
			"transactionId": "TXN-" + o.OrderNumber,
			"status":        "COMPLETED",
			"amount":        o.Subtotal + o.ShippingFee,
			"currency":      "EUR",
		},
		"status":      o.Status,
		"subtotal":    o.Subtotal,
		"shippingFee": o.ShippingFee,
		"total":       o.Subtotal + o.ShippingFee,
		"createdAt":   now,
		"updatedAt":   now,
	}
	_, err = store.Create(ctx, checkout.OrdersCollection, rec)
	return err
}
