// Package money holds the pure pricing arithmetic for carts and orders.
// All amounts are decimals; nothing here does I/O or keeps state.
package money

import (
	"github.com/shopspring/decimal"

	"fauve-storefront/internal/domain"
)

// Pricing is the configurable pricing policy: shipping is free once the
// subtotal reaches the threshold, otherwise a flat fee applies.
type Pricing struct {
	FreeShippingThreshold decimal.Decimal
	FlatShippingFee       decimal.Decimal
	Currency              string
}

// DefaultPricing returns the storefront defaults: free shipping from
// 50.00 EUR, flat 4.90 EUR below that.
func DefaultPricing() Pricing {
	return Pricing{
		FreeShippingThreshold: decimal.NewFromInt(50),
		FlatShippingFee:       decimal.RequireFromString("4.90"),
		Currency:              "EUR",
	}
}

// Subtotal sums unit price times quantity over all items. Intermediate
// sums keep full precision; rounding to minor units happens only at
// display or persistence time.
func Subtotal(items []domain.LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return sum
}

// ShippingFee returns zero when the subtotal meets the free-shipping
// threshold, the flat fee otherwise. Hitting the threshold exactly
// grants free shipping.
func (p Pricing) ShippingFee(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(p.FreeShippingThreshold) {
		return decimal.Zero
	}
	return p.FlatShippingFee
}

// Total is subtotal plus the shipping fee for that subtotal.
func (p Pricing) Total(items []domain.LineItem) decimal.Decimal {
	subtotal := Subtotal(items)
	return subtotal.Add(p.ShippingFee(subtotal))
}

// MinorUnits converts an amount to integer minor units (cents for EUR),
// the representation the payment processor contract works in.
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// Round2 rounds an amount to two minor units for display or persistence.
func Round2(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}
