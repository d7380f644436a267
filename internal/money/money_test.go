package money

import (
	"testing"

	"github.com/shopspring/decimal"

	"fauve-storefront/internal/domain"
)

func item(id, price string, qty int) domain.LineItem {
	return domain.LineItem{
		ProductID: id,
		Name:      id,
		UnitPrice: decimal.RequireFromString(price),
		Quantity:  qty,
	}
}

func TestSubtotal(t *testing.T) {
	items := []domain.LineItem{
		item("p1", "12.50", 2),
		item("p2", "4.99", 3),
	}
	got := Subtotal(items)
	want := decimal.RequireFromString("39.97")
	if !got.Equal(want) {
		t.Fatalf("subtotal = %s, want %s", got, want)
	}
}

func TestSubtotalEmpty(t *testing.T) {
	if got := Subtotal(nil); !got.Equal(decimal.Zero) {
		t.Fatalf("subtotal of empty cart = %s, want 0", got)
	}
}

func TestSubtotalOrderIndependent(t *testing.T) {
	a := []domain.LineItem{item("p1", "12.50", 2), item("p2", "4.99", 3), item("p3", "0.01", 7)}
	b := []domain.LineItem{a[2], a[0], a[1]}
	if !Subtotal(a).Equal(Subtotal(b)) {
		t.Fatalf("subtotal depends on item order: %s vs %s", Subtotal(a), Subtotal(b))
	}
}

func TestShippingFeeBelowThreshold(t *testing.T) {
	p := DefaultPricing()
	items := []domain.LineItem{item("p1", "49.99", 1)}
	subtotal := Subtotal(items)

	fee := p.ShippingFee(subtotal)
	if !fee.Equal(decimal.RequireFromString("4.90")) {
		t.Fatalf("shipping fee = %s, want 4.90", fee)
	}
	total := p.Total(items)
	if !total.Equal(decimal.RequireFromString("54.89")) {
		t.Fatalf("total = %s, want 54.89", total)
	}
}

func TestShippingFreeAtExactThreshold(t *testing.T) {
	p := DefaultPricing()
	items := []domain.LineItem{item("p1", "50.00", 1)}
	subtotal := Subtotal(items)

	if fee := p.ShippingFee(subtotal); !fee.Equal(decimal.Zero) {
		t.Fatalf("shipping fee at threshold = %s, want 0", fee)
	}
	if total := p.Total(items); !total.Equal(decimal.RequireFromString("50.00")) {
		t.Fatalf("total = %s, want 50.00", total)
	}
}

func TestTotalIdempotent(t *testing.T) {
	p := DefaultPricing()
	items := []domain.LineItem{item("p1", "19.90", 2)}
	first := p.Total(items)
	second := p.Total(items)
	if !first.Equal(second) {
		t.Fatalf("total not idempotent: %s vs %s", first, second)
	}
}

func TestMinorUnits(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"54.89", 5489},
		{"50.00", 5000},
		{"0", 0},
		{"4.90", 490},
	}
	for _, tc := range cases {
		if got := MinorUnits(decimal.RequireFromString(tc.in)); got != tc.want {
			t.Fatalf("MinorUnits(%s) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
