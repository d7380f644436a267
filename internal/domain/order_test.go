package domain

import (
	"errors"
	"testing"
)

func TestCanTransitionTable(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		allowed  bool
	}{
		{OrderStatusPending, OrderStatusProcessing, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusProcessing, OrderStatusShipped, true},
		{OrderStatusProcessing, OrderStatusCancelled, true},
		{OrderStatusShipped, OrderStatusDelivered, true},

		{OrderStatusPending, OrderStatusShipped, false},
		{OrderStatusPending, OrderStatusDelivered, false},
		{OrderStatusShipped, OrderStatusCancelled, false},
		{OrderStatusDelivered, OrderStatusPending, false},
		{OrderStatusDelivered, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusProcessing, false},
		{OrderStatusProcessing, OrderStatusPending, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.allowed {
			t.Fatalf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestTransitionRejectsReverseSkip(t *testing.T) {
	o := &Order{Status: OrderStatusDelivered}
	err := o.Transition(OrderStatusPending)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if o.Status != OrderStatusDelivered {
		t.Fatalf("status changed on illegal transition: %s", o.Status)
	}
}

func TestTransitionCancelFromProcessing(t *testing.T) {
	o := &Order{Status: OrderStatusProcessing}
	if err := o.Transition(OrderStatusCancelled); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.Status != OrderStatusCancelled {
		t.Fatalf("expected cancelled, got %s", o.Status)
	}
	if o.UpdatedAt.IsZero() {
		t.Fatalf("expected UpdatedAt to be set")
	}
}

func TestTerminalStates(t *testing.T) {
	if !OrderStatusDelivered.Terminal() || !OrderStatusCancelled.Terminal() {
		t.Fatalf("delivered and cancelled must be terminal")
	}
	if OrderStatusPending.Terminal() || OrderStatusProcessing.Terminal() || OrderStatusShipped.Terminal() {
		t.Fatalf("non-terminal state reported as terminal")
	}
}

func TestStatusValid(t *testing.T) {
	if !OrderStatusPending.Valid() {
		t.Fatalf("pending must be valid")
	}
	if OrderStatus("refunded").Valid() {
		t.Fatalf("unknown status reported valid")
	}
}
