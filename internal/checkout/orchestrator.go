// Package checkout drives a cart through payment capture into a
// persisted order. Each attempt is an explicit state machine so tests
// and callers can observe exactly how far it got.
package checkout

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"fauve-storefront/internal/cart"
	"fauve-storefront/internal/docstore"
	"fauve-storefront/internal/domain"
	"fauve-storefront/internal/identity"
	"fauve-storefront/internal/money"
	"fauve-storefront/internal/notify"
	"fauve-storefront/internal/payment"
)

// OrdersCollection is where finished orders land in the document store.
const OrdersCollection = "orders"

// State is the position of a checkout attempt in its pipeline.
type State string

const (
	StateIdle            State = "idle"
	StateValidating      State = "validating"
	StateAwaitingPayment State = "awaiting_payment"
	StateCapturing       State = "capturing"
	StatePersisting      State = "persisting"
	StateNotifying       State = "notifying"
	StateComplete        State = "complete"
	StateFailed          State = "failed"
)

// Orchestrator wires one session's cart to the external payment
// processor, document store, and notifier.
type Orchestrator struct {
	cart     *cart.Store
	pricing  money.Pricing
	payments payment.Processor
	store    docstore.Store
	notifier notify.Notifier
	logger   *log.Logger
}

func New(cartStore *cart.Store, pricing money.Pricing, payments payment.Processor, store docstore.Store, notifier notify.Notifier, logger *log.Logger) *Orchestrator {
	return &Orchestrator{
		cart:     cartStore,
		pricing:  pricing,
		payments: payments,
		store:    store,
		notifier: notifier,
		logger:   logger,
	}
}

// Attempt is one single-shot run of the checkout pipeline. Re-running a
// finished attempt returns the stored outcome without touching any
// collaborator again.
type Attempt struct {
	o    *Orchestrator
	form domain.CheckoutForm
	user *identity.User

	mu             sync.Mutex
	state          State
	captureStarted bool
	cancelled      bool
	running        bool
	done           bool
	order          *domain.Order
	err            error
}

// NewAttempt binds a checkout form and optional authenticated user to a
// fresh attempt. user may be nil for guest checkout.
func (o *Orchestrator) NewAttempt(form domain.CheckoutForm, user *identity.User) *Attempt {
	return &Attempt{o: o, form: form, user: user, state: StateIdle}
}

// State reports where the attempt currently stands.
func (a *Attempt) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Cancel abandons the attempt. It is only accepted before payment
// capture begins; afterwards the attempt must run to completion.
func (a *Attempt) Cancel() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.captureStarted || a.done {
		return ErrCaptureStarted
	}
	a.cancelled = true
	return nil
}

// Run executes the pipeline once. On success the order is persisted,
// notifications are fired best-effort, and the cart is cleared. On any
// failure the cart is left as it was.
func (a *Attempt) Run(ctx context.Context) (*domain.Order, error) {
	a.mu.Lock()
	if a.done {
		order, err := a.order, a.err
		a.mu.Unlock()
		return order, err
	}
	if a.running {
		a.mu.Unlock()
		return nil, ErrAttemptInFlight
	}
	cancelled := a.cancelled
	a.running = true
	a.state = StateValidating
	a.mu.Unlock()

	if cancelled {
		return a.finish(nil, ErrCancelled)
	}

	// Validation happens before any external call: no payment is ever
	// initiated for an invalid order.
	items := a.o.cart.Items()
	if len(items) == 0 {
		return a.finish(nil, ErrEmptyCart)
	}
	if missing := missingFields(a.form); len(missing) > 0 {
		return a.finish(nil, &InvalidFormError{Missing: missing})
	}

	subtotal := money.Subtotal(items)
	shippingFee := a.o.pricing.ShippingFee(subtotal)
	total := subtotal.Add(shippingFee)

	a.setState(StateAwaitingPayment)
	intentID, err := a.o.payments.CreateIntent(ctx, money.MinorUnits(total), a.o.pricing.Currency)
	if err != nil {
		return a.finish(nil, &PaymentError{Err: err})
	}

	// Last exit before money moves. From here the attempt runs to
	// Complete or Failed regardless of caller cancellation, so a charge
	// never ends up without a record.
	a.mu.Lock()
	if a.cancelled {
		a.mu.Unlock()
		return a.finish(nil, ErrCancelled)
	}
	a.captureStarted = true
	a.state = StateCapturing
	a.mu.Unlock()
	ctx = context.WithoutCancel(ctx)

	capture, err := a.o.payments.Capture(ctx, intentID)
	if err != nil {
		return a.finish(nil, &PaymentError{Err: err})
	}
	if capture.Status != payment.StatusCompleted {
		return a.finish(nil, &PaymentError{Status: capture.Status})
	}

	a.setState(StatePersisting)
	now := time.Now().UTC()
	order := a.buildOrder(items, subtotal, shippingFee, total, capture, now)

	id, err := a.o.store.Create(ctx, OrdersCollection, orderRecord(order))
	if err != nil {
		a.o.logger.Printf("order write failed after capture, reconcile transaction %s manually: %v", capture.ID, err)
		return a.finish(nil, &PersistenceError{TransactionID: capture.ID, Err: err})
	}
	order.ID = id

	a.setState(StateNotifying)
	if a.o.notifier != nil {
		if err := a.o.notifier.OrderConfirmation(ctx, order); err != nil {
			a.o.logger.Printf("order confirmation for %s failed: %v", order.OrderNumber, err)
		}
		if err := a.o.notifier.Welcome(ctx, order.Customer.Email, order.Customer.FirstName); err != nil {
			a.o.logger.Printf("welcome email for %s failed: %v", order.Customer.Email, err)
		}
	}

	a.o.cart.Clear()
	return a.finish(order, nil)
}

func (a *Attempt) setState(s State) {
	a.mu.Lock()
	a.state = s
	a.mu.Unlock()
}

func (a *Attempt) finish(order *domain.Order, err error) (*domain.Order, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.done = true
	a.running = false
	a.order = order
	a.err = err
	if err != nil {
		a.state = StateFailed
	} else {
		a.state = StateComplete
	}
	return order, err
}

func (a *Attempt) buildOrder(items []domain.LineItem, subtotal, shippingFee, total decimal.Decimal, capture payment.CaptureResult, now time.Time) *domain.Order {
	userID := ""
	if a.user != nil {
		userID = a.user.ID
	}
	return &domain.Order{
		OrderNumber: orderNumber(now),
		Items:       items,
		Customer: domain.Customer{
			UserID:    userID,
			Email:     a.form.Email,
			FirstName: a.form.FirstName,
			LastName:  a.form.LastName,
			Phone:     a.form.Phone,
		},
		Shipping: domain.ShippingAddress{
			Address:    a.form.Address,
			City:       a.form.City,
			Country:    a.form.Country,
			PostalCode: a.form.PostalCode,
		},
		Payment: domain.Payment{
			Method:        "external",
			TransactionID: capture.ID,
			Status:        capture.Status,
			Amount:        money.Round2(total),
			Currency:      a.o.pricing.Currency,
		},
		Status:      domain.OrderStatusPending,
		Subtotal:    money.Round2(subtotal),
		ShippingFee: money.Round2(shippingFee),
		Total:       money.Round2(total),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// orderRecord flattens an order into the persisted document shape.
// Amounts are stored as plain numbers rounded to two minor units.
func orderRecord(o *domain.Order) docstore.Record {
	items := make([]docstore.Record, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, docstore.Record{
			"id":       item.ProductID,
			"name":     item.Name,
			"price":    money.Round2(item.UnitPrice).InexactFloat64(),
			"quantity": item.Quantity,
			"image":    item.Image,
		})
	}
	return docstore.Record{
		"orderNumber": o.OrderNumber,
		"items":       items,
		"customer": docstore.Record{
			"userId":    o.Customer.UserID,
			"email":     o.Customer.Email,
			"firstName": o.Customer.FirstName,
			"lastName":  o.Customer.LastName,
			"phone":     o.Customer.Phone,
		},
		"shipping": docstore.Record{
			"address":    o.Shipping.Address,
			"city":       o.Shipping.City,
			"country":    o.Shipping.Country,
			"postalCode": o.Shipping.PostalCode,
		},
		"payment": docstore.Record{
			"method":        o.Payment.Method,
			"transactionId": o.Payment.TransactionID,
			"status":        o.Payment.Status,
			"amount":        o.Payment.Amount.InexactFloat64(),
			"currency":      o.Payment.Currency,
		},
		"status":      o.Status.String(),
		"subtotal":    o.Subtotal.InexactFloat64(),
		"shippingFee": o.ShippingFee.InexactFloat64(),
		"total":       o.Total.InexactFloat64(),
		"createdAt":   o.CreatedAt,
		"updatedAt":   o.UpdatedAt,
	}
}

func missingFields(form domain.CheckoutForm) []string {
	var missing []string
	require := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	require("email", form.Email)
	require("firstName", form.FirstName)
	require("lastName", form.LastName)
	require("address", form.Address)
	require("city", form.City)
	require("country", form.Country)
	require("postalCode", form.PostalCode)
	require("phone", form.Phone)
	return missing
}
