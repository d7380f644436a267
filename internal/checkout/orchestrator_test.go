package checkout

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fauve-storefront/internal/cart"
	"fauve-storefront/internal/docstore"
	"fauve-storefront/internal/domain"
	"fauve-storefront/internal/money"
	"fauve-storefront/internal/payment"
)

// MockProcessor implements payment.Processor for testing.
type MockProcessor struct {
	IntentCalls   int
	CaptureCalls  int
	IntentErr     error
	CaptureErr    error
	CaptureStatus string
	LastAmount    int64
	LastCurrency  string
	OnCapture     func()
}

func (m *MockProcessor) CreateIntent(_ context.Context, amount int64, currency string) (string, error) {
	m.IntentCalls++
	m.LastAmount = amount
	m.LastCurrency = currency
	if m.IntentErr != nil {
		return "", m.IntentErr
	}
	return "PI-test", nil
}

func (m *MockProcessor) Capture(_ context.Context, _ string) (payment.CaptureResult, error) {
	m.CaptureCalls++
	if m.OnCapture != nil {
		m.OnCapture()
	}
	if m.CaptureErr != nil {
		return payment.CaptureResult{}, m.CaptureErr
	}
	status := m.CaptureStatus
	if status == "" {
		status = payment.StatusCompleted
	}
	return payment.CaptureResult{ID: "TXN-test", Status: status}, nil
}

// MockStore counts order writes and can be told to fail them.
type MockStore struct {
	docstore.Store
	CreateCalls int
	CreateErr   error
	LastRecord  docstore.Record
}

func (m *MockStore) Create(_ context.Context, _ string, rec docstore.Record) (string, error) {
	m.CreateCalls++
	m.LastRecord = rec
	if m.CreateErr != nil {
		return "", m.CreateErr
	}
	return "doc-1", nil
}

// MockNotifier records notification calls and can fail them.
type MockNotifier struct {
	ConfirmCalls int
	WelcomeCalls int
	Err          error
}

func (m *MockNotifier) OrderConfirmation(context.Context, *domain.Order) error {
	m.ConfirmCalls++
	return m.Err
}

func (m *MockNotifier) Welcome(context.Context, string, string) error {
	m.WelcomeCalls++
	return m.Err
}

func validForm() domain.CheckoutForm {
	return domain.CheckoutForm{
		Email:      "jo@example.com",
		FirstName:  "Jo",
		LastName:   "Doe",
		Address:    "1 Rue du Café",
		City:       "Paris",
		Country:    "FR",
		PostalCode: "75001",
		Phone:      "+33600000000",
	}
}

func newFixture() (*Orchestrator, *cart.Store, *MockProcessor, *MockStore, *MockNotifier) {
	cartStore := cart.NewStore(money.DefaultPricing())
	processor := &MockProcessor{}
	store := &MockStore{}
	notifier := &MockNotifier{}
	logger := log.New(io.Discard, "", 0)
	o := New(cartStore, money.DefaultPricing(), processor, store, notifier, logger)
	return o, cartStore, processor, store, notifier
}

func addItem(c *cart.Store, id, price string, qty int) {
	c.AddItem(domain.Product{ID: id, Name: "product " + id, Price: decimal.RequireFromString(price)}, qty)
}

func TestCheckoutEmptyCart(t *testing.T) {
	o, _, processor, store, _ := newFixture()

	attempt := o.NewAttempt(validForm(), nil)
	order, err := attempt.Run(context.Background())

	require.ErrorIs(t, err, ErrEmptyCart)
	assert.Nil(t, order)
	assert.Equal(t, StateFailed, attempt.State())
	assert.Zero(t, processor.IntentCalls)
	assert.Zero(t, processor.CaptureCalls)
	assert.Zero(t, store.CreateCalls)
}

func TestCheckoutInvalidForm(t *testing.T) {
	o, cartStore, processor, store, _ := newFixture()
	addItem(cartStore, "p1", "10.00", 1)

	form := validForm()
	form.Email = ""
	form.City = "   "
	attempt := o.NewAttempt(form, nil)
	_, err := attempt.Run(context.Background())

	var invalid *InvalidFormError
	require.ErrorAs(t, err, &invalid)
	assert.ElementsMatch(t, []string{"email", "city"}, invalid.Missing)
	assert.Zero(t, processor.IntentCalls)
	assert.Zero(t, store.CreateCalls)
	assert.Len(t, cartStore.Items(), 1, "cart must survive a validation failure")
}

func TestCheckoutHappyPath(t *testing.T) {
	o, cartStore, processor, store, notifier := newFixture()
	addItem(cartStore, "p1", "49.99", 1)

	attempt := o.NewAttempt(validForm(), nil)
	order, err := attempt.Run(context.Background())

	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, StateComplete, attempt.State())

	// 49.99 subtotal + 4.90 shipping, charged in minor units.
	assert.Equal(t, int64(5489), processor.LastAmount)
	assert.Equal(t, "EUR", processor.LastCurrency)
	assert.Equal(t, 1, processor.CaptureCalls)

	assert.Equal(t, 1, store.CreateCalls, "exactly one order write")
	assert.Equal(t, "doc-1", order.ID)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.True(t, order.Total.Equal(decimal.RequireFromString("54.89")), "total = %s", order.Total)
	assert.True(t, order.Payment.Amount.Equal(order.Total), "payment amount must equal total")
	assert.Equal(t, "TXN-test", order.Payment.TransactionID)

	assert.Equal(t, 54.89, store.LastRecord["total"])
	paymentRec, ok := store.LastRecord["payment"].(docstore.Record)
	require.True(t, ok)
	assert.Equal(t, 54.89, paymentRec["amount"])
	assert.Equal(t, "pending", store.LastRecord["status"])

	assert.Equal(t, 1, notifier.ConfirmCalls)
	assert.Equal(t, 1, notifier.WelcomeCalls)
	assert.Empty(t, cartStore.Items(), "cart cleared after completion")
}

func TestCheckoutOrderItemsAreSnapshot(t *testing.T) {
	o, cartStore, _, _, _ := newFixture()
	addItem(cartStore, "p1", "10.00", 2)

	attempt := o.NewAttempt(validForm(), nil)
	order, err := attempt.Run(context.Background())
	require.NoError(t, err)

	// Mutating the cart afterwards must not touch the persisted order.
	addItem(cartStore, "p2", "3.00", 1)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "p1", order.Items[0].ProductID)
	assert.Equal(t, 2, order.Items[0].Quantity)
}

func TestCheckoutPaymentRefused(t *testing.T) {
	o, cartStore, processor, store, _ := newFixture()
	addItem(cartStore, "p1", "20.00", 1)
	processor.CaptureStatus = payment.StatusFailed

	attempt := o.NewAttempt(validForm(), nil)
	order, err := attempt.Run(context.Background())

	var payErr *PaymentError
	require.ErrorAs(t, err, &payErr)
	assert.Nil(t, order)
	assert.Equal(t, StateFailed, attempt.State())
	assert.Zero(t, store.CreateCalls, "no order on a failed capture")
	assert.Len(t, cartStore.Items(), 1, "cart preserved for retry")
}

func TestCheckoutIntentCreationFails(t *testing.T) {
	o, cartStore, processor, store, _ := newFixture()
	addItem(cartStore, "p1", "20.00", 1)
	processor.IntentErr = errors.New("provider unreachable")

	attempt := o.NewAttempt(validForm(), nil)
	_, err := attempt.Run(context.Background())

	var payErr *PaymentError
	require.ErrorAs(t, err, &payErr)
	assert.Zero(t, processor.CaptureCalls)
	assert.Zero(t, store.CreateCalls)
	assert.Len(t, cartStore.Items(), 1)
}

func TestCheckoutPersistenceFailureAfterCapture(t *testing.T) {
	o, cartStore, processor, store, _ := newFixture()
	addItem(cartStore, "p1", "20.00", 1)
	store.CreateErr = errors.New("write timeout")

	attempt := o.NewAttempt(validForm(), nil)
	order, err := attempt.Run(context.Background())

	var persistErr *PersistenceError
	require.ErrorAs(t, err, &persistErr)
	assert.Nil(t, order)
	assert.Equal(t, "TXN-test", persistErr.TransactionID, "transaction id preserved for reconciliation")
	assert.Len(t, cartStore.Items(), 1, "cart not cleared on persistence failure")

	// A naive retry of the same attempt must not capture again.
	_, retryErr := attempt.Run(context.Background())
	require.ErrorAs(t, retryErr, &persistErr)
	assert.Equal(t, 1, processor.CaptureCalls)
	assert.Equal(t, 1, processor.IntentCalls)
	assert.Equal(t, 1, store.CreateCalls)
}

func TestCheckoutNotificationFailureIsSwallowed(t *testing.T) {
	o, cartStore, _, store, notifier := newFixture()
	addItem(cartStore, "p1", "20.00", 1)
	notifier.Err = errors.New("smtp down")

	attempt := o.NewAttempt(validForm(), nil)
	order, err := attempt.Run(context.Background())

	require.NoError(t, err, "notification failure must not fail checkout")
	require.NotNil(t, order)
	assert.Equal(t, StateComplete, attempt.State())
	assert.Equal(t, 1, store.CreateCalls)
	assert.Empty(t, cartStore.Items())
}

func TestCancelBeforeRun(t *testing.T) {
	o, cartStore, processor, _, _ := newFixture()
	addItem(cartStore, "p1", "20.00", 1)

	attempt := o.NewAttempt(validForm(), nil)
	require.NoError(t, attempt.Cancel())

	_, err := attempt.Run(context.Background())
	require.ErrorIs(t, err, ErrCancelled)
	assert.Zero(t, processor.IntentCalls)
	assert.Len(t, cartStore.Items(), 1)
}

func TestCancelRejectedOnceCaptureStarted(t *testing.T) {
	o, cartStore, processor, _, _ := newFixture()
	addItem(cartStore, "p1", "20.00", 1)

	attempt := o.NewAttempt(validForm(), nil)
	var cancelErr error
	processor.OnCapture = func() {
		cancelErr = attempt.Cancel()
	}

	order, err := attempt.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, order)
	require.ErrorIs(t, cancelErr, ErrCaptureStarted)
}

func TestRerunCompletedAttemptReturnsStoredOrder(t *testing.T) {
	o, cartStore, processor, store, _ := newFixture()
	addItem(cartStore, "p1", "20.00", 1)

	attempt := o.NewAttempt(validForm(), nil)
	first, err := attempt.Run(context.Background())
	require.NoError(t, err)

	second, err := attempt.Run(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, processor.CaptureCalls)
	assert.Equal(t, 1, store.CreateCalls)
}

func TestGuestCheckoutHasNoUserID(t *testing.T) {
	o, cartStore, _, store, _ := newFixture()
	addItem(cartStore, "p1", "20.00", 1)

	attempt := o.NewAttempt(validForm(), nil)
	order, err := attempt.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, order.Customer.UserID)

	customer, ok := store.LastRecord["customer"].(docstore.Record)
	require.True(t, ok)
	assert.Equal(t, "", customer["userId"])
}
