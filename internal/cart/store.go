// Package cart implements the per-session shopping cart: an ordered
// collection of line items with observer notifications on every change.
package cart

import (
	"sync"

	"github.com/shopspring/decimal"

	"fauve-storefront/internal/domain"
	"fauve-storefront/internal/money"
)

// Snapshot is the consistent view published to observers after every
// mutation: the items plus the totals derived from them.
type Snapshot struct {
	Items       []domain.LineItem `json:"items"`
	Subtotal    decimal.Decimal   `json:"subtotal"`
	ShippingFee decimal.Decimal   `json:"shippingFee"`
	Total       decimal.Decimal   `json:"total"`
	ItemCount   int               `json:"itemCount"`
}

// Observer receives a snapshot after each cart mutation.
type Observer func(Snapshot)

// Store holds one session's cart. It is owned by a single session;
// the internal mutex only guards against concurrent handlers for that
// same session. Invalid input (non-positive quantity, unknown product)
// degrades to a no-op rather than an error: cart edits are low-stakes
// and user-reversible.
type Store struct {
	mu        sync.Mutex
	pricing   money.Pricing
	items     []domain.LineItem
	observers map[int]Observer
	nextObsID int
}

// NewStore returns an empty cart using the given pricing policy.
func NewStore(pricing money.Pricing) *Store {
	return &Store{
		pricing:   pricing,
		observers: make(map[int]Observer),
	}
}

// Subscribe registers an observer and returns a function that removes it.
func (s *Store) Subscribe(obs Observer) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextObsID
	s.nextObsID++
	s.observers[id] = obs
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.observers, id)
	}
}

// AddItem merges quantity into an existing line for the same product or
// appends a new line. Quantities of zero or less are ignored.
func (s *Store) AddItem(p domain.Product, quantity int) {
	if quantity <= 0 {
		return
	}
	s.mu.Lock()
	merged := false
	for i := range s.items {
		if s.items[i].ProductID == p.ID {
			s.items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		s.items = append(s.items, domain.LineItem{
			ProductID: p.ID,
			Name:      p.Name,
			UnitPrice: p.Price,
			Quantity:  quantity,
			Image:     p.Image,
		})
	}
	s.notifyLocked()
}

// UpdateQuantity sets the line's quantity exactly. Anything below one
// removes the line, mirroring the storefront's minus button. An unknown
// product id is a no-op that still notifies, which keeps UI updates simple.
func (s *Store) UpdateQuantity(productID string, quantity int) {
	if quantity < 1 {
		s.RemoveItem(productID)
		return
	}
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Quantity = quantity
			break
		}
	}
	s.notifyLocked()
}

// RemoveItem deletes the line for the product if present.
func (s *Store) RemoveItem(productID string) {
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	s.notifyLocked()
}

// Clear empties the cart. Used after a successful checkout.
func (s *Store) Clear() {
	s.mu.Lock()
	s.items = nil
	s.notifyLocked()
}

// Items returns a deep copy of the current line items.
func (s *Store) Items() []domain.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyItemsLocked()
}

// Snapshot returns the current items together with recomputed totals.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) copyItemsLocked() []domain.LineItem {
	items := make([]domain.LineItem, len(s.items))
	copy(items, s.items)
	return items
}

func (s *Store) snapshotLocked() Snapshot {
	items := s.copyItemsLocked()
	subtotal := money.Subtotal(items)
	fee := s.pricing.ShippingFee(subtotal)
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return Snapshot{
		Items:       items,
		Subtotal:    subtotal,
		ShippingFee: fee,
		Total:       subtotal.Add(fee),
		ItemCount:   count,
	}
}

// notifyLocked builds the snapshot under the lock, then releases it and
// invokes every observer before the mutating call returns. Observers may
// call back into the store.
func (s *Store) notifyLocked() {
	snap := s.snapshotLocked()
	observers := make([]Observer, 0, len(s.observers))
	for _, obs := range s.observers {
		observers = append(observers, obs)
	}
	s.mu.Unlock()
	for _, obs := range observers {
		obs(snap)
	}
}
