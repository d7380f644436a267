package httpserver

import (
	"sync"

	"fauve-storefront/internal/cart"
	"fauve-storefront/internal/money"
)

// sessionRegistry hands out one cart per storefront session. Carts are
// deliberately not shared across sessions or tabs; each session id owns
// an independent in-memory cart for the process lifetime.
type sessionRegistry struct {
	mu      sync.Mutex
	pricing money.Pricing
	carts   map[string]*cart.Store
}

func newSessionRegistry(pricing money.Pricing) *sessionRegistry {
	return &sessionRegistry{
		pricing: pricing,
		carts:   make(map[string]*cart.Store),
	}
}

// cart returns the session's cart, creating an empty one on first use.
func (r *sessionRegistry) cart(sessionID string) *cart.Store {
	r.mu.Lock()
	defer r.mu.Unlock()
	store, ok := r.carts[sessionID]
	if !ok {
		store = cart.NewStore(r.pricing)
		r.carts[sessionID] = store
	}
	return store
}
