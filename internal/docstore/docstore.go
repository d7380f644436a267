// Package docstore abstracts the remote document database the
// storefront persists to. Records are opaque key/value documents; no
// transactional guarantees across collections are assumed.
package docstore

import (
	"context"
	"errors"
)

// Record is one document. Values must be JSON-representable.
type Record map[string]any

// ErrNotFound indicates the requested document does not exist.
var ErrNotFound = errors.New("document not found")

// Store is the document store contract the core depends on.
type Store interface {
	// Create appends a record to a collection and returns its generated id.
	Create(ctx context.Context, collection string, rec Record) (string, error)
	// Get fetches a record by id.
	Get(ctx context.Context, collection, id string) (Record, error)
	// Update merges the partial record into an existing document.
	Update(ctx context.Context, collection, id string, partial Record) error
	// Query returns the records in a collection matching every field of
	// the filter; a nil filter matches all.
	Query(ctx context.Context, collection string, filter Record) ([]Record, error)
	// Ping verifies connectivity to the backing database.
	Ping(ctx context.Context) error
}
