package store

import (
	"context"

	"cloud.google.com/go/firestore"
)

// Document is one record read back from the store.
type Document struct {
	ID   string
	Data map[string]any
}

// ServerTimestamp marks a field whose value is assigned by the backend's
// clock at write time.
var ServerTimestamp any = firestore.ServerTimestamp

// Store is a path-addressed document store. Paths are slash-separated
// ("users/{uid}", "users/{uid}/history/{id}"); collections address the
// parent level ("users/{uid}/history").
type Store interface {
	// Get returns the document at path. The bool reports whether it exists;
	// a missing document is not an error.
	Get(ctx context.Context, path string) (*Document, bool, error)

	// Set writes the document at path, replacing it. With merge, the given
	// fields are merged into the existing document instead.
	Set(ctx context.Context, path string, data map[string]any, merge bool) error

	// Create writes the document at path only if it does not exist yet.
	// A lost race surfaces as an already-exists error.
	Create(ctx context.Context, path string, data map[string]any) error

	// Update applies a partial update to an existing document.
	Update(ctx context.Context, path string, data map[string]any) error

	// Delete removes the document at path.
	Delete(ctx context.Context, path string) error

	// Add creates a document with a generated id under collection and
	// returns the id.
	Add(ctx context.Context, collection string, data map[string]any) (string, error)

	// List returns every document in collection, optionally ordered by a
	// field, descending when desc is set.
	List(ctx context.Context, collection, orderBy string, desc bool) ([]Document, error)
}
