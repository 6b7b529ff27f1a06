package domain

import "context"

// ImageSource fetches one batch of normalized image records from a remote
// photo API. Implemented by the source adapters (unsplash, picsum).
type ImageSource interface {
	// Search returns up to perPage records for the query. An empty result
	// set is valid; transport errors and non-success statuses surface as
	// ErrSourceUnavailable.
	Search(ctx context.Context, query string, perPage int) ([]ImageRecord, error)
}

// KVStore is the persistence collaborator: a flat string key-value store.
// The assignment service serializes its whole mapping under one fixed key.
type KVStore interface {
	// Read returns the stored value for key, or false if absent.
	Read(key string) (string, bool)
	// Write stores value under key, replacing any previous value.
	Write(key, value string) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
	// Close releases the underlying storage.
	Close() error
}
