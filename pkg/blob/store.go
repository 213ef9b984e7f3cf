// Package blob is a thin JSON blob store keyed by string. It is the only
// shared state in the system; the booking service treats it as an external
// collaborator with a get/list/delete contract plus a conditional write used
// to close the read-modify-write race on concurrent bookings.
package blob

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by Get when no value exists for the key.
	ErrNotFound = errors.New("blob: key not found")

	// ErrVersionConflict is returned by CompareAndSet when the stored
	// version no longer matches the expected one, meaning another writer
	// got there first.
	ErrVersionConflict = errors.New("blob: version conflict")
)

// Store persists JSON-serializable values under string keys. Every value
// carries a monotonically increasing version, starting at 1 on first write.
type Store interface {
	// Get unmarshals the value for key into out and returns its version.
	// Returns ErrNotFound (and version 0) when the key is absent.
	Get(ctx context.Context, key string, out any) (int64, error)

	// CompareAndSet writes value under key only if the stored version
	// still equals expectedVersion. An expectedVersion of 0 means the key
	// must not exist yet. Returns ErrVersionConflict otherwise.
	CompareAndSet(ctx context.Context, key string, value any, expectedVersion int64) error

	// List returns every key in the store.
	List(ctx context.Context) ([]string, error)

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}
