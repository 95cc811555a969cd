package storage

import (
	"context"

	"github.com/JaimeStill/printmg/internal/lifecycle"
)

// System defines the storage operations interface for small blobs.
// The session store, user preferences and sandbox uploads all persist through it.
type System interface {
	// Store saves data at the specified key. If the key already exists,
	// its contents are overwritten.
	// Returns ErrInvalidKey if the key is empty or contains path traversal.
	Store(ctx context.Context, key string, data []byte) error

	// Retrieve returns the data stored at the specified key.
	// Returns ErrNotFound if the key does not exist.
	Retrieve(ctx context.Context, key string) ([]byte, error)

	// Delete deletes the data at the specified key.
	// Returns nil if the key does not exist (idempotent).
	Delete(ctx context.Context, key string) error

	// Validate reports whether a key exists and is accessible.
	Validate(ctx context.Context, key string) (bool, error)

	// Start registers lifecycle hooks with the coordinator.
	Start(lc *lifecycle.Coordinator) error
}
