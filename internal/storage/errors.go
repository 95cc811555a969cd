// Package storage provides blob storage abstractions with a filesystem
// implementation for durable data and an in-memory one for process-scoped data.
package storage

import "errors"

// Storage errors returned by System implementations.
var (
	// ErrNotFound indicates the requested key does not exist in storage.
	ErrNotFound = errors.New("storage: key not found")

	// ErrPermissionDenied indicates insufficient permissions to access the key.
	ErrPermissionDenied = errors.New("storage: permission denied")

	// ErrInvalidKey indicates the key is empty or attempts path traversal.
	ErrInvalidKey = errors.New("storage: invalid key")
)
