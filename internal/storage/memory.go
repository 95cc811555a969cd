package storage

import (
	"context"
	"sync"

	"github.com/JaimeStill/printmg/internal/lifecycle"
)

type memory struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemory creates a storage system whose contents live only as long as the process.
func NewMemory() System {
	return &memory{blobs: make(map[string][]byte)}
}

func (m *memory) Start(lc *lifecycle.Coordinator) error {
	return nil
}

func (m *memory) Store(ctx context.Context, key string, data []byte) error {
	k, err := cleanKey(key)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[k] = append([]byte(nil), data...)
	return nil
}

func (m *memory) Retrieve(ctx context.Context, key string) ([]byte, error) {
	k, err := cleanKey(key)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.blobs[k]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

func (m *memory) Delete(ctx context.Context, key string) error {
	k, err := cleanKey(key)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, k)
	return nil
}

func (m *memory) Validate(ctx context.Context, key string) (bool, error) {
	k, err := cleanKey(key)
	if err != nil {
		return false, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.blobs[k]
	return ok, nil
}
