package memstore

import (
	"context"
	"fmt"
	"sync"

	databaseerrors "rocketcart/internal/database"
)

// Storage keeps snapshots in process memory; nothing survives a restart.
type Storage struct {
	mu     sync.RWMutex
	values map[string]string
}

func New() *Storage {
	return &Storage{
		values: make(map[string]string),
	}
}

func (s *Storage) Get(ctx context.Context, key string) (string, error) {
	const op = "database.memstore.Get"

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	if !ok {
		return "", fmt.Errorf("%s: %w", op, databaseerrors.ErrNotFound)
	}
	return value, nil
}

func (s *Storage) Set(ctx context.Context, key string, value string) error {
	const op = "database.memstore.Set"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return nil
}
