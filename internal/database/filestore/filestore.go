package filestore

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	databaseerrors "rocketcart/internal/database"
	"rocketcart/pkg/lib/logger/sl"
)

// Storage keeps one file per key under dir, the way a browser keeps local
// storage on disk. Writes go to a temporary file that is renamed over the old
// one, so a crash leaves either the previous or the new snapshot.
type Storage struct {
	log *slog.Logger
	dir string
	mu  sync.Mutex
}

func New(log *slog.Logger, dir string) (*Storage, error) {
	const op = "database.filestore.New"

	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.With("op", op).Error("Failed to create storage dir", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		log: log,
		dir: dir,
	}, nil
}

func (s *Storage) path(key string) string {
	return filepath.Join(s.dir, base64.RawURLEncoding.EncodeToString([]byte(key))+".json")
}

func (s *Storage) Get(ctx context.Context, key string) (string, error) {
	const op = "database.filestore.Get"
	log := s.log.With("op", op, "key", key)

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug("Snapshot doesn't exist")
			return "", fmt.Errorf("%s: %w", op, databaseerrors.ErrNotFound)
		}

		log.Error("Error reading snapshot", sl.Err(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return string(data), nil
}

func (s *Storage) Set(ctx context.Context, key string, value string) error {
	const op = "database.filestore.Set"
	log := s.log.With("op", op, "key", key)

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, ".snapshot-*")
	if err != nil {
		log.Error("Failed to create temp file", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		log.Error("Failed to write snapshot", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := tmp.Close(); err != nil {
		log.Error("Failed to close snapshot", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		log.Error("Failed to replace snapshot", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
