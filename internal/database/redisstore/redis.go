package redisstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	databaseerrors "rocketcart/internal/database"
	"rocketcart/pkg/lib/logger/sl"

	"github.com/redis/go-redis/v9"
)

type Storage struct {
	log    *slog.Logger
	client *redis.Client
}

func New(log *slog.Logger, client *redis.Client) *Storage {
	return &Storage{
		log:    log,
		client: client,
	}
}

// Connect builds a client for addr and fails when the server does not answer PING.
func Connect(ctx context.Context, log *slog.Logger, addr, password string, db int) (*Storage, error) {
	const op = "database.redisstore.Connect"

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		log.With("op", op).Error("Redis is not reachable", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return New(log, client), nil
}

func (s *Storage) Get(ctx context.Context, key string) (string, error) {
	const op = "database.redisstore.Get"
	log := s.log.With("op", op, "key", key)

	value, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			log.Debug("Snapshot doesn't exist")
			return "", fmt.Errorf("%s: %w", op, databaseerrors.ErrNotFound)
		}

		log.Error("Error reading snapshot", sl.Err(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return value, nil
}

func (s *Storage) Set(ctx context.Context, key string, value string) error {
	const op = "database.redisstore.Set"

	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		s.log.With("op", op, "key", key).Error("Failed to write snapshot", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) Close() error {
	return s.client.Close()
}
