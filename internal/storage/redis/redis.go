// Package redis stores entries as plain Redis string values.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"cuentamia/internal/log"
	"cuentamia/internal/storage"
)

type Store struct {
	client *redis.Client
	logger *log.Logger
}

// New connects to the Redis server at url (redis:// or rediss://) and
// verifies the connection.
func New(ctx context.Context, url string, logger *log.Logger) (*Store, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return NewWithClient(ctx, redis.NewClient(opt), logger)
}

// NewWithClient wraps an existing client.
func NewWithClient(ctx context.Context, client *redis.Client, logger *log.Logger) (*Store, error) {
	if logger == nil {
		logger = log.Discard()
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Store{
		client: client,
		logger: logger.WithComponent(log.ComponentStorage),
	}, nil
}

// Get implements storage.Store
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, nil
}

// Put implements storage.Store
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}

	s.logger.DebugContext(ctx, "Entry saved to Redis",
		log.FieldKey, key,
		log.FieldBytes, len(value))

	return nil
}

// Delete implements storage.Store
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}
