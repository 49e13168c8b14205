package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/SalahNassar0/IT-Tickets-Analysis/internal/domain"
	"github.com/SalahNassar0/IT-Tickets-Analysis/internal/persistence"
)

const redisKeyPrefix = "dataset:"

// RedisStore keeps session datasets in Redis so replicas behind a load
// balancer can serve the same session. Entries carry the session TTL; this
// is session state offload, not cross-session persistence.
type RedisStore struct {
	client *persistence.Redis
	ttl    time.Duration
}

// NewRedisStore wraps an established Redis connection.
func NewRedisStore(client *persistence.Redis, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Put serializes the dataset and stores it with the session TTL.
func (s *RedisStore) Put(ctx context.Context, id string, dataset *domain.Dataset) error {
	payload, err := json.Marshal(dataset)
	if err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}
	return s.client.Client.Set(ctx, redisKeyPrefix+id, payload, s.ttl).Err()
}

// Get fetches and decodes the dataset for id.
func (s *RedisStore) Get(ctx context.Context, id string) (*domain.Dataset, error) {
	payload, err := s.client.Client.Get(ctx, redisKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var dataset domain.Dataset
	if err := json.Unmarshal(payload, &dataset); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	return &dataset, nil
}

// Delete removes the dataset for id.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	removed, err := s.client.Client.Del(ctx, redisKeyPrefix+id).Result()
	if err != nil {
		return err
	}
	if removed == 0 {
		return ErrNotFound
	}
	return nil
}

// Ping verifies Redis connectivity.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

// Close closes the underlying connection.
func (s *RedisStore) Close() {
	s.client.Close()
}
