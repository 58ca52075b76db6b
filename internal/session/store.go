// Package session persists in-progress invoice documents in Redis, keyed by
// an opaque session id with a sliding expiry.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when a session id has no stored document, either
// because it never existed or because its TTL elapsed.
var ErrNotFound = errors.New("session: not found")

const keyPrefix = "invoice:session:"

// Store wraps Redis helpers for JSON session state.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore constructs a session store. TTL must be positive.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

func key(id string) string {
	return keyPrefix + id
}

// Get unmarshals the stored session payload into dst and refreshes the
// session's expiry.
func (s *Store) Get(ctx context.Context, id string, dst any) error {
	data, err := s.client.Get(ctx, key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		return err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return err
	}
	_ = s.client.Expire(ctx, key(id), s.ttl).Err()
	return nil
}

// Put serialises v as JSON and stores it with the configured TTL.
func (s *Store) Put(ctx context.Context, id string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key(id), data, s.ttl).Err()
}

// Delete removes the session. Deleting an absent session is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, key(id)).Err()
}
