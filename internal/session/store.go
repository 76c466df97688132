package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Store keeps signed-in sessions in redis: one key per token mapping to the
// username, expiring after the configured TTL.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

func buildKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}

// Create issues a fresh token for the username.
func (s *Store) Create(ctx context.Context, username string) (string, error) {
	token := uuid.NewString()
	if err := s.client.Set(ctx, buildKey(token), username, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store session for %s: %w", username, err)
	}
	return token, nil
}

// Get resolves a token to its username. An expired or unknown token is not an
// error, just a miss.
func (s *Store) Get(ctx context.Context, token string) (string, bool, error) {
	username, err := s.client.Get(ctx, buildKey(token)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get session: %w", err)
	}
	return username, true, nil
}

// Delete drops a session token; used on sign-out.
func (s *Store) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, buildKey(token)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Ping connectivity
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
