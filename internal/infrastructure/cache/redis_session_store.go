package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/tindahan/backend/internal/domain/checkout"
	"github.com/tindahan/backend/internal/infrastructure/config"
)

// RedisSessionStore implements checkout.SessionStore using Redis.
// Suitable for distributed deployments where multiple instances serve
// the same storefront. Sessions are stored as JSON with the configured TTL.
type RedisSessionStore struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisSessionStore creates a new Redis-backed session store
func NewRedisSessionStore(cfg config.RedisConfig, ttl time.Duration) (*RedisSessionStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisSessionStoreWithClient(client, "", ttl), nil
}

// NewRedisSessionStoreWithClient creates a store with an existing Redis client.
// Useful for testing or when sharing a client across components.
func NewRedisSessionStoreWithClient(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisSessionStore {
	if keyPrefix == "" {
		keyPrefix = "storefront:session:"
	}
	return &RedisSessionStore{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
	}
}

func (s *RedisSessionStore) key(websiteID uuid.UUID, sessionID string) string {
	return s.keyPrefix + websiteID.String() + ":" + sessionID
}

// Get returns the stored session, or (nil, nil) if absent
func (s *RedisSessionStore) Get(ctx context.Context, websiteID uuid.UUID, sessionID string) (*checkout.Session, error) {
	data, err := s.client.GetEx(ctx, s.key(websiteID, sessionID), s.ttl).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var session checkout.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	session.EnsureCart()
	return &session, nil
}

// Save stores the session as JSON, resetting its TTL
func (s *RedisSessionStore) Save(ctx context.Context, websiteID uuid.UUID, session *checkout.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.client.Set(ctx, s.key(websiteID, session.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Delete removes the session. Deleting a missing session is not an error.
func (s *RedisSessionStore) Delete(ctx context.Context, websiteID uuid.UUID, sessionID string) error {
	if err := s.client.Del(ctx, s.key(websiteID, sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (s *RedisSessionStore) Close() error {
	return s.client.Close()
}

var _ checkout.SessionStore = (*RedisSessionStore)(nil)
