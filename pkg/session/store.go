package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	// sessionStoreDefaultTTL is the default TTL for session state in Redis (24 hours)
	sessionStoreDefaultTTL = 24 * time.Hour
	// sessionStoreKeyPrefix is the prefix for all session state keys
	sessionStoreKeyPrefix = "companion_screening:session:"
)

// ErrSessionNotFound is returned when a session ID has no stored state.
var ErrSessionNotFound = errors.New("session not found")

// Store persists session state between turns.
type Store interface {
	CreateSession(ctx context.Context, now time.Time) (*State, error)
	GetSession(ctx context.Context, sessionID string) (*State, error)
	UpdateSession(ctx context.Context, state *State) error
	DeleteSession(ctx context.Context, sessionID string) error
}

// RedisStore implements Store using Redis.
type RedisStore struct {
	client *redis.Client
	cfg    RedisStoreConfig
}

type RedisStoreConfig struct {
	// TTL overrides the default session expiry when positive.
	TTL time.Duration
}

// NewRedisStore creates a new Redis-backed session store.
func NewRedisStore(
	client *redis.Client,
	cfg RedisStoreConfig,
) *RedisStore {
	if cfg.TTL <= 0 {
		cfg.TTL = sessionStoreDefaultTTL
	}
	return &RedisStore{
		client: client,
		cfg:    cfg,
	}
}

// makeSessionKey creates a Redis key for a session
func makeSessionKey(sessionID string) string {
	return fmt.Sprintf("%s%s", sessionStoreKeyPrefix, sessionID)
}

// CreateSession allocates a new session ID and persists its fresh state
func (r *RedisStore) CreateSession(ctx context.Context, now time.Time) (*State, error) {
	state := NewState(uuid.NewString(), now)

	if err := r.UpdateSession(ctx, state); err != nil {
		return nil, err
	}

	logrus.Infof("created session %s", state.ID)
	return state, nil
}

// GetSession retrieves the state for a session from Redis
func (r *RedisStore) GetSession(ctx context.Context, sessionID string) (*State, error) {
	key := makeSessionKey(sessionID)

	data, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		logrus.Infof("no state for session %s", sessionID)
		return nil, ErrSessionNotFound
	}
	if err != nil {
		logrus.Errorf("failed to get state for session %s: %v", sessionID, err)
		return nil, fmt.Errorf("failed to get state: %w", err)
	}

	var state State
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		logrus.Errorf("failed to unmarshal state for session %s: %v", sessionID, err)
		return nil, fmt.Errorf("failed to unmarshal state: %w", err)
	}

	return &state, nil
}

// UpdateSession writes the state for a session to Redis
func (r *RedisStore) UpdateSession(ctx context.Context, state *State) error {
	key := makeSessionKey(state.ID)

	data, err := json.Marshal(state)
	if err != nil {
		logrus.Errorf("failed to marshal state for session %s: %v", state.ID, err)
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := r.client.Set(ctx, key, data, r.cfg.TTL).Err(); err != nil {
		logrus.Errorf("failed to set state for session %s: %v", state.ID, err)
		return fmt.Errorf("failed to set state: %w", err)
	}

	logrus.Debugf("updated state for session %s with TTL %v", state.ID, r.cfg.TTL)
	return nil
}

// DeleteSession removes the state for a session from Redis
func (r *RedisStore) DeleteSession(ctx context.Context, sessionID string) error {
	key := makeSessionKey(sessionID)

	deleted, err := r.client.Del(ctx, key).Result()
	if err != nil {
		logrus.Errorf("failed to delete state for session %s: %v", sessionID, err)
		return fmt.Errorf("failed to delete state: %w", err)
	}
	if deleted == 0 {
		return ErrSessionNotFound
	}

	logrus.Infof("deleted session %s", sessionID)
	return nil
}

// Check verifies the Redis connection backing the store is alive. Used
// by the health endpoint.
func (r *RedisStore) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if _, err := r.client.Ping(ctx).Result(); err != nil {
		logrus.Errorf("Redis health check failed: %v", err)
		return err
	}

	logrus.Debugf("Redis health check passed")
	return nil
}
