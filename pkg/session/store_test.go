package session

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"

	"github.com/AccelByte/companion-screening/pkg/screening"
)

// setupTestRedis creates a miniredis instance for testing
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	return client, mr
}

func TestCreateSession(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()

	ctx := context.Background()
	store := NewRedisStore(client, RedisStoreConfig{})
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	state, err := store.CreateSession(ctx, now)
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}

	if state.ID == "" {
		t.Fatal("CreateSession() returned a state without an ID")
	}
	if state.Stage != screening.StageGreeting {
		t.Errorf("Stage = %q, expected %q", state.Stage, screening.StageGreeting)
	}

	// The fresh state must already be persisted
	exists, _ := client.Exists(ctx, makeSessionKey(state.ID)).Result()
	if exists != 1 {
		t.Error("created session was not persisted")
	}
}

func TestGetSession_Missing(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()

	store := NewRedisStore(client, RedisStoreConfig{})

	_, err := store.GetSession(context.Background(), "no-such-session")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("GetSession() error = %v, expected %v", err, ErrSessionNotFound)
	}
}

func TestGetSession_Existing(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()

	ctx := context.Background()
	store := NewRedisStore(client, RedisStoreConfig{})

	// Manually insert a state into Redis
	expected := NewState("session-get", time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	expected.Stage = screening.StageSocialProbe
	expected.Sentiment.Record("Negative")
	expected.AppendGame(GameScore{Score: 70, Attempts: 10, TimeSeconds: 60})

	data, _ := json.Marshal(expected)
	client.Set(ctx, makeSessionKey(expected.ID), data, sessionStoreDefaultTTL)

	state, err := store.GetSession(ctx, "session-get")
	if err != nil {
		t.Fatalf("GetSession() error = %v", err)
	}

	if state.Stage != screening.StageSocialProbe {
		t.Errorf("Stage = %q, expected %q", state.Stage, screening.StageSocialProbe)
	}
	if state.Sentiment.Negative != 1 {
		t.Errorf("Sentiment.Negative = %d, expected 1", state.Sentiment.Negative)
	}
	if len(state.Games) != 1 || state.Games[0].Score != 70 {
		t.Errorf("Games = %+v, expected one game with score 70", state.Games)
	}
}

func TestUpdateSession(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()

	ctx := context.Background()
	store := NewRedisStore(client, RedisStoreConfig{})

	state := NewState("session-update", time.Now())
	state.Stage = screening.StageFreeChat
	if err := state.Screening.RecordMemory(screening.FactorHigh); err != nil {
		t.Fatalf("RecordMemory() error = %v", err)
	}

	if err := store.UpdateSession(ctx, state); err != nil {
		t.Fatalf("UpdateSession() error = %v", err)
	}

	// Verify it was saved
	data, err := client.Get(ctx, makeSessionKey("session-update")).Result()
	if err != nil {
		t.Fatalf("failed to get key from Redis: %v", err)
	}

	var retrieved State
	if err := json.Unmarshal([]byte(data), &retrieved); err != nil {
		t.Fatalf("failed to unmarshal state: %v", err)
	}

	if retrieved.Stage != screening.StageFreeChat {
		t.Errorf("Stage = %q, expected %q", retrieved.Stage, screening.StageFreeChat)
	}
	if retrieved.Screening.Memory != screening.FactorHigh {
		t.Errorf("Screening.Memory = %q, expected %q", retrieved.Screening.Memory, screening.FactorHigh)
	}
}

func TestUpdateSession_TTL(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()

	ctx := context.Background()
	customTTL := 2 * time.Hour
	store := NewRedisStore(client, RedisStoreConfig{TTL: customTTL})

	state := NewState("session-ttl", time.Now())
	if err := store.UpdateSession(ctx, state); err != nil {
		t.Fatalf("UpdateSession() error = %v", err)
	}

	ttl, err := client.TTL(ctx, makeSessionKey("session-ttl")).Result()
	if err != nil {
		t.Fatalf("failed to get TTL: %v", err)
	}

	// Allow 1 second tolerance for test execution time
	if ttl < customTTL-time.Second || ttl > customTTL {
		t.Errorf("TTL = %v, expected approximately %v", ttl, customTTL)
	}
}

func TestDeleteSession(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()

	ctx := context.Background()
	store := NewRedisStore(client, RedisStoreConfig{})

	state := NewState("session-delete", time.Now())
	if err := store.UpdateSession(ctx, state); err != nil {
		t.Fatalf("UpdateSession() error = %v", err)
	}

	if err := store.DeleteSession(ctx, "session-delete"); err != nil {
		t.Fatalf("DeleteSession() error = %v", err)
	}

	exists, _ := client.Exists(ctx, makeSessionKey("session-delete")).Result()
	if exists != 0 {
		t.Error("state should not exist after deletion")
	}

	// Deleting again reports the missing session
	err := store.DeleteSession(ctx, "session-delete")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("DeleteSession() on missing session error = %v, expected %v", err, ErrSessionNotFound)
	}
}

func TestMakeSessionKey(t *testing.T) {
	expected := sessionStoreKeyPrefix + "abc-123"

	result := makeSessionKey("abc-123")
	if result != expected {
		t.Errorf("makeSessionKey() = %s, expected %s", result, expected)
	}
}

func TestRedisStoreCheck(t *testing.T) {
	client, mr := setupTestRedis(t)
	store := NewRedisStore(client, RedisStoreConfig{})

	if err := store.Check(context.Background()); err != nil {
		t.Errorf("Check() error = %v, expected nil", err)
	}

	mr.Close()

	if err := store.Check(context.Background()); err == nil {
		t.Error("Check() after Redis went away = nil, expected an error")
	}
}
