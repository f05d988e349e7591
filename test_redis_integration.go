// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

//go:build integration
// +build integration

package main

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/AccelByte/companion-screening/pkg/common"
	"github.com/AccelByte/companion-screening/pkg/risk"
	"github.com/AccelByte/companion-screening/pkg/screening"
	"github.com/AccelByte/companion-screening/pkg/sentiment"
	"github.com/AccelByte/companion-screening/pkg/session"
)

// This is a manual integration test for Redis-backed session state
// Run this with: go run test_redis_integration.go
// Requires: Redis running on localhost:6379

func main() {
	logrus.SetLevel(logrus.DebugLevel)
	logrus.Infof("Starting Redis integration test...")

	ctx := context.Background()

	client := redis.NewClient(&redis.Options{
		Addr: common.GetEnv("REDIS_HOST", "localhost") + ":" + common.GetEnv("REDIS_PORT", "6379"),
	})
	defer client.Close()

	if _, err := client.Ping(ctx).Result(); err != nil {
		logrus.Fatalf("Failed to reach Redis: %v", err)
	}

	store := session.NewRedisStore(client, session.RedisStoreConfig{TTL: 5 * time.Minute})

	// Test 1: Create a fresh session
	logrus.Infof("\n=== Test 1: Create a fresh session ===")
	state, err := store.CreateSession(ctx, time.Now())
	if err != nil {
		logrus.Fatalf("CreateSession failed: %v", err)
	}
	logrus.Infof("✓ Created session %s at stage %s", state.ID, state.Stage)

	// Test 2: Accumulate turn state and persist it
	logrus.Infof("\n=== Test 2: Update session state ===")
	state.Stage = screening.StageSocialProbe
	state.Sentiment.Record(sentiment.Positive)
	state.Sentiment.Record(sentiment.Negative)
	if err := state.Screening.RecordMemory(screening.FactorMedium); err != nil {
		logrus.Fatalf("RecordMemory failed: %v", err)
	}
	state.AppendGame(session.GameScore{Score: 80, Attempts: 12, TimeSeconds: 90, PlayedAt: time.Now()})

	if err := store.UpdateSession(ctx, state); err != nil {
		logrus.Fatalf("UpdateSession failed: %v", err)
	}
	logrus.Infof("✓ Updated session state")

	// Test 3: Round-trip the state
	logrus.Infof("\n=== Test 3: Retrieve updated state ===")
	loaded, err := store.GetSession(ctx, state.ID)
	if err != nil {
		logrus.Fatalf("GetSession failed: %v", err)
	}
	if loaded.Stage != screening.StageSocialProbe {
		logrus.Fatalf("❌ Stage mismatch: got %s, expected %s", loaded.Stage, screening.StageSocialProbe)
	}
	if loaded.Screening.Memory != screening.FactorMedium {
		logrus.Fatalf("❌ Memory factor mismatch: got %s, expected %s", loaded.Screening.Memory, screening.FactorMedium)
	}
	if len(loaded.Games) != 1 {
		logrus.Fatalf("❌ Games mismatch: got %d entries, expected 1", len(loaded.Games))
	}
	logrus.Infof("✓ Retrieved state: stage=%s memory=%s games=%d",
		loaded.Stage, loaded.Screening.Memory, len(loaded.Games))

	// Test 4: Risk aggregation over the loaded state
	logrus.Infof("\n=== Test 4: Risk aggregation ===")
	snapshot := risk.Compute(loaded.RiskInputs())
	// game 80, sentiment 1/2, screening 100-25: round(32 + 15 + 22.5) = 70
	if snapshot.Score != 70 {
		logrus.Fatalf("❌ Score mismatch: got %d, expected 70", snapshot.Score)
	}
	if snapshot.Level != risk.LevelLow {
		logrus.Fatalf("❌ Level mismatch: got %s, expected %s", snapshot.Level, risk.LevelLow)
	}
	logrus.Infof("✓ Computed risk: score=%d level=%s", snapshot.Score, snapshot.Level)

	// Test 5: Alert lifecycle including TTL expiry
	logrus.Infof("\n=== Test 5: Alert lifecycle ===")
	now := time.Now()
	if alert := risk.Observe(&loaded.Alerts, snapshot.Level, now); alert != nil {
		logrus.Fatalf("❌ Baseline observation should not alert")
	}
	alert := risk.Observe(&loaded.Alerts, risk.LevelHigh, now)
	if alert == nil {
		logrus.Fatalf("❌ Level change should raise an alert")
	}
	logrus.Infof("✓ Alert raised: %s", alert.Message)

	if pending := risk.PendingAlert(&loaded.Alerts, time.Now()); pending == nil {
		logrus.Fatalf("❌ Alert should still be pending inside its TTL")
	}
	logrus.Infof("Waiting %v for the alert to expire...", risk.AlertTTL)
	time.Sleep(risk.AlertTTL + time.Second)
	if pending := risk.PendingAlert(&loaded.Alerts, time.Now()); pending != nil {
		logrus.Fatalf("❌ Alert should have expired")
	}
	logrus.Infof("✓ Alert expired after its TTL")

	// Test 6: Clean up
	logrus.Infof("\n=== Test 6: Clean up ===")
	if err := store.DeleteSession(ctx, state.ID); err != nil {
		logrus.Fatalf("DeleteSession failed: %v", err)
	}
	if _, err := store.GetSession(ctx, state.ID); !errors.Is(err, session.ErrSessionNotFound) {
		logrus.Fatalf("❌ Deleted session should be gone, got: %v", err)
	}
	logrus.Infof("✓ Deleted session state")

	logrus.Infof("\n==================================================")
	logrus.Infof("✅ All Redis integration tests passed!")
	logrus.Infof("==================================================")
}
