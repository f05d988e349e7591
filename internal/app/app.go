// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package app

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/AccelByte/companion-screening/internal/bootstrap"
	"github.com/AccelByte/companion-screening/internal/config"
	"github.com/AccelByte/companion-screening/internal/server"
	"github.com/AccelByte/companion-screening/pkg/oracle"
	"github.com/AccelByte/companion-screening/pkg/session"
)

// App holds all application dependencies and manages the application lifecycle.
type App struct {
	cfg               *config.Config
	apiServer         *server.APIServer
	metricsServer     *server.MetricsServer
	redisClient       *redis.Client
	oracle            oracle.Oracle
	shutdownTelemetry func(context.Context) error
}

// New creates and initializes a new application instance.
//
// ============================================================
// DEVELOPER: Application initialization order
// ============================================================
// Components are initialized in dependency order:
// 1. Gemini oracle (required for classification and replies)
// 2. Redis (required for session state storage)
// 3. Screening script and stage machine
// 4. Session store
// 5. Conversation manager
// 6. Servers (API, metrics)
// 7. Telemetry (OpenTelemetry tracing, when enabled)
//
// If you add new external dependencies, initialize them
// before bootstrapping the conversation manager.
// ============================================================
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	logrus.Info("initializing application...")

	app := &App{cfg: cfg}

	// ============================================================
	// Step 1: Initialize the Gemini oracle
	// ============================================================
	if err := app.initOracle(ctx); err != nil {
		return nil, fmt.Errorf("failed to init Gemini oracle: %w", err)
	}

	// ============================================================
	// Step 2: Initialize Redis
	// ============================================================
	if err := app.initRedis(ctx); err != nil {
		return nil, fmt.Errorf("failed to init Redis: %w", err)
	}

	// ============================================================
	// Step 3: Load screening script and build the stage machine
	// ============================================================
	_, machine, err := bootstrap.InitScreening(cfg.ScriptPath, app.oracle)
	if err != nil {
		return nil, fmt.Errorf("failed to init screening: %w", err)
	}

	// ============================================================
	// Step 4: Initialize the session store
	// ============================================================
	// DEVELOPER: Add custom external service initialization here.
	// Examples:
	// - notificationService := app.initNotificationService()
	// - analyticsClient := app.initAnalyticsClient()
	//
	// Then pass these services to the bootstrap functions below.
	// ============================================================
	store := session.NewRedisStore(app.redisClient, session.RedisStoreConfig{
		TTL: time.Duration(cfg.SessionTTLHours) * time.Hour,
	})

	// ============================================================
	// Step 5: Bootstrap the conversation manager
	// ============================================================
	manager := bootstrap.InitConversation(store, app.oracle, machine)

	// ============================================================
	// Step 6: Setup servers
	// ============================================================
	app.apiServer = server.NewAPIServer(cfg.HTTPPort, manager, store)
	if err := app.apiServer.Setup(); err != nil {
		return nil, fmt.Errorf("failed to setup API server: %w", err)
	}

	app.metricsServer = server.NewMetricsServer(cfg.MetricsPort, "/metrics")
	if err := app.metricsServer.Setup(); err != nil {
		return nil, fmt.Errorf("failed to setup metrics server: %w", err)
	}

	// ============================================================
	// Step 7: Setup telemetry
	// ============================================================
	if cfg.OtelEnabled {
		shutdownTelemetry, err := server.SetupTelemetry(ctx, cfg.ServiceName, cfg.Environment, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to setup telemetry: %w", err)
		}
		app.shutdownTelemetry = shutdownTelemetry
	} else {
		logrus.Info("telemetry disabled")
	}

	logrus.Info("application initialized successfully")

	return app, nil
}

// initOracle initializes the Gemini client used for sentiment
// classification, probe assessment and companion replies.
//
// ============================================================
// DEVELOPER: Gemini configuration
// ============================================================
// The oracle is configured via environment variables:
// - GEMINI_API_KEY: API key (required)
// - GEMINI_MODEL: model name (defaults to gemini-2.0-flash)
//
// All three prompt shapes (sentiment, probe assessment, companion
// reply) go through the same client. Calls are not retried; a
// failed call falls back to Unknown or the scripted fallback
// message, so the conversation never stalls on the model.
// ============================================================
func (a *App) initOracle(ctx context.Context) error {
	gemini, err := oracle.NewGeminiOracle(ctx, oracle.GeminiOracleConfig{
		APIKey: a.cfg.GeminiAPIKey,
		Model:  a.cfg.GeminiModel,
	})
	if err != nil {
		return err
	}

	a.oracle = gemini
	return nil
}

// initRedis initializes the Redis client.
func (a *App) initRedis(ctx context.Context) error {
	client := redis.NewClient(&redis.Options{
		Addr:         a.cfg.RedisHost + ":" + a.cfg.RedisPort,
		Password:     a.cfg.RedisPassword,
		DB:           0, // use default DB
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	b := backoff.NewExponentialBackOff()
	maxRetries := backoff.WithMaxRetries(b, 5)

	err := backoff.Retry(
		func() error {
			_, err := client.Ping(ctx).Result()
			if err != nil {
				logrus.Warnf("Redis connection failed: %v, retrying...", err)
				return err
			}
			return nil
		},
		maxRetries,
	)

	if err != nil {
		return err
	}

	a.redisClient = client
	logrus.Info("Redis client initialized")
	return nil
}
