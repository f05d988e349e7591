// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package metrics defines the application's custom Prometheus metrics.
// All collectors here are registered by the metrics server during Setup.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// TurnsProcessedTotal counts completed conversation turns by the
	// stage the session was in when the turn arrived.
	TurnsProcessedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "companion_screening_turns_processed_total",
			Help: "Total number of conversation turns processed",
		},
		[]string{"stage"},
	)

	// OracleFailuresTotal counts language model calls that returned an
	// error, by the kind of prompt that failed.
	OracleFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "companion_screening_oracle_failures_total",
			Help: "Total number of failed language model calls",
		},
		[]string{"prompt"},
	)

	// RiskAlertsTotal counts raised risk alerts by the new level.
	RiskAlertsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "companion_screening_risk_alerts_total",
			Help: "Total number of risk level change alerts raised",
		},
		[]string{"level"},
	)

	// GamesRecordedTotal counts accepted game score submissions.
	GamesRecordedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "companion_screening_games_recorded_total",
			Help: "Total number of game scores recorded",
		},
	)
)
