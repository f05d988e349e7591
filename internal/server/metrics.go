// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/AccelByte/companion-screening/pkg/metrics"
)

// MetricsServer manages the Prometheus metrics HTTP server.
type MetricsServer struct {
	server   *http.Server
	port     int
	endpoint string
}

// NewMetricsServer creates a new metrics server instance.
func NewMetricsServer(port int, endpoint string) *MetricsServer {
	return &MetricsServer{
		port:     port,
		endpoint: endpoint,
	}
}

// Setup configures the metrics server and registers collectors.
//
// ============================================================
// DEVELOPER: Register custom Prometheus metrics here
// ============================================================
// By default, we expose Go runtime and process metrics plus the
// application metrics defined in pkg/metrics/.
// To add a custom application metric:
//
// 1. Define it in pkg/metrics/metrics.go
//    Example:
//    var ProbeRepliesTotal = prometheus.NewCounterVec(
//        prometheus.CounterOpts{
//            Name: "companion_screening_probe_replies_total",
//            Help: "Total number of interpreted probe replies",
//        },
//        []string{"stage", "factor"},
//    )
//
// 2. Register it below:
//    registry.MustRegister(metrics.ProbeRepliesTotal)
//
// 3. Increment it in your code:
//    metrics.ProbeRepliesTotal.WithLabelValues(stage, factor).Inc()
//
// See: https://prometheus.io/docs/guides/go-application/
// ============================================================
func (m *MetricsServer) Setup() error {
	registry := prometheus.NewRegistry()

	// Register default collectors
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// ============================================================
	// DEVELOPER: Register custom metrics below
	// ============================================================
	registry.MustRegister(
		metrics.TurnsProcessedTotal,
		metrics.OracleFailuresTotal,
		metrics.RiskAlertsTotal,
		metrics.GamesRecordedTotal,
	)

	mux := http.NewServeMux()
	mux.Handle(m.endpoint, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	m.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", m.port),
		Handler: mux,
	}

	return nil
}

// Start begins serving metrics on the configured port.
func (m *MetricsServer) Start(ctx context.Context) error {
	go func() {
		logrus.Infof("metrics server listening on port %d%s", m.port, m.endpoint)
		if err := m.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("metrics server failed: %v", err)
		}
	}()
	return nil
}

// Shutdown gracefully stops the metrics server.
func (m *MetricsServer) Shutdown(ctx context.Context) error {
	logrus.Info("shutting down metrics server...")
	if err := m.server.Shutdown(ctx); err != nil {
		return err
	}
	logrus.Info("metrics server stopped")
	return nil
}
