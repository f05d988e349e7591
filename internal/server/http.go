// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/AccelByte/companion-screening/pkg/conversation"
	"github.com/AccelByte/companion-screening/pkg/handler"
)

// HealthCheck reports whether the server's dependencies are reachable.
type HealthCheck interface {
	Check(ctx context.Context) error
}

// APIServer manages the HTTP API server lifecycle.
type APIServer struct {
	server  *http.Server
	port    int
	manager *conversation.Manager
	health  HealthCheck
}

// NewAPIServer creates a new API server instance.
func NewAPIServer(port int, manager *conversation.Manager, health HealthCheck) *APIServer {
	return &APIServer{
		port:    port,
		manager: manager,
		health:  health,
	}
}

// Setup configures the HTTP routes and middleware.
//
// ============================================================
// DEVELOPER: HTTP server configuration
// ============================================================
// This method sets up:
// 1. Middleware (request logging)
// 2. Session API routes (create, message, game, dashboard, delete)
// 3. Health check endpoint for liveness/readiness probes
// ============================================================
func (s *APIServer) Setup() error {
	sessionHandler := handler.NewSession(s.manager)
	chatHandler := handler.NewChat(s.manager)
	gameHandler := handler.NewGame(s.manager)
	dashboardHandler := handler.NewDashboard(s.manager)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/v1/sessions", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		sessionHandler.Create(w, r)
	})

	// ============================================================
	// DEVELOPER: Add new session-scoped routes here
	// ============================================================
	// Routes under /v1/sessions/{id}/... are dispatched below by
	// trailing path segment. To add an endpoint:
	// 1. Create a handler in pkg/handler/ (see chat.go, game.go)
	// 2. Add its segment to the dispatch switch
	// ============================================================
	mux.HandleFunc("/v1/sessions/", func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/sessions/"), "/"), "/")
		if len(parts) == 0 || parts[0] == "" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		sessionID := parts[0]

		switch {
		case len(parts) == 1 && r.Method == http.MethodDelete:
			sessionHandler.Delete(w, r, sessionID)
		case len(parts) == 2 && parts[1] == "messages" && r.Method == http.MethodPost:
			chatHandler.PostMessage(w, r, sessionID)
		case len(parts) == 2 && parts[1] == "games" && r.Method == http.MethodPost:
			gameHandler.PostScore(w, r, sessionID)
		case len(parts) == 2 && parts[1] == "dashboard" && r.Method == http.MethodGet:
			dashboardHandler.Get(w, r, sessionID)
		case len(parts) == 1 || (len(parts) == 2 && knownSegment(parts[1])):
			w.WriteHeader(http.StatusMethodNotAllowed)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: requestLogger(mux),
	}

	logrus.Infof("registered session API routes")
	return nil
}

// Start begins listening and serving HTTP requests.
func (s *APIServer) Start(ctx context.Context) error {
	go func() {
		logrus.Infof("API server listening on port %d", s.port)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("API server failed: %v", err)
		}
	}()

	return nil
}

// Shutdown gracefully stops the API server.
func (s *APIServer) Shutdown(ctx context.Context) error {
	logrus.Info("shutting down API server...")
	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}
	logrus.Info("API server stopped")
	return nil
}

// handleHealth reports service health for liveness/readiness probes.
func (s *APIServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		if err := s.health.Check(r.Context()); err != nil {
			http.Error(w, "dependency unavailable", http.StatusServiceUnavailable)
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// knownSegment reports whether a session sub-path exists at all, so a
// wrong method gets 405 instead of 404.
func knownSegment(segment string) bool {
	switch segment {
	case "messages", "games", "dashboard":
		return true
	}
	return false
}

// requestLogger logs every request with its status and duration.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		logrus.Infof("%s %s %d %v", r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
