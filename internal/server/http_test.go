// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"

	"github.com/AccelByte/companion-screening/pkg/conversation"
	"github.com/AccelByte/companion-screening/pkg/oracle/mock"
	"github.com/AccelByte/companion-screening/pkg/screening"
	"github.com/AccelByte/companion-screening/pkg/session"
)

// setupTestServer builds a fully routed API server over miniredis and a
// mock oracle. The returned handler serves requests without a listener.
func setupTestServer(t *testing.T) (http.Handler, *conversation.Manager, *mock.Oracle, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	store := session.NewRedisStore(client, session.RedisStoreConfig{})
	o := mock.New()
	machine := screening.NewMachine(screening.DefaultScript(), o)
	manager := conversation.NewManager(store, o, machine, nil)

	srv := NewAPIServer(0, manager, store)
	if err := srv.Setup(); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}

	return srv.server.Handler, manager, o, mr
}

func TestAPIServer_Routing(t *testing.T) {
	h, manager, o, mr := setupTestServer(t)
	defer mr.Close()

	state, _, err := manager.StartSession(context.Background())
	if err != nil {
		t.Fatalf("StartSession() error = %v", err)
	}
	o.WithReply("Neutral")

	tests := []struct {
		name     string
		method   string
		path     string
		body     string
		expected int
	}{
		{
			name:     "create session",
			method:   http.MethodPost,
			path:     "/v1/sessions",
			expected: http.StatusCreated,
		},
		{
			name:     "create session with wrong method",
			method:   http.MethodGet,
			path:     "/v1/sessions",
			expected: http.StatusMethodNotAllowed,
		},
		{
			name:     "post message",
			method:   http.MethodPost,
			path:     "/v1/sessions/" + state.ID + "/messages",
			body:     `{"message": "hello there"}`,
			expected: http.StatusOK,
		},
		{
			name:     "post message with wrong method",
			method:   http.MethodGet,
			path:     "/v1/sessions/" + state.ID + "/messages",
			expected: http.StatusMethodNotAllowed,
		},
		{
			name:     "post game score",
			method:   http.MethodPost,
			path:     "/v1/sessions/" + state.ID + "/games",
			body:     `{"score": 80}`,
			expected: http.StatusOK,
		},
		{
			name:     "get dashboard",
			method:   http.MethodGet,
			path:     "/v1/sessions/" + state.ID + "/dashboard",
			expected: http.StatusOK,
		},
		{
			name:     "get session root with wrong method",
			method:   http.MethodGet,
			path:     "/v1/sessions/" + state.ID,
			expected: http.StatusMethodNotAllowed,
		},
		{
			name:     "unknown sub-path",
			method:   http.MethodPost,
			path:     "/v1/sessions/" + state.ID + "/reports",
			expected: http.StatusNotFound,
		},
		{
			name:     "path nested too deep",
			method:   http.MethodPost,
			path:     "/v1/sessions/" + state.ID + "/messages/extra",
			expected: http.StatusNotFound,
		},
		{
			name:     "missing session id",
			method:   http.MethodGet,
			path:     "/v1/sessions/",
			expected: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body *strings.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			} else {
				body = strings.NewReader("")
			}

			req := httptest.NewRequest(tt.method, tt.path, body)
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			if rec.Code != tt.expected {
				t.Errorf("%s %s = %d, expected %d, body: %s",
					tt.method, tt.path, rec.Code, tt.expected, rec.Body.String())
			}
		})
	}
}

func TestAPIServer_DeleteSession(t *testing.T) {
	h, manager, _, mr := setupTestServer(t)
	defer mr.Close()

	state, _, err := manager.StartSession(context.Background())
	if err != nil {
		t.Fatalf("StartSession() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/v1/sessions/"+state.ID, nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("DELETE session = %d, expected %d", rec.Code, http.StatusNoContent)
	}

	// A second delete reports the session gone
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/v1/sessions/"+state.ID, nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("second DELETE = %d, expected %d", rec.Code, http.StatusNotFound)
	}
}

func TestAPIServer_Health(t *testing.T) {
	h, _, _, mr := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("healthz = %d, expected %d", rec.Code, http.StatusOK)
	}

	// With Redis gone the health probe reports the dependency down.
	mr.Close()

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("healthz with Redis down = %d, expected %d", rec.Code, http.StatusServiceUnavailable)
	}
}
