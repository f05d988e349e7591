package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/AccelByte/companion-screening/pkg/conversation"
)

func TestGame_PostScore(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	defer mr.Close()

	manager, _ := setupTestManager(mr)
	h := NewGame(manager)

	state, _, err := manager.StartSession(context.Background())
	if err != nil {
		t.Fatalf("StartSession() error = %v", err)
	}

	body := strings.NewReader(`{"score": 85, "attempts": 12, "timeSeconds": 95}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/sessions/"+state.ID+"/games", body)
	rec := httptest.NewRecorder()

	h.PostScore(rec, req, state.ID)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected %d, body: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var outcome conversation.GameOutcome
	if err := json.Unmarshal(rec.Body.Bytes(), &outcome); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if outcome.GamesPlayed != 1 {
		t.Errorf("gamesPlayed = %d, expected 1", outcome.GamesPlayed)
	}
	// game 85, defaults elsewhere: round(0.4*85 + 0.3*70 + 0.3*100) = 85
	if outcome.Risk.Score != 85 {
		t.Errorf("risk score = %d, expected 85", outcome.Risk.Score)
	}
}

func TestGame_PostScore_OutOfRange(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	defer mr.Close()

	manager, _ := setupTestManager(mr)
	h := NewGame(manager)

	body := strings.NewReader(`{"score": 130}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/sessions/some-session/games", body)
	rec := httptest.NewRecorder()

	h.PostScore(rec, req, "some-session")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, expected %d", rec.Code, http.StatusBadRequest)
	}
}

func TestGame_PostScore_InvalidBody(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	defer mr.Close()

	manager, _ := setupTestManager(mr)
	h := NewGame(manager)

	req := httptest.NewRequest(http.MethodPost, "/v1/sessions/some-session/games", strings.NewReader("score=85"))
	rec := httptest.NewRecorder()

	h.PostScore(rec, req, "some-session")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, expected %d", rec.Code, http.StatusBadRequest)
	}
}
