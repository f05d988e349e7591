package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/AccelByte/companion-screening/pkg/common"
	"github.com/AccelByte/companion-screening/pkg/conversation"
	"github.com/AccelByte/companion-screening/pkg/session"
)

// Game handles game score submissions
type Game struct {
	manager *conversation.Manager
}

// NewGame creates a new game score handler
func NewGame(manager *conversation.Manager) *Game {
	return &Game{manager: manager}
}

type postScoreRequest struct {
	Score       int        `json:"score"`
	Attempts    int        `json:"attempts"`
	TimeSeconds int        `json:"timeSeconds"`
	PlayedAt    *time.Time `json:"playedAt,omitempty"`
}

// PostScore handles POST /v1/sessions/{id}/games
// Records one completed memory game and returns the refreshed risk
// snapshot.
func (h *Game) PostScore(w http.ResponseWriter, r *http.Request, sessionID string) {
	scope := common.GetScopeFromContext(r.Context(), "Game.PostScore")
	defer scope.Finish()
	scope.AddBaggage("session_id", sessionID)

	var req postScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json body"})
		return
	}

	game := session.GameScore{
		Score:       req.Score,
		Attempts:    req.Attempts,
		TimeSeconds: req.TimeSeconds,
	}
	if req.PlayedAt != nil {
		game.PlayedAt = *req.PlayedAt
	}

	logrus.Infof("received game score for session %s: score=%d attempts=%d",
		sessionID, req.Score, req.Attempts)

	outcome, err := h.manager.RecordGameScore(scope.Ctx, sessionID, game)
	if err != nil {
		scope.TraceError(err)
		logrus.Errorf("failed to record game score for session %s: %v", sessionID, err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, outcome)
}
