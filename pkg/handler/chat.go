package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/AccelByte/companion-screening/pkg/common"
	"github.com/AccelByte/companion-screening/pkg/conversation"
)

// Chat handles conversation turn requests
type Chat struct {
	manager *conversation.Manager
}

// NewChat creates a new conversation turn handler
func NewChat(manager *conversation.Manager) *Chat {
	return &Chat{manager: manager}
}

type postMessageRequest struct {
	Message string `json:"message"`
}

// PostMessage handles POST /v1/sessions/{id}/messages
// Runs one user message through the screening turn pipeline and returns
// the assistant reply with the refreshed risk snapshot.
func (h *Chat) PostMessage(w http.ResponseWriter, r *http.Request, sessionID string) {
	scope := common.GetScopeFromContext(r.Context(), "Chat.PostMessage")
	defer scope.Finish()
	scope.AddBaggage("session_id", sessionID)

	var req postMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json body"})
		return
	}

	logrus.Infof("received message for session %s", sessionID)

	result, err := h.manager.ProcessTurn(scope.Ctx, sessionID, req.Message)
	if err != nil {
		scope.TraceError(err)
		logrus.Errorf("failed to process turn for session %s: %v", sessionID, err)
		writeError(w, err)
		return
	}

	scope.SetAttributes("stage", string(result.Stage))
	writeJSON(w, http.StatusOK, result)
}
