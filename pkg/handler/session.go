package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/AccelByte/companion-screening/pkg/common"
	"github.com/AccelByte/companion-screening/pkg/conversation"
	"github.com/AccelByte/companion-screening/pkg/screening"
)

// Session handles session lifecycle requests
type Session struct {
	manager *conversation.Manager
}

// NewSession creates a new session lifecycle handler
func NewSession(manager *conversation.Manager) *Session {
	return &Session{manager: manager}
}

type createSessionResponse struct {
	SessionID string          `json:"sessionId"`
	Stage     screening.Stage `json:"stage"`
	Greeting  string          `json:"greeting"`
}

// Create handles POST /v1/sessions
// Opens a new screening session and returns the scripted greeting.
func (h *Session) Create(w http.ResponseWriter, r *http.Request) {
	scope := common.GetScopeFromContext(r.Context(), "Session.Create")
	defer scope.Finish()

	state, greeting, err := h.manager.StartSession(scope.Ctx)
	if err != nil {
		scope.TraceError(err)
		logrus.Errorf("failed to start session: %v", err)
		writeError(w, err)
		return
	}

	scope.AddBaggage("session_id", state.ID)
	logrus.Infof("started session %s", state.ID)

	writeJSON(w, http.StatusCreated, createSessionResponse{
		SessionID: state.ID,
		Stage:     state.Stage,
		Greeting:  greeting,
	})
}

// Delete handles DELETE /v1/sessions/{id}
func (h *Session) Delete(w http.ResponseWriter, r *http.Request, sessionID string) {
	scope := common.GetScopeFromContext(r.Context(), "Session.Delete")
	defer scope.Finish()
	scope.AddBaggage("session_id", sessionID)

	if err := h.manager.EndSession(scope.Ctx, sessionID); err != nil {
		scope.TraceError(err)
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
