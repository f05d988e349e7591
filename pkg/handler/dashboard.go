package handler

import (
	"net/http"

	"github.com/AccelByte/companion-screening/pkg/common"
	"github.com/AccelByte/companion-screening/pkg/conversation"
)

// Dashboard serves the caregiver dashboard projection
type Dashboard struct {
	manager *conversation.Manager
}

// NewDashboard creates a new dashboard handler
func NewDashboard(manager *conversation.Manager) *Dashboard {
	return &Dashboard{manager: manager}
}

// Get handles GET /v1/sessions/{id}/dashboard
// Returns the read-only risk projection for a session. The snapshot is
// recomputed from current state on every read.
func (h *Dashboard) Get(w http.ResponseWriter, r *http.Request, sessionID string) {
	scope := common.GetScopeFromContext(r.Context(), "Dashboard.Get")
	defer scope.Finish()
	scope.AddBaggage("session_id", sessionID)

	view, err := h.manager.Dashboard(scope.Ctx, sessionID)
	if err != nil {
		scope.TraceError(err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}
