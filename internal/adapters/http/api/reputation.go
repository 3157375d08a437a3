// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strings"
)

// ReputationHandler handles reputation requests.
type ReputationHandler struct {
	deps Dependencies
}

// NewReputationHandler creates a new reputation handler.
func NewReputationHandler(deps Dependencies) *ReputationHandler {
	return &ReputationHandler{deps: deps}
}

// HandleGetReputation handles GET /reputation/{user_id} requests.
func (h *ReputationHandler) HandleGetReputation(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_reputation"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	userID := strings.TrimPrefix(r.URL.Path, "/reputation/")
	if userID == "" || strings.Contains(userID, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	rep, err := h.deps.UserReputation(r.Context(), userID)
	if err != nil {
		writeServiceError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, rep)
}
