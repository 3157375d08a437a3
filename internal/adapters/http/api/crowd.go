// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/umairtariqsalam/Palate/internal/domain/model"
)

// CrowdHandler handles crowd density requests.
type CrowdHandler struct {
	deps Dependencies
}

// NewCrowdHandler creates a new crowd handler.
func NewCrowdHandler(deps Dependencies) *CrowdHandler {
	return &CrowdHandler{deps: deps}
}

// feedbackRequest mirrors the POST body for crowd feedback.
type feedbackRequest struct {
	UserID string `json:"user_id"`
	Level  int    `json:"level"`
}

func (f feedbackRequest) validate() error {
	if strings.TrimSpace(f.UserID) == "" {
		return NewKind("api.post_feedback", ErrBadRequest)
	}
	return nil
}

type feedbackResponse struct {
	Status     string `json:"status"`
	FeedbackID string `json:"feedback_id"`
}

// HandleCrowd dispatches /crowd/{restaurant_id} and
// /crowd/{restaurant_id}/feedback.
func (h *CrowdHandler) HandleCrowd(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/crowd/")
	if rest, ok := strings.CutSuffix(path, "/feedback"); ok {
		h.handlePostFeedback(w, r, rest)
		return
	}
	h.handleGetDensity(w, r, path)
}

// handleGetDensity handles GET /crowd/{restaurant_id} requests.
func (h *CrowdHandler) handleGetDensity(w http.ResponseWriter, r *http.Request, restaurantID string) {
	const op = "api.get_crowd_density"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	if restaurantID == "" || strings.Contains(restaurantID, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	result, err := h.deps.EstimateCrowdDensity(r.Context(), restaurantID)
	if err != nil {
		writeServiceError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handlePostFeedback handles POST /crowd/{restaurant_id}/feedback requests.
func (h *CrowdHandler) handlePostFeedback(w http.ResponseWriter, r *http.Request, restaurantID string) {
	const op = "api.post_feedback"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	if restaurantID == "" || strings.Contains(restaurantID, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	id, err := h.deps.SubmitCrowdFeedback(r.Context(), restaurantID, req.UserID, model.CrowdLevel(req.Level))
	if err != nil {
		writeServiceError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusAccepted, feedbackResponse{Status: "accepted", FeedbackID: id})
}
