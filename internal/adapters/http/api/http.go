// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	app "github.com/umairtariqsalam/Palate/internal/app"
	"github.com/umairtariqsalam/Palate/internal/adapters/repository"
	"github.com/umairtariqsalam/Palate/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	UserReputation(ctx context.Context, userID string) (app.Reputation, error)
	EstimateCrowdDensity(ctx context.Context, restaurantID string) (model.CrowdDensityResult, error)
	SubmitCrowdFeedback(ctx context.Context, restaurantID, userID string, level model.CrowdLevel) (string, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	reputationHandler *ReputationHandler
	crowdHandler      *CrowdHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		reputationHandler: NewReputationHandler(deps),
		crowdHandler:      NewCrowdHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/reputation/", MetricsMiddleware(s.reputationHandler.HandleGetReputation, "reputation"))
	mux.HandleFunc("/crowd/", MetricsMiddleware(s.crowdHandler.HandleCrowd, "crowd"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError translates service-layer error kinds to HTTP. The
// too-soon rejection keeps its own message so clients can show it
// verbatim instead of a generic failure.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, app.ErrTooSoon):
		writeJSON(w, http.StatusTooManyRequests, errorResponse{
			Code:    "too_soon",
			Message: "You cannot resubmit within 15 minutes!",
		})
	case errors.Is(err, app.ErrInvalidLevel):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, repository.ErrFetch):
		writeError(w, http.StatusBadGateway, "fetch_failed", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
