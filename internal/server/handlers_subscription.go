package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/cv-builder/internal/server/middleware"
)

// handleGetSubscription returns the caller's subscription snapshot. The
// wizard passes this to its constructor; entitlement checks after that are
// local.
func (s *Server) handleGetSubscription(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	snap, err := s.userService.Snapshot(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, snap)
}

// handleUpdateSubscription changes the caller's plan and returns the
// resulting snapshot. Billing happens elsewhere; this records the outcome.
func (s *Server) handleUpdateSubscription(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req UpdatePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := cvValidator.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, `plan must be "free" or "pro"`)
		return
	}

	if err := s.db.UpdateUserPlan(r.Context(), userID, req.Plan); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	snap, err := s.userService.Snapshot(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, snap)
}
