package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jonathan/cv-builder/internal/db"
	"github.com/jonathan/cv-builder/internal/server/middleware"
	"github.com/jonathan/cv-builder/internal/templates"
)

var cvValidator = validator.New()

// handleCreateCV persists a new CV for the authenticated user. The plan's
// CV quota and template entitlement are enforced here.
func (s *Server) handleCreateCV(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CVRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := cvValidator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	snap, err := s.userService.Snapshot(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if !snap.CanCreateCV {
		err := &ErrQuotaExceeded{Limit: int(snap.CVLimit)}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if err := s.checkTemplateAllowed(req.TemplateID, snap.Plan); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	input, err := cvInput(userID, req)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid CV content")
		return
	}

	cv, err := s.db.CreateCV(r.Context(), input)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.writeCV(w, http.StatusCreated, cv)
}

// handleGetCV returns one CV, owner only.
func (s *Server) handleGetCV(w http.ResponseWriter, r *http.Request) {
	_, cv, ok := s.loadOwnedCV(w, r)
	if !ok {
		return
	}
	s.writeCV(w, http.StatusOK, cv)
}

// handleUpdateCV replaces a CV's content.
func (s *Server) handleUpdateCV(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid CV ID")
		return
	}

	var req CVRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := cvValidator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	snap, err := s.userService.Snapshot(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if err := s.checkTemplateAllowed(req.TemplateID, snap.Plan); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	input, err := cvInput(userID, req)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid CV content")
		return
	}

	cv, err := s.db.UpdateCV(r.Context(), id, input)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if cv == nil {
		notFound := &ErrCVNotFound{ID: id}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	s.writeCV(w, http.StatusOK, cv)
}

// handleDeleteCV removes a CV owned by the authenticated user.
func (s *Server) handleDeleteCV(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid CV ID")
		return
	}

	if err := s.db.DeleteCV(r.Context(), id, userID); err != nil {
		notFound := &ErrCVNotFound{ID: id}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleListCVs lists the authenticated user's CVs, newest first.
func (s *Server) handleListCVs(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	cvs, err := s.db.ListCVsByUser(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	out := make([]*CVResponse, 0, len(cvs))
	for i := range cvs {
		resp, err := cvResponse(&cvs[i])
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "Failed to decode stored CV")
			return
		}
		out = append(out, resp)
	}
	s.jsonResponse(w, http.StatusOK, out)
}

// loadOwnedCV resolves the {id} path value to a CV owned by the caller,
// writing the error response itself when that fails.
func (s *Server) loadOwnedCV(w http.ResponseWriter, r *http.Request) (uuid.UUID, *db.CV, bool) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return uuid.Nil, nil, false
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid CV ID")
		return uuid.Nil, nil, false
	}

	cv, err := s.db.GetCV(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return uuid.Nil, nil, false
	}
	if cv == nil || cv.UserID != userID {
		// Hide existence of other users' CVs
		notFound := &ErrCVNotFound{ID: id}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return uuid.Nil, nil, false
	}
	return userID, cv, true
}

func (s *Server) checkTemplateAllowed(templateID, plan string) error {
	if templateID == "" {
		return nil
	}
	tmpl, err := templates.Get(templateID)
	if err != nil {
		return &ErrValidation{Field: "templateId", Message: "unknown template"}
	}
	if tmpl.IsPremium && plan == "free" {
		return &ErrPlanForbids{Feature: "premium templates"}
	}
	return nil
}

func (s *Server) writeCV(w http.ResponseWriter, status int, cv *db.CV) {
	resp, err := cvResponse(cv)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to decode stored CV")
		return
	}
	s.jsonResponse(w, status, resp)
}

func cvInput(userID uuid.UUID, req CVRequest) (db.CVInput, error) {
	content, err := json.Marshal(req.Content)
	if err != nil {
		return db.CVInput{}, err
	}
	return db.CVInput{
		UserID:      userID,
		Title:       req.Title,
		TemplateID:  req.TemplateID,
		Content:     content,
		HTMLContent: req.HTMLContent,
		IsPublic:    req.IsPublic,
	}, nil
}
