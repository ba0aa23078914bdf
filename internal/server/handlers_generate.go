package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/jonathan/cv-builder/internal/generate"
	"github.com/jonathan/cv-builder/internal/server/middleware"
)

// handleGenerateField produces AI-suggested content for one field.
// Deny-listed fields are rejected before any model call.
func (s *Server) handleGenerateField(w http.ResponseWriter, r *http.Request) {
	if s.fields == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "AI generation is not configured")
		return
	}

	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req GenerateFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := cvValidator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	if err := s.checkGenerationAllowed(r, userID); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	content, err := s.fields.GenerateField(r.Context(), req.FieldID, req.FieldLabel, req.Context)
	if err != nil {
		var denied *generate.ErrFieldNotGeneratable
		switch {
		case errors.As(err, &denied):
			s.errorResponse(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, generate.ErrGenerationInFlight):
			s.errorResponse(w, http.StatusConflict, err.Error())
		default:
			s.errorResponse(w, http.StatusBadGateway, err.Error())
		}
		return
	}

	s.jsonResponse(w, http.StatusOK, GenerateFieldResponse{Content: content})
}

// handleGenerateCV produces a whole-document draft from either structured
// data or a free-text prompt. The result is schema-validated before it is
// returned; it is never persisted here.
func (s *Server) handleGenerateCV(w http.ResponseWriter, r *http.Request) {
	if s.cvs == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "AI generation is not configured")
		return
	}

	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req GenerateCVRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := cvValidator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	if err := s.checkGenerationAllowed(r, userID); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	result, err := s.cvs.GenerateCV(r.Context(), generate.Request{
		Kind:       generate.RequestKind(req.Kind),
		Data:       req.Data,
		Text:       req.Prompt,
		TemplateID: req.TemplateID,
	})
	if err != nil {
		switch {
		case errors.Is(err, generate.ErrPromptRequired),
			errors.Is(err, generate.ErrDataRequired),
			errors.Is(err, generate.ErrTemplateRequired):
			s.errorResponse(w, http.StatusBadRequest, err.Error())
		default:
			s.errorResponse(w, http.StatusBadGateway, err.Error())
		}
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

func (s *Server) checkGenerationAllowed(r *http.Request, userID uuid.UUID) error {
	snap, err := s.userService.Snapshot(r.Context(), userID)
	if err != nil {
		return err
	}
	if !snap.AllowsGeneration() {
		return &ErrPlanForbids{Feature: "AI generation"}
	}
	return nil
}
