package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jonathan/cv-builder/internal/document"
	"github.com/jonathan/cv-builder/internal/export"
	"github.com/jonathan/cv-builder/internal/render"
	"github.com/jonathan/cv-builder/internal/templates"
)

// handleExportCV renders a stored CV to PDF and streams it. The stored
// htmlContent is used when present; otherwise the CV is re-rendered from
// its content and template.
func (s *Server) handleExportCV(w http.ResponseWriter, r *http.Request) {
	userID, cv, ok := s.loadOwnedCV(w, r)
	if !ok {
		return
	}

	html := cv.HTMLContent
	if html == "" {
		tmpl, err := templates.Get(cv.TemplateID)
		if err != nil {
			s.errorResponse(w, http.StatusConflict, "CV has no template; select one before exporting")
			return
		}

		var content document.Content
		if len(cv.Content) > 0 {
			if err := json.Unmarshal(cv.Content, &content); err != nil {
				s.errorResponse(w, http.StatusInternalServerError, "Failed to decode stored CV")
				return
			}
		}

		html, err = render.HTML(content, cv.Title, tmpl)
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	pdf, err := s.exporter.PDF(r.Context(), html)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	user, err := s.db.GetUser(r.Context(), userID)
	if err != nil || user == nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to resolve user")
		return
	}

	filename := export.FileName(user.Name)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(pdf)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
