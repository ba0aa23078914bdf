package server

import (
	"net/http"

	"github.com/jonathan/cv-builder/internal/templates"
)

// templateView is the catalog entry exposed to clients. The HTML body stays
// server-side.
type templateView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsPremium bool   `json:"isPremium"`
}

// handleListTemplates returns the template catalog.
func (s *Server) handleListTemplates(w http.ResponseWriter, _ *http.Request) {
	all := templates.All()
	out := make([]templateView, 0, len(all))
	for _, t := range all {
		out = append(out, templateView{ID: t.ID, Name: t.Name, IsPremium: t.IsPremium})
	}
	s.jsonResponse(w, http.StatusOK, out)
}

// handleGetTemplate returns one catalog entry.
func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	t, err := templates.Get(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusNotFound, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, templateView{ID: t.ID, Name: t.Name, IsPremium: t.IsPremium})
}
