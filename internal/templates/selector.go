package templates

import (
	"fmt"

	"github.com/jonathan/cv-builder/internal/subscription"
)

// ErrPremiumNotAllowed is returned when a free-plan caller selects a template
// flagged premium. The prior selection is left unchanged.
type ErrPremiumNotAllowed struct {
	TemplateName string
}

func (e *ErrPremiumNotAllowed) Error() string {
	return fmt.Sprintf("template %q requires a premium plan", e.TemplateName)
}

// Selector mediates template choice against the session's subscription
// snapshot. Template compatibility with already-entered content is not
// checked; switching templates only changes the rendering.
type Selector struct {
	snapshot subscription.Snapshot
	current  *Template
}

// NewSelector creates a selector bound to a read-only subscription snapshot.
func NewSelector(snap subscription.Snapshot) *Selector {
	return &Selector{snapshot: snap}
}

// Select adopts the template as current, unless it is premium and the plan
// does not permit premium templates, in which case the current selection is
// left unchanged and a rejection error is returned.
func (s *Selector) Select(t Template) error {
	if t.IsPremium && !s.snapshot.AllowsPremiumTemplates() {
		return &ErrPremiumNotAllowed{TemplateName: t.Name}
	}
	s.current = &t
	return nil
}

// Current returns the selected template, or nil if none has been chosen.
func (s *Selector) Current() *Template {
	return s.current
}
