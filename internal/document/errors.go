package document

import "errors"

// Save precondition violations. These are caught before any network call and
// surface as specific user-visible messages.
var (
	ErrNoTemplate    = errors.New("a template must be selected before saving")
	ErrTitleRequired = errors.New("the CV needs a title before saving")
	ErrNameRequired  = errors.New("name is required before saving")
	ErrEmailRequired = errors.New("email is required before saving")

	// ErrFirstBlockProtected guards the invariant that the experience
	// section always retains at least one entry.
	ErrFirstBlockProtected = errors.New("the first experience entry cannot be removed")
)

// ValidateForSave checks the save preconditions: a selected template, a
// non-empty title, and non-empty name and email in the personal section.
// The first violation found is returned.
func (d *Document) ValidateForSave() error {
	if d.TemplateID == "" {
		return ErrNoTemplate
	}
	if d.Title == "" {
		return ErrTitleRequired
	}
	if d.FieldValue(SectionPersonal, FieldName) == "" {
		return ErrNameRequired
	}
	if d.FieldValue(SectionPersonal, FieldEmail) == "" {
		return ErrEmailRequired
	}
	return nil
}
