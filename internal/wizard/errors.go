package wizard

import "errors"

var (
	// ErrCreationNotAllowed means the subscription snapshot forbids CV
	// creation; the caller should redirect to an upsell destination.
	ErrCreationNotAllowed = errors.New("your plan does not allow creating more CVs")

	// ErrGenerationNotAllowed means the plan does not include AI assistance.
	ErrGenerationNotAllowed = errors.New("your plan does not include AI generation")

	// ErrNoTemplate guards operations that need a selected template.
	ErrNoTemplate = errors.New("select a template first")
)
