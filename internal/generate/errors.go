package generate

import (
	"errors"
	"fmt"
)

// ErrFieldNotGeneratable is returned when generation is requested for a
// deny-listed field. The UI never offers the trigger for these, so reaching
// this error means a caller bypassed the contract.
type ErrFieldNotGeneratable struct {
	FieldID string
}

func (e *ErrFieldNotGeneratable) Error() string {
	return fmt.Sprintf("field %q does not support AI generation", e.FieldID)
}

// Precondition violations for whole-document generation.
var (
	// ErrGenerationInFlight means another field is already generating;
	// only one field may be pending at a time per resolver.
	ErrGenerationInFlight = errors.New("another field is already generating")

	ErrPromptRequired   = errors.New("a prompt is required for AI generation")
	ErrDataRequired     = errors.New("CV content is required for structured generation")
	ErrTemplateRequired = errors.New("a template must be selected before AI generation")
)
