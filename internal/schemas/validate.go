// Package schemas validates model-generated JSON against embedded JSON
// Schemas before it is allowed anywhere near the document model.
package schemas

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed generated_cv.schema.json
var generatedCVSchema string

// FieldError is a single validation failure at a specific field path.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError aggregates the schema violations found in one payload.
type ValidationError struct {
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("schema validation failed:")
	for _, fe := range ve.Errors {
		sb.WriteString(fmt.Sprintf("\n  %s: %s", fe.Field, fe.Message))
	}
	return sb.String()
}

// ValidateGeneratedCV checks a whole-document generation payload against the
// embedded schema. Returns a *ValidationError listing every violation, or an
// error if the payload is not valid JSON at all.
func ValidateGeneratedCV(payload []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(generatedCVSchema)
	docLoader := gojsonschema.NewBytesLoader(payload)

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return fmt.Errorf("failed to validate payload: %w", err)
	}

	if result.Valid() {
		return nil
	}

	ve := &ValidationError{}
	for _, desc := range result.Errors() {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   desc.Field(),
			Message: desc.Description(),
		})
	}
	return ve
}
