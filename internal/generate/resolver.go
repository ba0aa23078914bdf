// Package generate produces AI-suggested content for single fields and whole
// CV documents.
package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/jonathan/cv-builder/internal/document"
	"github.com/jonathan/cv-builder/internal/llm"
	"github.com/jonathan/cv-builder/internal/prompts"
)

// Resolver fills a single field's value using the text-generation
// collaborator. Only one field may be generating at a time; Pending exposes
// which one so the caller can disable that field's trigger.
type Resolver struct {
	client llm.Client

	mu      sync.Mutex
	pending string
}

// NewResolver creates a resolver backed by the given client.
func NewResolver(client llm.Client) *Resolver {
	return &Resolver{client: client}
}

// Pending returns the identifier of the field currently generating, or ""
// when the resolver is idle.
func (r *Resolver) Pending() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pending
}

// GenerateField produces a suggested value for one field, given its label and
// a snapshot of the full current document as context. On failure the caller's
// prior value is untouched; the resolver never writes to the document.
func (r *Resolver) GenerateField(ctx context.Context, fieldID, fieldLabel string, snapshot document.Content) (string, error) {
	if !CanGenerate(fieldID) {
		return "", &ErrFieldNotGeneratable{FieldID: fieldID}
	}

	r.mu.Lock()
	if r.pending != "" {
		r.mu.Unlock()
		return "", ErrGenerationInFlight
	}
	r.pending = fieldID
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.pending = ""
		r.mu.Unlock()
	}()

	contextJSON, err := json.Marshal(snapshot)
	if err != nil {
		return "", fmt.Errorf("failed to marshal document context: %w", err)
	}

	prompt := prompts.Format(prompts.MustGet("generation.json", "field_suggestion"), map[string]string{
		"FieldID":    fieldID,
		"FieldLabel": fieldLabel,
		"Context":    string(contextJSON),
	})

	content, err := r.client.GenerateContent(ctx, prompt, llm.TierLite)
	if err != nil {
		return "", fmt.Errorf("failed to generate field content: %w", err)
	}
	return content, nil
}
