package generate

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonathan/cv-builder/internal/document"
	"github.com/jonathan/cv-builder/internal/llm"
	"github.com/jonathan/cv-builder/internal/prompts"
	"github.com/jonathan/cv-builder/internal/schemas"
)

// RequestKind tags the two whole-document generation request variants.
type RequestKind string

const (
	// KindStructured improves existing CV content.
	KindStructured RequestKind = "structured"
	// KindPrompt drafts CV content from a free-text description.
	KindPrompt RequestKind = "prompt"
)

// Request is a tagged whole-document generation request. Exactly one of Data
// (structured) or Text (prompt) is consulted, selected by Kind.
type Request struct {
	Kind       RequestKind
	Data       document.Content
	Text       string
	TemplateID string
}

// Result is the normalized output of either request variant. It is ephemeral:
// the caller merges it into the document and discards it.
type Result struct {
	Title       string           `json:"title"`
	Data        document.Content `json:"data"`
	HTMLContent string           `json:"htmlContent,omitempty"`
}

// Generator produces whole-document drafts via the text-generation
// collaborator, schema-validating the output before it is returned.
type Generator struct {
	client llm.Client
}

// NewGenerator creates a generator backed by the given client.
func NewGenerator(client llm.Client) *Generator {
	return &Generator{client: client}
}

// GenerateCV runs a whole-document generation request and returns the
// normalized result.
func (g *Generator) GenerateCV(ctx context.Context, req Request) (*Result, error) {
	prompt, err := buildPrompt(req)
	if err != nil {
		return nil, err
	}

	raw, err := g.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CV: %w", err)
	}

	if err := schemas.ValidateGeneratedCV([]byte(raw)); err != nil {
		return nil, fmt.Errorf("generated CV failed validation: %w", err)
	}

	var result Result
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, fmt.Errorf("failed to parse generated CV: %w", err)
	}
	if result.Data == nil {
		result.Data = document.Content{}
	}
	return &result, nil
}

// buildPrompt checks the variant's precondition and renders its prompt.
func buildPrompt(req Request) (string, error) {
	if req.TemplateID == "" {
		return "", ErrTemplateRequired
	}

	switch req.Kind {
	case KindPrompt:
		if req.Text == "" {
			return "", ErrPromptRequired
		}
		return prompts.Format(prompts.MustGet("generation.json", "cv_from_prompt"), map[string]string{
			"Prompt": req.Text,
		}), nil
	case KindStructured:
		if len(req.Data) == 0 {
			return "", ErrDataRequired
		}
		dataJSON, err := json.Marshal(req.Data)
		if err != nil {
			return "", fmt.Errorf("failed to marshal CV content: %w", err)
		}
		return prompts.Format(prompts.MustGet("generation.json", "cv_from_data"), map[string]string{
			"Data": string(dataJSON),
		}), nil
	default:
		return "", fmt.Errorf("unknown generation request kind: %q", req.Kind)
	}
}
