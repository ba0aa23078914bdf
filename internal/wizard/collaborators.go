package wizard

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/cv-builder/internal/document"
	"github.com/jonathan/cv-builder/internal/generate"
)

// SaveRequest is the payload the controller sends to the document store.
type SaveRequest struct {
	UserID      uuid.UUID
	Title       string
	TemplateID  string
	Content     document.Content
	HTMLContent string
	IsPublic    bool
}

// StoredDocument is the canonical object the document store returns; the
// store may normalize fields, and the controller adopts whatever comes back.
type StoredDocument struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Title      string
	TemplateID string
	Content    document.Content
	UpdatedAt  time.Time
}

// Store is the document-store collaborator.
type Store interface {
	Load(ctx context.Context, id uuid.UUID) (*StoredDocument, error)
	Create(ctx context.Context, req SaveRequest) (*StoredDocument, error)
	Update(ctx context.Context, id uuid.UUID, req SaveRequest) (*StoredDocument, error)
}

// FieldGenerator produces a suggested value for one field.
type FieldGenerator interface {
	GenerateField(ctx context.Context, fieldID, fieldLabel string, snapshot document.Content) (string, error)
	// Pending returns the field currently generating, or "" when idle
	Pending() string
}

// DocumentGenerator produces a whole-document draft.
type DocumentGenerator interface {
	GenerateCV(ctx context.Context, req generate.Request) (*generate.Result, error)
}

// Exporter renders preview HTML into PDF bytes.
type Exporter interface {
	PDF(ctx context.Context, html string) ([]byte, error)
}
