package server

import (
	"context"

	"github.com/google/uuid"
	"github.com/jonathan/cv-builder/internal/db"
	"github.com/jonathan/cv-builder/internal/document"
	"github.com/jonathan/cv-builder/internal/generate"
)

// DBClient is the storage surface the server needs. *db.DB satisfies it; the
// handler tests substitute a fake.
type DBClient interface {
	CreateUser(ctx context.Context, name, email, passwordHash, plan string) (uuid.UUID, error)
	GetUser(ctx context.Context, id uuid.UUID) (*db.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	UpdateUserPlan(ctx context.Context, id uuid.UUID, plan string) error

	CreateCV(ctx context.Context, input db.CVInput) (*db.CV, error)
	GetCV(ctx context.Context, id uuid.UUID) (*db.CV, error)
	UpdateCV(ctx context.Context, id uuid.UUID, input db.CVInput) (*db.CV, error)
	DeleteCV(ctx context.Context, id, userID uuid.UUID) error
	ListCVsByUser(ctx context.Context, userID uuid.UUID) ([]db.CV, error)
	CountCVsByUser(ctx context.Context, userID uuid.UUID) (int, error)
}

type fieldGenerator interface {
	GenerateField(ctx context.Context, fieldID, fieldLabel string, snapshot document.Content) (string, error)
}

type cvGenerator interface {
	GenerateCV(ctx context.Context, req generate.Request) (*generate.Result, error)
}

type pdfExporter interface {
	PDF(ctx context.Context, html string) ([]byte, error)
}
