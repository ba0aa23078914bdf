package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CV represents a stored CV document. Content is the serialized
// sectionID -> fieldID -> value mapping, stored as JSONB.
type CV struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"userId"`
	Title       string          `json:"title"`
	TemplateID  string          `json:"templateId"`
	Content     json.RawMessage `json:"content"`
	HTMLContent string          `json:"htmlContent,omitempty"`
	IsPublic    bool            `json:"isPublic"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// CVInput holds the writable fields of a CV
type CVInput struct {
	UserID      uuid.UUID
	Title       string
	TemplateID  string
	Content     json.RawMessage
	HTMLContent string
	IsPublic    bool
}

const cvColumns = `id, user_id, title, template_id, content, html_content, is_public, created_at, updated_at`

func scanCV(row pgx.Row) (*CV, error) {
	var cv CV
	err := row.Scan(&cv.ID, &cv.UserID, &cv.Title, &cv.TemplateID, &cv.Content,
		&cv.HTMLContent, &cv.IsPublic, &cv.CreatedAt, &cv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &cv, nil
}

// CreateCV inserts a new CV and returns the stored row
func (db *DB) CreateCV(ctx context.Context, input CVInput) (*CV, error) {
	content := input.Content
	if len(content) == 0 {
		content = json.RawMessage(`{}`)
	}
	cv, err := scanCV(db.pool.QueryRow(ctx,
		`INSERT INTO cvs (user_id, title, template_id, content, html_content, is_public)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+cvColumns,
		input.UserID, input.Title, input.TemplateID, content, input.HTMLContent, input.IsPublic,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create CV: %w", err)
	}
	return cv, nil
}

// GetCV retrieves a CV by ID, returning nil if not found
func (db *DB) GetCV(ctx context.Context, id uuid.UUID) (*CV, error) {
	cv, err := scanCV(db.pool.QueryRow(ctx,
		`SELECT `+cvColumns+` FROM cvs WHERE id = $1`,
		id,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get CV: %w", err)
	}
	return cv, nil
}

// UpdateCV replaces a CV's writable fields and returns the stored row.
// Returns nil if no CV with this id belongs to input.UserID.
func (db *DB) UpdateCV(ctx context.Context, id uuid.UUID, input CVInput) (*CV, error) {
	content := input.Content
	if len(content) == 0 {
		content = json.RawMessage(`{}`)
	}
	cv, err := scanCV(db.pool.QueryRow(ctx,
		`UPDATE cvs
		 SET title = $1, template_id = $2, content = $3, html_content = $4,
		     is_public = $5, updated_at = NOW()
		 WHERE id = $6 AND user_id = $7
		 RETURNING `+cvColumns,
		input.Title, input.TemplateID, content, input.HTMLContent, input.IsPublic,
		id, input.UserID,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update CV: %w", err)
	}
	return cv, nil
}

// DeleteCV removes a CV owned by userID
func (db *DB) DeleteCV(ctx context.Context, id, userID uuid.UUID) error {
	result, err := db.pool.Exec(ctx,
		`DELETE FROM cvs WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete CV: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("CV not found: %s", id)
	}
	return nil
}

// ListCVsByUser retrieves all CVs belonging to a user, newest first
func (db *DB) ListCVsByUser(ctx context.Context, userID uuid.UUID) ([]CV, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+cvColumns+` FROM cvs WHERE user_id = $1 ORDER BY updated_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list CVs: %w", err)
	}
	defer rows.Close()

	var cvs []CV
	for rows.Next() {
		cv, err := scanCV(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan CV: %w", err)
		}
		cvs = append(cvs, *cv)
	}
	return cvs, nil
}

// CountCVsByUser returns how many CVs a user has created
func (db *DB) CountCVsByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM cvs WHERE user_id = $1`,
		userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count CVs: %w", err)
	}
	return count, nil
}
