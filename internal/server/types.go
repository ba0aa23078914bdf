package server

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/cv-builder/internal/db"
	"github.com/jonathan/cv-builder/internal/document"
)

// CreateUserRequest is the registration payload.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse is the public view of a user, password hash excluded.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Plan      string    `json:"plan"`
	CreatedAt time.Time `json:"createdAt"`
}

// LoginResponse carries the authenticated user and its bearer token.
type LoginResponse struct {
	User  *UserResponse `json:"user"`
	Token string        `json:"token"`
}

// CVRequest is the create/update payload for a CV.
type CVRequest struct {
	Title       string           `json:"title" validate:"required,min=1"`
	TemplateID  string           `json:"templateId" validate:"required"`
	Content     document.Content `json:"content"`
	HTMLContent string           `json:"htmlContent,omitempty"`
	IsPublic    bool             `json:"isPublic"`
}

// CVResponse is the canonical stored object returned to clients.
type CVResponse struct {
	ID          uuid.UUID        `json:"id"`
	UserID      uuid.UUID        `json:"userId"`
	Title       string           `json:"title"`
	TemplateID  string           `json:"templateId"`
	Content     document.Content `json:"content"`
	HTMLContent string           `json:"htmlContent,omitempty"`
	IsPublic    bool             `json:"isPublic"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// UpdatePlanRequest changes the caller's subscription plan.
type UpdatePlanRequest struct {
	Plan string `json:"plan" validate:"required,oneof=free pro"`
}

// GenerateFieldRequest asks for a single field suggestion.
type GenerateFieldRequest struct {
	FieldID    string           `json:"fieldId" validate:"required"`
	FieldLabel string           `json:"fieldLabel" validate:"required"`
	Context    document.Content `json:"context"`
}

// GenerateFieldResponse carries the suggested content.
type GenerateFieldResponse struct {
	Content string `json:"content"`
}

// GenerateCVRequest is the tagged whole-document generation payload.
// Kind is "structured" or "prompt".
type GenerateCVRequest struct {
	Kind       string           `json:"kind" validate:"required,oneof=structured prompt"`
	Data       document.Content `json:"data,omitempty"`
	Prompt     string           `json:"prompt,omitempty"`
	TemplateID string           `json:"templateId,omitempty"`
}

func cvResponse(cv *db.CV) (*CVResponse, error) {
	var content document.Content
	if len(cv.Content) > 0 {
		if err := json.Unmarshal(cv.Content, &content); err != nil {
			return nil, err
		}
	}
	return &CVResponse{
		ID:          cv.ID,
		UserID:      cv.UserID,
		Title:       cv.Title,
		TemplateID:  cv.TemplateID,
		Content:     content,
		HTMLContent: cv.HTMLContent,
		IsPublic:    cv.IsPublic,
		CreatedAt:   cv.CreatedAt,
		UpdatedAt:   cv.UpdatedAt,
	}, nil
}

func userResponse(u *db.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Plan:      u.Plan,
		CreatedAt: u.CreatedAt,
	}
}
