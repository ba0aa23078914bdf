// Package store is the HTTP gateway to the document-store service. It speaks
// the same JSON wire shapes the server in this repository exposes, so the
// wizard can run against a local or remote deployment interchangeably.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/cv-builder/internal/document"
	"github.com/jonathan/cv-builder/internal/wizard"
)

// DefaultTimeout bounds a single store round trip.
const DefaultTimeout = 15 * time.Second

// Client talks to the document-store REST API. The zero value is not usable;
// construct with New.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New creates a client for the store at baseURL. token is the bearer token
// attached to every request; pass "" for unauthenticated endpoints.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: DefaultTimeout},
	}
}

// cvPayload is the request body for create and update.
type cvPayload struct {
	UserID      uuid.UUID        `json:"userId"`
	Title       string           `json:"title"`
	TemplateID  string           `json:"templateId"`
	Content     document.Content `json:"content"`
	HTMLContent string           `json:"htmlContent,omitempty"`
	IsPublic    bool             `json:"isPublic"`
}

// cvRecord is the canonical stored object the server returns.
type cvRecord struct {
	ID          uuid.UUID        `json:"id"`
	UserID      uuid.UUID        `json:"userId"`
	Title       string           `json:"title"`
	TemplateID  string           `json:"templateId"`
	Content     document.Content `json:"content"`
	HTMLContent string           `json:"htmlContent,omitempty"`
	IsPublic    bool             `json:"isPublic"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

func (r *cvRecord) stored() *wizard.StoredDocument {
	return &wizard.StoredDocument{
		ID:         r.ID,
		UserID:     r.UserID,
		Title:      r.Title,
		TemplateID: r.TemplateID,
		Content:    r.Content,
		UpdatedAt:  r.UpdatedAt,
	}
}

func payload(req wizard.SaveRequest) cvPayload {
	return cvPayload{
		UserID:      req.UserID,
		Title:       req.Title,
		TemplateID:  req.TemplateID,
		Content:     req.Content,
		HTMLContent: req.HTMLContent,
		IsPublic:    req.IsPublic,
	}
}

// Load fetches one stored CV.
func (c *Client) Load(ctx context.Context, id uuid.UUID) (*wizard.StoredDocument, error) {
	var rec cvRecord
	if err := c.do(ctx, http.MethodGet, "/cvs/"+id.String(), nil, &rec); err != nil {
		return nil, err
	}
	return rec.stored(), nil
}

// Create persists a new CV and returns the canonical object with its
// assigned identifier.
func (c *Client) Create(ctx context.Context, req wizard.SaveRequest) (*wizard.StoredDocument, error) {
	var rec cvRecord
	if err := c.do(ctx, http.MethodPost, "/cvs", payload(req), &rec); err != nil {
		return nil, err
	}
	return rec.stored(), nil
}

// Update replaces the stored CV identified by id.
func (c *Client) Update(ctx context.Context, id uuid.UUID, req wizard.SaveRequest) (*wizard.StoredDocument, error) {
	var rec cvRecord
	if err := c.do(ctx, http.MethodPut, "/cvs/"+id.String(), payload(req), &rec); err != nil {
		return nil, err
	}
	return rec.stored(), nil
}

// List returns all CVs for the authenticated user.
func (c *Client) List(ctx context.Context) ([]*wizard.StoredDocument, error) {
	var recs []cvRecord
	if err := c.do(ctx, http.MethodGet, "/cvs", nil, &recs); err != nil {
		return nil, err
	}
	out := make([]*wizard.StoredDocument, len(recs))
	for i := range recs {
		out[i] = recs[i].stored()
	}
	return out, nil
}

// Delete removes a stored CV.
func (c *Client) Delete(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/cvs/"+id.String(), nil, nil)
}

// do executes one JSON round trip. body and out may each be nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return &Error{Op: method + " " + path, Message: "failed to encode request", Cause: err}
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &Error{Op: method + " " + path, Message: "failed to create request", Cause: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Op: method + " " + path, Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := readErrorMessage(resp.Body)
		return &Error{Op: method + " " + path, Status: resp.StatusCode, Message: msg}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &Error{Op: method + " " + path, Message: "failed to decode response", Cause: err}
		}
	}
	return nil
}

// readErrorMessage pulls the server's {"error": "..."} body, falling back to
// the raw text when the body is not JSON.
func readErrorMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(raw) == 0 {
		return "request rejected"
	}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		return body.Error
	}
	return strings.TrimSpace(string(raw))
}

// Error describes a failed store call.
type Error struct {
	Op      string
	Status  int
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("store: %s: %s (status %d)", e.Op, e.Message, e.Status)
	}
	if e.Cause != nil {
		return fmt.Sprintf("store: %s: %s: %v", e.Op, e.Message, e.Cause)
	}
	return fmt.Sprintf("store: %s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// NotFound reports whether err is a store error with HTTP 404.
func NotFound(err error) bool {
	var se *Error
	return errors.As(err, &se) && se.Status == http.StatusNotFound
}
