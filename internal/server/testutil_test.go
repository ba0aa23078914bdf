package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/cv-builder/internal/config"
	"github.com/jonathan/cv-builder/internal/db"
	"github.com/jonathan/cv-builder/internal/document"
	"github.com/jonathan/cv-builder/internal/generate"
)

// fakeDB is an in-memory DBClient for handler tests.
type fakeDB struct {
	mu    sync.Mutex
	users map[uuid.UUID]*db.User
	cvs   map[uuid.UUID]*db.CV
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		users: make(map[uuid.UUID]*db.User),
		cvs:   make(map[uuid.UUID]*db.CV),
	}
}

func (f *fakeDB) addUser(name, email, passwordHash, plan string) *db.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := &db.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Plan:         plan,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	f.users[u.ID] = u
	return u
}

func (f *fakeDB) CreateUser(_ context.Context, name, email, passwordHash, plan string) (uuid.UUID, error) {
	return f.addUser(name, email, passwordHash, plan).ID, nil
}

func (f *fakeDB) GetUser(_ context.Context, id uuid.UUID) (*db.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[id], nil
}

func (f *fakeDB) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeDB) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	u, err := f.GetUserByEmail(ctx, email)
	return u != nil, err
}

func (f *fakeDB) UpdateUserPlan(_ context.Context, id uuid.UUID, plan string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return fmt.Errorf("user not found: %s", id)
	}
	u.Plan = plan
	return nil
}

func (f *fakeDB) CreateCV(_ context.Context, input db.CVInput) (*db.CV, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cv := &db.CV{
		ID:          uuid.New(),
		UserID:      input.UserID,
		Title:       input.Title,
		TemplateID:  input.TemplateID,
		Content:     input.Content,
		HTMLContent: input.HTMLContent,
		IsPublic:    input.IsPublic,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	f.cvs[cv.ID] = cv
	return cv, nil
}

func (f *fakeDB) GetCV(_ context.Context, id uuid.UUID) (*db.CV, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cvs[id], nil
}

func (f *fakeDB) UpdateCV(_ context.Context, id uuid.UUID, input db.CVInput) (*db.CV, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cv, ok := f.cvs[id]
	if !ok || cv.UserID != input.UserID {
		return nil, nil
	}
	cv.Title = input.Title
	cv.TemplateID = input.TemplateID
	cv.Content = input.Content
	cv.HTMLContent = input.HTMLContent
	cv.IsPublic = input.IsPublic
	cv.UpdatedAt = time.Now()
	return cv, nil
}

func (f *fakeDB) DeleteCV(_ context.Context, id, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cv, ok := f.cvs[id]
	if !ok || cv.UserID != userID {
		return fmt.Errorf("CV not found: %s", id)
	}
	delete(f.cvs, id)
	return nil
}

func (f *fakeDB) ListCVsByUser(_ context.Context, userID uuid.UUID) ([]db.CV, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []db.CV
	for _, cv := range f.cvs {
		if cv.UserID == userID {
			out = append(out, *cv)
		}
	}
	return out, nil
}

func (f *fakeDB) CountCVsByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	cvs, _ := f.ListCVsByUser(ctx, userID)
	return len(cvs), nil
}

type fakeFieldGenerator struct {
	content string
	err     error
}

func (f *fakeFieldGenerator) GenerateField(_ context.Context, fieldID, _ string, _ document.Content) (string, error) {
	if !generate.CanGenerate(fieldID) {
		return "", &generate.ErrFieldNotGeneratable{FieldID: fieldID}
	}
	if f.err != nil {
		return "", f.err
	}
	return f.content, nil
}

type fakeCVGenerator struct {
	result *generate.Result
	err    error
}

func (f *fakeCVGenerator) GenerateCV(_ context.Context, _ generate.Request) (*generate.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakePDFExporter struct {
	pdf []byte
	err error
}

func (f *fakePDFExporter) PDF(_ context.Context, _ string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.pdf, nil
}

// newTestServer wires a Server around fakes, returning the routed handler.
func newTestServer(t *testing.T, fdb *fakeDB) (*Server, http.Handler) {
	t.Helper()

	passwordConfig := &config.PasswordConfig{BcryptCost: 10}
	jwtConfig := &config.JWTConfig{
		Secret:          "test-secret-key-for-jwt-signing-minimum-32-bytes",
		ExpirationHours: 24,
	}

	s := &Server{
		db:         fdb,
		jwtService: NewJWTService(jwtConfig),
		fields:     &fakeFieldGenerator{content: "Generated text."},
		cvs:        &fakeCVGenerator{result: &generate.Result{Title: "Draft"}},
		exporter:   &fakePDFExporter{pdf: []byte("%PDF-1.4 test")},
	}
	s.userService = NewUserService(fdb, passwordConfig)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService)

	return s, s.routes()
}

// bearerFor issues a real token for userID against the test JWT secret.
func bearerFor(t *testing.T, s *Server, userID uuid.UUID) string {
	t.Helper()
	token, err := s.jwtService.GenerateToken(userID)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return "Bearer " + token
}
