package server

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/cv-builder/internal/config"
	"github.com/jonathan/cv-builder/internal/subscription"
)

// UserService provides business logic for user authentication operations
type UserService struct {
	db             DBClient
	passwordConfig *config.PasswordConfig
}

// NewUserService creates a new UserService with the given dependencies
func NewUserService(db DBClient, passwordConfig *config.PasswordConfig) *UserService {
	return &UserService{
		db:             db,
		passwordConfig: passwordConfig,
	}
}

// Register creates a new user with password authentication. New accounts
// start on the free plan.
func (s *UserService) Register(ctx context.Context, req *CreateUserRequest) (*UserResponse, error) {
	exists, err := s.db.CheckEmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, &ErrEmailAlreadyExists{Email: req.Email}
	}

	passwordHash, err := s.passwordConfig.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	userID, err := s.db.CreateUser(ctx, req.Name, req.Email, passwordHash, subscription.PlanFree)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	dbUser, err := s.db.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve created user: %w", err)
	}
	if dbUser == nil {
		return nil, fmt.Errorf("created user not found: %s", userID)
	}

	return userResponse(dbUser), nil
}

// Login authenticates a user and returns user data
func (s *UserService) Login(ctx context.Context, req *LoginRequest) (*UserResponse, error) {
	dbUser, err := s.db.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	// Security: always return the generic error whether the user is missing
	// or the password is wrong
	if dbUser == nil {
		return nil, &ErrInvalidCredentials{}
	}
	if !s.passwordConfig.VerifyPassword(req.Password, dbUser.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}

	return userResponse(dbUser), nil
}

// Snapshot builds the subscription snapshot for a user from its plan and
// current CV count.
func (s *UserService) Snapshot(ctx context.Context, userID uuid.UUID) (subscription.Snapshot, error) {
	dbUser, err := s.db.GetUser(ctx, userID)
	if err != nil {
		return subscription.Snapshot{}, fmt.Errorf("failed to get user: %w", err)
	}
	if dbUser == nil {
		return subscription.Snapshot{}, &ErrUserNotFound{UserID: userID}
	}

	count, err := s.db.CountCVsByUser(ctx, userID)
	if err != nil {
		return subscription.Snapshot{}, fmt.Errorf("failed to count CVs: %w", err)
	}

	return subscription.ForPlan(dbUser.Plan, count), nil
}
