package user

import (
	"context"

	userRepo "schedly/database/repository/user"
	"schedly/models"
)

// RegisterInput is the sign-up payload.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
	// TzOffsetMin is stored for later availability computation (relevant for
	// BUSINESS accounts); Date.getTimezoneOffset() semantics.
	TzOffsetMin int
}

// UpdateInput carries the mutable profile fields; empty strings and nil
// pointers mean "leave unchanged".
type UpdateInput struct {
	Name        string
	Email       string
	Password    string
	Role        string
	TzOffsetMin *int
}

// UserService handles the account directory and credential issuance.
type UserService interface {
	// Register creates an account. Duplicate emails fail with CONFLICT.
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	// SignIn verifies credentials and issues a JWT whose hash is stored on
	// the user row, so a single sign-out can revoke it.
	SignIn(ctx context.Context, email, password string) (string, *models.User, error)
	// SignOut clears the stored token hash.
	SignOut(ctx context.Context, userID string) error
	// GetByID fetches one account.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// List fetches all accounts, optionally filtered by role.
	List(ctx context.Context, role string) ([]models.User, error)
	// Update applies a partial profile update.
	Update(ctx context.Context, id string, input UpdateInput) (*models.User, error)
	// Delete removes an account.
	Delete(ctx context.Context, id string) error
}

// DefaultUserService implements UserService over the Mongo user repository.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}
