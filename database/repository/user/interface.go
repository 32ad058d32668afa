package userRepo

import (
	"errors"

	"schedly/models"
)

// ErrNotFound is returned when no user matches the lookup.
var ErrNotFound = errors.New("user not found")

// ErrDuplicateEmail is returned when an insert or update collides with the
// unique email index.
var ErrDuplicateEmail = errors.New("email already exists")

// UserRepository defines methods for user data access.
type UserRepository interface {
	// Create inserts a new user record.
	Create(user *models.User) error
	// GetByID retrieves a user by its unique ID.
	GetByID(id string) (*models.User, error)
	// GetByEmail retrieves a user by its email address; nil if absent.
	GetByEmail(email string) (*models.User, error)
	// GetByTokenHash retrieves the user holding the given auth token hash.
	GetByTokenHash(tokenHash string) (*models.User, error)
	// GetAll retrieves all users, optionally filtered by role ("" = all).
	GetAll(role string) ([]models.User, error)
	// Update modifies an existing user record.
	Update(user *models.User) error
	// UpdateSetDocument applies a partial $set update by ID.
	UpdateSetDocument(id string, updateDoc map[string]interface{}) error
	// Delete removes a user record by its ID.
	Delete(id string) error
	// TimezoneOffsetMin returns the stored UTC-minus-local offset for a user.
	// Unknown users resolve to 0 rather than an error.
	TimezoneOffsetMin(id string) (int, error)
}
