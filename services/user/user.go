package user

import (
	"context"
	"errors"
	"strings"
	"time"

	userRepo "schedly/database/repository/user"
	"schedly/models"
	"schedly/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// tokenTTL is how long an issued auth token stays valid.
const tokenTTL = 24 * time.Hour

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account with a bcrypt-hashed password.
func (s *DefaultUserService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	name := strings.TrimSpace(input.Name)
	email := normalizeEmail(input.Email)
	password := strings.TrimSpace(input.Password)

	if name == "" {
		return nil, newServiceError(CodeValidation, "name is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, newServiceError(CodeValidation, "email is invalid")
	}
	if len(password) < 8 {
		return nil, newServiceError(CodeValidation, "password must be at least 8 characters long")
	}
	role := input.Role
	if role == "" {
		role = models.RoleClient
	}
	if !models.ValidRole(role) {
		return nil, newServiceError(CodeValidation, "role must be CLIENT, BUSINESS or ADMIN")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, newServiceError(CodeInternal, "failed to hash password: %v", err)
	}

	u := &models.User{
		ID:                uuid.New().String(),
		Name:              name,
		Email:             email,
		PasswordHash:      string(hash),
		Role:              role,
		TimezoneOffsetMin: utils.ClampTimezoneOffset(input.TzOffsetMin),
	}

	if err := s.Repo.Create(u); err != nil {
		if errors.Is(err, userRepo.ErrDuplicateEmail) {
			return nil, newServiceError(CodeConflict, "Email already exists")
		}
		return nil, newServiceError(CodeInternal, "failed to create user: %v", err)
	}

	utils.GetLogger().Info("user registered",
		zap.String("userID", u.ID), zap.String("role", u.Role))
	return u, nil
}

// SignIn verifies credentials, issues a JWT and stores its hash on the user
// row. Users often copy passwords with stray whitespace, so it is trimmed
// the same way Register trims it.
func (s *DefaultUserService) SignIn(ctx context.Context, email, password string) (string, *models.User, error) {
	u, err := s.Repo.GetByEmail(normalizeEmail(email))
	if err != nil {
		return "", nil, newServiceError(CodeInternal, "failed to look up user: %v", err)
	}
	if u == nil {
		return "", nil, newServiceError(CodeUnauthorized, "Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(strings.TrimSpace(password))); err != nil {
		return "", nil, newServiceError(CodeUnauthorized, "Invalid credentials")
	}

	token, err := utils.GenerateToken(u.ID, u.Email, u.Role, tokenTTL)
	if err != nil {
		return "", nil, newServiceError(CodeInternal, "failed to issue token: %v", err)
	}

	if err := s.Repo.UpdateSetDocument(u.ID, map[string]interface{}{"tokenHash": utils.HashToken(token)}); err != nil {
		return "", nil, newServiceError(CodeInternal, "failed to store token hash: %v", err)
	}

	return token, u, nil
}

// SignOut clears the stored token hash so the current token stops resolving.
func (s *DefaultUserService) SignOut(ctx context.Context, userID string) error {
	if err := s.Repo.UpdateSetDocument(userID, map[string]interface{}{"tokenHash": ""}); err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return newServiceError(CodeNotFound, "User not found")
		}
		return newServiceError(CodeInternal, "failed to sign out: %v", err)
	}
	return nil
}

// GetByID fetches one account.
func (s *DefaultUserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, err := s.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return nil, newServiceError(CodeNotFound, "User not found")
		}
		return nil, newServiceError(CodeInternal, "failed to fetch user: %v", err)
	}
	return u, nil
}

// List fetches all accounts, optionally filtered by role.
func (s *DefaultUserService) List(ctx context.Context, role string) ([]models.User, error) {
	if role != "" && !models.ValidRole(role) {
		return nil, newServiceError(CodeValidation, "role must be CLIENT, BUSINESS or ADMIN")
	}
	users, err := s.Repo.GetAll(role)
	if err != nil {
		return nil, newServiceError(CodeInternal, "failed to list users: %v", err)
	}
	return users, nil
}

// Update applies a partial profile update.
func (s *DefaultUserService) Update(ctx context.Context, id string, input UpdateInput) (*models.User, error) {
	updateDoc := map[string]interface{}{}

	if name := strings.TrimSpace(input.Name); name != "" {
		updateDoc["name"] = name
	}
	if input.Email != "" {
		email := normalizeEmail(input.Email)
		if !strings.Contains(email, "@") {
			return nil, newServiceError(CodeValidation, "email is invalid")
		}
		updateDoc["email"] = email
	}
	if input.Password != "" {
		password := strings.TrimSpace(input.Password)
		if len(password) < 8 {
			return nil, newServiceError(CodeValidation, "password must be at least 8 characters long")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, newServiceError(CodeInternal, "failed to hash password: %v", err)
		}
		updateDoc["passwordHash"] = string(hash)
	}
	if input.Role != "" {
		if !models.ValidRole(input.Role) {
			return nil, newServiceError(CodeValidation, "role must be CLIENT, BUSINESS or ADMIN")
		}
		updateDoc["role"] = input.Role
	}
	if input.TzOffsetMin != nil {
		updateDoc["timezoneOffsetMin"] = utils.ClampTimezoneOffset(*input.TzOffsetMin)
	}

	if len(updateDoc) == 0 {
		return s.GetByID(ctx, id)
	}

	if err := s.Repo.UpdateSetDocument(id, updateDoc); err != nil {
		switch {
		case errors.Is(err, userRepo.ErrNotFound):
			return nil, newServiceError(CodeNotFound, "User not found")
		case errors.Is(err, userRepo.ErrDuplicateEmail):
			return nil, newServiceError(CodeConflict, "Email already exists")
		default:
			return nil, newServiceError(CodeInternal, "failed to update user: %v", err)
		}
	}
	return s.GetByID(ctx, id)
}

// Delete removes an account.
func (s *DefaultUserService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(id); err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return newServiceError(CodeNotFound, "User not found")
		}
		return newServiceError(CodeInternal, "failed to delete user: %v", err)
	}
	return nil
}
