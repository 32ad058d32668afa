package models

import "time"

// User roles. Role strings are stored as-is in Mongo and embedded in JWT claims.
const (
	RoleClient   = "CLIENT"
	RoleBusiness = "BUSINESS"
	RoleAdmin    = "ADMIN"
)

// User represents an account in the directory. BUSINESS users additionally
// own a weekly schedule and receive appointments.
type User struct {
	ID           string `bson:"id" json:"id"`
	Name         string `bson:"name" json:"name"`
	Email        string `bson:"email" json:"email"`
	PasswordHash string `bson:"passwordHash" json:"-"`
	Role         string `bson:"role" json:"role"`

	// TimezoneOffsetMin uses Date.getTimezoneOffset() semantics:
	// minutes = UTC - local. Only the stored value of a BUSINESS user drives
	// availability computation; client-supplied offsets are never trusted.
	TimezoneOffsetMin int `bson:"timezoneOffsetMin" json:"timezoneOffsetMin"`

	// TokenHash is the SHA-256 hash of the currently issued auth token.
	// Cleared on sign-out so stale tokens stop resolving.
	TokenHash string `bson:"tokenHash,omitempty" json:"-"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// PublicUser is the directory view returned over the API.
type PublicUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Public strips credentials and internal fields.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// ValidRole reports whether s is one of the three known roles.
func ValidRole(s string) bool {
	return s == RoleClient || s == RoleBusiness || s == RoleAdmin
}
