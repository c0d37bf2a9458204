package user

import (
	"time"

	"github.com/google/uuid"
)

// User is the account entity stored in the users table.
type User struct {
	ID       uuid.UUID `json:"id"`
	UniqueID uuid.UUID `json:"uniqueId"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Role     Role      `json:"role"`

	// Only populated by FindByEmailWithPassword. Never serialized.
	PasswordHash string `json:"-"`

	// Profile
	Image         *string `json:"image,omitempty"`
	Description   *string `json:"description,omitempty"`
	GoogleScholar *string `json:"googleScholar,omitempty"`
	LinkedIn      *string `json:"linkedIn,omitempty"`
	ORCID         *string `json:"ORCID,omitempty"`

	// Number of posts owned by the user, filled by listing queries.
	PostCount *int64 `json:"postCount,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Role enum
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// IsValid kiểm tra role hợp lệ
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// Sanitize removes sensitive data before sending to client
func (u *User) Sanitize() {
	u.PasswordHash = ""
}
