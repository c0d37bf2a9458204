package user

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Service định nghĩa business logic layer contract
type Service interface {
	// Authentication
	Register(ctx context.Context, req RegisterRequest) (*User, string, error)
	Login(ctx context.Context, req LoginRequest) (*User, string, error)
	Logout(ctx context.Context, tokenID string, remaining time.Duration) error

	// Admin Functions
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	List(ctx context.Context, params ListParams) ([]User, int64, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (*User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PasswordHasher hashes and checks passwords.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}

// TokenIssuer signs identity tokens.
type TokenIssuer interface {
	Issue(userID uuid.UUID) (string, error)
}

// LoginGuard limits repeated failed logins per email.
type LoginGuard interface {
	Check(ctx context.Context, email string) error
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// TokenRevoker invalidates a token id until it would have expired.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
}

// ImageCleaner removes stored images under a key prefix.
type ImageCleaner interface {
	DeleteImages(ctx context.Context, prefix string) error
}
