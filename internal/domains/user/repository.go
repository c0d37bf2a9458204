package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository định nghĩa contract cho data access layer
type Repository interface {
	// Create inserts u and fills its timestamps.
	// Returns ErrEmailAlreadyExists when the email is taken.
	Create(ctx context.Context, u *User) error

	// FindByID never selects the password hash.
	// Returns ErrUserNotFound when no row matches.
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmailWithPassword is the only read that selects password_hash (login).
	FindByEmailWithPassword(ctx context.Context, email string) (*User, error)

	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)

	// List returns one page and the total matching the filters.
	List(ctx context.Context, params ListParams) ([]User, int64, error)

	// Update writes the mutable columns of u. The password hash is only
	// replaced when newPasswordHash is non-nil.
	Update(ctx context.Context, u *User, newPasswordHash *string) error

	// DeleteWithPosts removes the user's posts, then the user, in one transaction.
	// It returns the ids of the removed posts.
	DeleteWithPosts(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error)
}
