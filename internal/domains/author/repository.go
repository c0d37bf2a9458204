package author

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for Author data access operations
type Repository interface {
	// Create inserts a new author and fills its timestamps.
	Create(ctx context.Context, author *Author) error

	// GetByID returns the author with its post count.
	// Errors: ErrAuthorNotFound if not exists
	GetByID(ctx context.Context, id uuid.UUID) (*Author, error)

	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)

	// List returns one page and the total matching the filters.
	List(ctx context.Context, params ListParams) ([]Author, int64, error)

	Update(ctx context.Context, author *Author) error

	// DeleteWithPosts removes the author's posts, then the author, in one transaction.
	// It returns the ids of the removed posts.
	DeleteWithPosts(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error)
}
