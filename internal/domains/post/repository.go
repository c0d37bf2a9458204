package post

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for posts.
type Repository interface {
	// Create inserts p only if its owner row exists, holding a share lock on
	// that row until commit. Returns OwnerNotFound otherwise.
	Create(ctx context.Context, p *Post) error

	GetByID(ctx context.Context, id uuid.UUID) (*Post, error)
	List(ctx context.Context, params ListParams) ([]Post, int64, error)
	Update(ctx context.Context, p *Post) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// OwnerLookup checks that an owner of the configured kind exists.
type OwnerLookup interface {
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
}
