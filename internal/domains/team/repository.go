package team

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, t *Team) error
	GetByID(ctx context.Context, id uuid.UUID) (*Team, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context, params ListParams) ([]Team, int64, error)
	Update(ctx context.Context, t *Team) error
	// DeleteWithPosts removes the team's posts, then the team, in one transaction.
	// It returns the ids of the removed posts.
	DeleteWithPosts(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error)
}
