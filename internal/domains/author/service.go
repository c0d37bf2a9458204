package author

import (
	"context"

	"github.com/google/uuid"
)

// Service defines business logic operations for Author
type Service interface {
	Create(ctx context.Context, req CreateAuthorRequest) (*Author, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Author, error)
	List(ctx context.Context, params ListParams) ([]Author, int64, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateAuthorRequest) (*Author, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// UploadImage stores a profile image and saves its URL on the author.
	UploadImage(ctx context.Context, id uuid.UUID, data []byte) (*Author, error)
}

// ImageStore uploads and removes images under a key prefix.
type ImageStore interface {
	UploadImage(ctx context.Context, prefix string, data []byte) (string, error)
	DeleteImages(ctx context.Context, prefix string) error
}
