package post

import (
	"context"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// Service defines business logic operations for Post
type Service interface {
	// OwnerKind is the kind every post created by this service carries.
	OwnerKind() OwnerKind

	Create(ctx context.Context, req CreatePostRequest) (*Post, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Post, error)
	List(ctx context.Context, params ListParams) ([]Post, int64, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, params ListParams) ([]Post, int64, error)
	Update(ctx context.Context, id uuid.UUID, req UpdatePostRequest) (*Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UploadCover(ctx context.Context, id uuid.UUID, data []byte) (*Post, error)

	// Export writes every post matching the filters (up to MaxExportRows) to a workbook.
	Export(ctx context.Context, params ListParams) (*excelize.File, int, error)
}

type ImageStore interface {
	UploadImage(ctx context.Context, prefix string, data []byte) (string, error)
	DeleteImages(ctx context.Context, prefix string) error
}
