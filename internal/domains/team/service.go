package team

import (
	"context"

	"github.com/google/uuid"
)

type Service interface {
	Create(ctx context.Context, req CreateTeamRequest) (*Team, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Team, error)
	List(ctx context.Context, params ListParams) ([]Team, int64, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateTeamRequest) (*Team, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UploadImage(ctx context.Context, id uuid.UUID, data []byte) (*Team, error)
}

type ImageStore interface {
	UploadImage(ctx context.Context, prefix string, data []byte) (string, error)
	DeleteImages(ctx context.Context, prefix string) error
}
