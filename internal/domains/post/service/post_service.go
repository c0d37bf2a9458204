package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"research-blog-backend/internal/domains/post"
)

type postService struct {
	repo   post.Repository
	owners post.OwnerLookup
	kind   post.OwnerKind
	images post.ImageStore
}

// NewPostService creates a post service whose posts are owned by kind.
// owners must look up that same kind; images may be nil.
func NewPostService(repo post.Repository, kind post.OwnerKind, owners post.OwnerLookup, images post.ImageStore) post.Service {
	return &postService{
		repo:   repo,
		owners: owners,
		kind:   kind,
		images: images,
	}
}

func (s *postService) OwnerKind() post.OwnerKind {
	return s.kind
}

// Create checks the owner up front for a clear error; the insert itself
// re-checks under a row lock, so a concurrent owner delete still wins.
func (s *postService) Create(ctx context.Context, req post.CreatePostRequest) (*post.Post, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.Owner == nil || *req.Owner == uuid.Nil {
		return nil, post.ErrOwnerRequired
	}

	exists, err := s.owners.ExistsByID(ctx, *req.Owner)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, post.OwnerNotFound(s.kind, *req.Owner)
	}

	p := req.ToEntity()
	p.ID = uuid.New()
	p.UniqueID = uuid.New()
	p.OwnerKind = s.kind
	p.OwnerID = *req.Owner

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *postService) GetByID(ctx context.Context, id uuid.UUID) (*post.Post, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *postService) List(ctx context.Context, params post.ListParams) ([]post.Post, int64, error) {
	params.OwnerKind = s.kind
	return s.repo.List(ctx, params)
}

// ListByOwner does not require the owner to exist; an unknown owner simply has no posts.
func (s *postService) ListByOwner(ctx context.Context, ownerID uuid.UUID, params post.ListParams) ([]post.Post, int64, error) {
	params.Owner = &ownerID
	return s.List(ctx, params)
}

func (s *postService) Update(ctx context.Context, id uuid.UUID, req post.UpdatePostRequest) (*post.Post, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	req.ApplyTo(p)

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *postService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if s.images != nil {
		if err := s.images.DeleteImages(ctx, post.ImagePrefix(id)); err != nil {
			log.Warn().Err(err).Str("post_id", id.String()).Msg("Failed to remove post cover images")
		}
	}
	return nil
}

func (s *postService) UploadCover(ctx context.Context, id uuid.UUID, data []byte) (*post.Post, error) {
	if s.images == nil {
		return nil, post.ErrImageStorageDisabled
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	url, err := s.images.UploadImage(ctx, post.ImagePrefix(id), data)
	if err != nil {
		return nil, err
	}

	p.CoverImage = &url
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
