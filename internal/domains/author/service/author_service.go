package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"research-blog-backend/internal/domains/author"
	"research-blog-backend/internal/domains/post"
)

// authorService implements author.Service interface
type authorService struct {
	repo   author.Repository
	images author.ImageStore
}

// NewAuthorService creates a new author service instance.
// images may be nil when object storage is disabled.
func NewAuthorService(repo author.Repository, images author.ImageStore) author.Service {
	return &authorService{
		repo:   repo,
		images: images,
	}
}

func (s *authorService) Create(ctx context.Context, req author.CreateAuthorRequest) (*author.Author, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	a := req.ToEntity()
	a.ID = uuid.New()
	a.UniqueID = uuid.New()

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	zero := int64(0)
	a.PostCount = &zero
	return a, nil
}

func (s *authorService) GetByID(ctx context.Context, id uuid.UUID) (*author.Author, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *authorService) List(ctx context.Context, params author.ListParams) ([]author.Author, int64, error) {
	return s.repo.List(ctx, params)
}

// Update re-validates the fields present in req before writing.
func (s *authorService) Update(ctx context.Context, id uuid.UUID, req author.UpdateAuthorRequest) (*author.Author, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	req.ApplyTo(a)

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Delete removes the author and its posts. Stored images are cleaned up
// afterwards; a storage failure does not undo the delete.
func (s *authorService) Delete(ctx context.Context, id uuid.UUID) error {
	postIDs, err := s.repo.DeleteWithPosts(ctx, id)
	if err != nil {
		return err
	}

	if s.images != nil {
		if err := s.images.DeleteImages(ctx, imagePrefix(id)); err != nil {
			log.Warn().Err(err).Str("author_id", id.String()).Msg("Failed to remove author images")
		}
		for _, postID := range postIDs {
			if err := s.images.DeleteImages(ctx, post.ImagePrefix(postID)); err != nil {
				log.Warn().Err(err).Str("post_id", postID.String()).Msg("Failed to remove post images")
			}
		}
	}
	return nil
}

func (s *authorService) UploadImage(ctx context.Context, id uuid.UUID, data []byte) (*author.Author, error) {
	if s.images == nil {
		return nil, author.ErrImageStorageDisabled
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	url, err := s.images.UploadImage(ctx, imagePrefix(id), data)
	if err != nil {
		return nil, err
	}

	a.Image = &url
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func imagePrefix(id uuid.UUID) string {
	return fmt.Sprintf("authors/%s", id)
}
