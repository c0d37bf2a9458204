package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"research-blog-backend/internal/domains/post"
	"research-blog-backend/internal/domains/team"
)

type teamService struct {
	repo   team.Repository
	images team.ImageStore
}

func NewTeamService(repo team.Repository, images team.ImageStore) team.Service {
	return &teamService{repo: repo, images: images}
}

func (s *teamService) Create(ctx context.Context, req team.CreateTeamRequest) (*team.Team, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	t := req.ToEntity()
	t.ID = uuid.New()
	t.UniqueID = uuid.New()

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *teamService) GetByID(ctx context.Context, id uuid.UUID) (*team.Team, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *teamService) List(ctx context.Context, params team.ListParams) ([]team.Team, int64, error) {
	return s.repo.List(ctx, params)
}

func (s *teamService) Update(ctx context.Context, id uuid.UUID, req team.UpdateTeamRequest) (*team.Team, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	req.ApplyTo(t)

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *teamService) Delete(ctx context.Context, id uuid.UUID) error {
	postIDs, err := s.repo.DeleteWithPosts(ctx, id)
	if err != nil {
		return err
	}

	if s.images != nil {
		if err := s.images.DeleteImages(ctx, "teams/"+id.String()); err != nil {
			log.Warn().Err(err).Str("team_id", id.String()).Msg("Failed to remove team images")
		}
		for _, postID := range postIDs {
			if err := s.images.DeleteImages(ctx, post.ImagePrefix(postID)); err != nil {
				log.Warn().Err(err).Str("post_id", postID.String()).Msg("Failed to remove post images")
			}
		}
	}
	return nil
}

func (s *teamService) UploadImage(ctx context.Context, id uuid.UUID, data []byte) (*team.Team, error) {
	if s.images == nil {
		return nil, team.ErrImageStorageDisabled
	}

	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	url, err := s.images.UploadImage(ctx, "teams/"+id.String(), data)
	if err != nil {
		return nil, err
	}

	t.Image = &url
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}
