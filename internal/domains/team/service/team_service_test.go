package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"research-blog-backend/internal/domains/team"
	"research-blog-backend/internal/shared/apperror"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, t *team.Team) error {
	return m.Called(ctx, t).Error(0)
}

func (m *mockRepo) GetByID(ctx context.Context, id uuid.UUID) (*team.Team, error) {
	args := m.Called(ctx, id)
	if t := args.Get(0); t != nil {
		return t.(*team.Team), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepo) List(ctx context.Context, params team.ListParams) ([]team.Team, int64, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]team.Team), args.Get(1).(int64), args.Error(2)
}

func (m *mockRepo) Update(ctx context.Context, t *team.Team) error {
	return m.Called(ctx, t).Error(0)
}

func (m *mockRepo) DeleteWithPosts(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, id)
	postIDs, _ := args.Get(0).([]uuid.UUID)
	return postIDs, args.Error(1)
}

func TestCreate(t *testing.T) {
	repo := new(mockRepo)
	svc := NewTeamService(repo, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*team.Team")).Return(nil)

	got, err := svc.Create(context.Background(), team.CreateTeamRequest{Name: "Vision Lab", Description: "CV group"})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.UniqueID)
	repo.AssertExpectations(t)
}

func TestCreate_MissingDescription(t *testing.T) {
	svc := NewTeamService(new(mockRepo), nil)

	_, err := svc.Create(context.Background(), team.CreateTeamRequest{Name: "Vision Lab"})

	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	assert.Contains(t, apperror.From(err).Message, "Please add a description")
}

func TestUpdate_NotFound(t *testing.T) {
	repo := new(mockRepo)
	svc := NewTeamService(repo, nil)
	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(nil, team.NotFound(id))

	name := "New"
	_, err := svc.Update(context.Background(), id, team.UpdateTeamRequest{Name: &name})

	assert.ErrorIs(t, err, team.ErrTeamNotFound)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDelete_Cascades(t *testing.T) {
	repo := new(mockRepo)
	svc := NewTeamService(repo, nil)
	id := uuid.New()
	repo.On("DeleteWithPosts", mock.Anything, id).Return([]uuid.UUID{uuid.New()}, nil)

	require.NoError(t, svc.Delete(context.Background(), id))
	repo.AssertExpectations(t)
}

type mockImages struct {
	mock.Mock
}

func (m *mockImages) UploadImage(ctx context.Context, prefix string, data []byte) (string, error) {
	args := m.Called(ctx, prefix, data)
	return args.String(0), args.Error(1)
}

func (m *mockImages) DeleteImages(ctx context.Context, prefix string) error {
	return m.Called(ctx, prefix).Error(0)
}

func TestDelete_RemovesTeamAndPostImages(t *testing.T) {
	repo := new(mockRepo)
	images := new(mockImages)
	svc := NewTeamService(repo, images)
	id, postID := uuid.New(), uuid.New()

	repo.On("DeleteWithPosts", mock.Anything, id).Return([]uuid.UUID{postID}, nil)
	images.On("DeleteImages", mock.Anything, "teams/"+id.String()).Return(nil)
	images.On("DeleteImages", mock.Anything, "posts/"+postID.String()).Return(nil)

	require.NoError(t, svc.Delete(context.Background(), id))
	images.AssertExpectations(t)
}
