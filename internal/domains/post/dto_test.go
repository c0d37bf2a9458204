package post

import (
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"research-blog-backend/internal/shared/apperror"
	"research-blog-backend/internal/shared/query"
)

func TestParseOwnerKind(t *testing.T) {
	k, err := ParseOwnerKind(" Team ")
	require.NoError(t, err)
	assert.Equal(t, OwnerTeam, k)

	_, err = ParseOwnerKind("group")
	assert.Error(t, err)
}

func TestCreatePostRequest_Validate(t *testing.T) {
	valid := CreatePostRequest{Title: "T", Description: "D", Topics: []string{"ml"}}
	assert.NoError(t, valid.Validate())

	noTopics := valid
	noTopics.Topics = nil
	assert.True(t, apperror.IsKind(noTopics.Validate(), apperror.KindValidation))

	badCover := valid
	cover := "not a url"
	badCover.CoverImage = &cover
	assert.Error(t, badCover.Validate())
}

func TestCreatePostRequest_BlankTopicsNeedTopics(t *testing.T) {
	req := CreatePostRequest{Title: "T", Description: "D", Topics: []string{"  "}}

	err := req.Validate()

	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	assert.Contains(t, apperror.From(err).Message, "Please add topics")

	req.Topics = []string{" ml ", " "}
	require.NoError(t, req.Validate())
	assert.Equal(t, []string{"ml"}, req.ToEntity().Topics)
}

func TestCreatePostRequest_BodyImagesMustBeURLs(t *testing.T) {
	req := CreatePostRequest{
		Title:       "T",
		Description: "D",
		Topics:      []string{"ml"},
		BodyImages:  []string{"https://cdn.test/fig1.png", "figure two"},
	}

	err := req.Validate()
	require.Error(t, err)
	assert.Contains(t, apperror.From(err).Message, "bodyImages")

	req.BodyImages = []string{"https://cdn.test/fig1.png"}
	require.NoError(t, req.Validate())
	assert.Equal(t, []string{"https://cdn.test/fig1.png"}, req.ToEntity().BodyImages)
}

func TestUpdatePostRequest_BodyImages(t *testing.T) {
	bad := []string{""}
	assert.Error(t, UpdatePostRequest{BodyImages: &bad}.Validate())

	good := []string{"https://cdn.test/fig2.png"}
	req := UpdatePostRequest{BodyImages: &good}
	require.NoError(t, req.Validate())

	p := &Post{BodyImages: []string{"https://cdn.test/old.png"}}
	req.ApplyTo(p)
	assert.Equal(t, good, p.BodyImages)

	none := []string{}
	require.NoError(t, UpdatePostRequest{BodyImages: &none}.Validate())
}

func TestUpdatePostRequest_RejectsEmptyTopics(t *testing.T) {
	empty := []string{}
	assert.Error(t, UpdatePostRequest{Topics: &empty}.Validate())

	blank := []string{" "}
	err := UpdatePostRequest{Topics: &blank}.Validate()
	require.Error(t, err)
	assert.Equal(t, "Please add topics", apperror.From(err).Message)

	assert.NoError(t, UpdatePostRequest{}.Validate())
}

func TestParseListParams(t *testing.T) {
	owner := uuid.New()
	params, err := ParseListParams(url.Values{
		"sort":  {"title,desc"},
		"owner": {owner.String()},
		"topic": {" ml "},
	})

	require.NoError(t, err)
	assert.Equal(t, SortByTitle, params.Sort.Field)
	assert.Equal(t, query.Descending, params.Sort.Direction)
	assert.Equal(t, owner, *params.Owner)
	assert.Equal(t, "ml", params.Topic)
	assert.Equal(t, query.DefaultPagination(), params.Page)

	_, err = ParseListParams(url.Values{"owner": {"x"}})
	assert.ErrorIs(t, err, ErrInvalidOwnerFilter)
}
