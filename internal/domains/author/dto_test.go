package author

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"research-blog-backend/internal/shared/apperror"
)

func TestCreateAuthorRequest_BlankTopics(t *testing.T) {
	req := CreateAuthorRequest{Name: "Ada", Topic: []string{"  "}, Description: "Mathematician"}

	err := req.Validate()

	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	assert.Contains(t, apperror.From(err).Message, "Please add topics")
}

func TestUpdateAuthorRequest_BlankTopics(t *testing.T) {
	blank := []string{" ", "\t"}

	err := UpdateAuthorRequest{Topic: &blank}.Validate()

	require.Error(t, err)
	assert.Equal(t, "Please add topics", apperror.From(err).Message)
}
