package apperror_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"research-blog-backend/internal/shared/apperror"
)

var errThingNotFound = apperror.NotFound("thing not found")

func TestKind_HTTPStatus(t *testing.T) {
	tests := map[apperror.Kind]int{
		apperror.KindValidation:      http.StatusBadRequest,
		apperror.KindAuthentication:  http.StatusUnauthorized,
		apperror.KindForbidden:       http.StatusForbidden,
		apperror.KindNotFound:        http.StatusNotFound,
		apperror.KindConflict:        http.StatusConflict,
		apperror.KindTooManyRequests: http.StatusTooManyRequests,
		apperror.KindTimeout:         http.StatusServiceUnavailable,
		apperror.KindUnavailable:     http.StatusServiceUnavailable,
		apperror.KindUnexpected:      http.StatusInternalServerError,
	}

	for kind, status := range tests {
		assert.Equal(t, status, kind.HTTPStatus(), kind.String())
	}
}

func TestFrom_SurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("service: %w", fmt.Errorf("repo: %w", errThingNotFound))

	got := apperror.From(err)
	assert.Equal(t, apperror.KindNotFound, got.Kind)
	assert.Equal(t, "thing not found", got.Message)
	assert.ErrorIs(t, err, errThingNotFound)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestFrom_UnclassifiedIsUnexpected(t *testing.T) {
	cause := errors.New("connection reset by peer")

	got := apperror.From(cause)
	assert.Equal(t, apperror.KindUnexpected, got.Kind)
	assert.Equal(t, "Server Error", got.Message)
	assert.ErrorIs(t, got, cause)
}

func TestFrom_Nil(t *testing.T) {
	assert.Nil(t, apperror.From(nil))
}

func TestError_Message(t *testing.T) {
	assert.Equal(t, "bad", apperror.Validation("bad").Error())

	withCause := &apperror.Error{Kind: apperror.KindValidation, Message: "bad", Err: errors.New("why")}
	assert.Equal(t, "bad: why", withCause.Error())
}

func TestFrom_DeadlineIsTimeout(t *testing.T) {
	err := fmt.Errorf("list posts: %w", context.DeadlineExceeded)

	got := apperror.From(err)
	assert.Equal(t, apperror.KindTimeout, got.Kind)
	assert.Equal(t, "Request timed out", got.Message)
}
