package team

import (
	"fmt"

	"github.com/google/uuid"

	"research-blog-backend/internal/shared/apperror"
)

var (
	ErrTeamNotFound         = apperror.NotFound("Team not found")
	ErrImageStorageDisabled = apperror.New(apperror.KindUnavailable, "Image storage is not configured")
)

func NotFound(id uuid.UUID) error {
	return &apperror.Error{
		Kind:    apperror.KindNotFound,
		Message: fmt.Sprintf("Team not found with id of %s", id),
		Err:     ErrTeamNotFound,
	}
}
