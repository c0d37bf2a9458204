package post

import (
	"fmt"

	"github.com/google/uuid"

	"research-blog-backend/internal/shared/apperror"
)

var (
	ErrPostNotFound         = apperror.NotFound("Post not found")
	ErrOwnerNotFound        = apperror.Validation("Post owner does not exist")
	ErrOwnerRequired        = apperror.Validation("Please add an owner")
	ErrInvalidOwnerFilter   = apperror.Validation("Invalid owner id")
	ErrImageStorageDisabled = apperror.New(apperror.KindUnavailable, "Image storage is not configured")
)

func NotFound(id uuid.UUID) error {
	return &apperror.Error{
		Kind:    apperror.KindNotFound,
		Message: fmt.Sprintf("Post not found with id of %s", id),
		Err:     ErrPostNotFound,
	}
}

// OwnerNotFound names the missing owner and matches ErrOwnerNotFound.
func OwnerNotFound(kind OwnerKind, id uuid.UUID) error {
	return &apperror.Error{
		Kind:    apperror.KindValidation,
		Message: fmt.Sprintf("No %s with the id of %s", kind, id),
		Err:     ErrOwnerNotFound,
	}
}
