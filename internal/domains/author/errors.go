package author

import (
	"fmt"

	"github.com/google/uuid"

	"research-blog-backend/internal/shared/apperror"
)

var ErrAuthorNotFound = apperror.NotFound("Author not found")

// NotFound carries the requested id in its message and still matches
// ErrAuthorNotFound with errors.Is.
func NotFound(id uuid.UUID) error {
	return &apperror.Error{
		Kind:    apperror.KindNotFound,
		Message: fmt.Sprintf("Author not found with id of %s", id),
		Err:     ErrAuthorNotFound,
	}
}

var ErrImageStorageDisabled = apperror.New(apperror.KindUnavailable, "Image storage is not configured")
