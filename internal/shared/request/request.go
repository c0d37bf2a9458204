package request

import (
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"research-blog-backend/internal/shared/apperror"
	"research-blog-backend/internal/shared/response"
)

var (
	ErrInvalidBody = apperror.Validation("Invalid request body")
	ErrInvalidID   = apperror.Validation("Invalid id")
	ErrMissingFile = apperror.Validation("Please upload a file")
	ErrFileTooBig  = apperror.Validation("File is too large")
)

// MaxUploadSize bounds multipart image uploads.
const MaxUploadSize = 5 << 20

// Validatable is implemented by request DTOs.
type Validatable interface {
	Validate() error
}

// BindJSON decodes the body into req and validates it when req implements
// Validatable. On failure the error envelope is written and false is returned.
func BindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.Error(c, ErrInvalidBody)
		return false
	}

	if v, ok := req.(Validatable); ok {
		if err := v.Validate(); err != nil {
			response.Error(c, err)
			return false
		}
	}
	return true
}

// ParamUUID parses a path parameter as a UUID. A malformed id is a
// validation error, not a lookup miss.
func ParamUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.Error(c, ErrInvalidID)
		return uuid.Nil, false
	}
	return id, true
}

// FormFile reads the multipart file in field, at most MaxUploadSize bytes.
func FormFile(c *gin.Context, field string) ([]byte, bool) {
	header, err := c.FormFile(field)
	if err != nil {
		response.Error(c, ErrMissingFile)
		return nil, false
	}
	if header.Size > MaxUploadSize {
		response.Error(c, ErrFileTooBig)
		return nil, false
	}

	f, err := header.Open()
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxUploadSize+1))
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	if len(data) > MaxUploadSize {
		response.Error(c, ErrFileTooBig)
		return nil, false
	}
	return data, true
}
