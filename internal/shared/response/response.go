package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"research-blog-backend/internal/shared/apperror"
)

// Response is the envelope every endpoint returns.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Total   *int64      `json:"total,omitempty"`
	Token   string      `json:"token,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Success writes {success:true, data}.
func Success(c *gin.Context, statusCode int, data interface{}) {
	if data == nil {
		data = gin.H{}
	}
	c.JSON(statusCode, Response{
		Success: true,
		Data:    data,
	})
}

// List writes a page of results with its size and the filtered total.
func List[T any](c *gin.Context, items []T, total int64) {
	if items == nil {
		items = []T{}
	}
	count := len(items)
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    items,
		Count:   &count,
		Total:   &total,
	})
}

// Token writes {success:true, token}.
func Token(c *gin.Context, statusCode int, token string) {
	c.JSON(statusCode, Response{
		Success: true,
		Token:   token,
	})
}

// Error translates err through the application error taxonomy and writes
// {success:false, error}. Unexpected errors are logged and answered with a
// generic message.
func Error(c *gin.Context, err error) {
	appErr := apperror.From(err)
	status := appErr.Kind.HTTPStatus()

	if appErr.Kind == apperror.KindUnexpected {
		log.Error().
			Err(err).
			Str("request_id", c.GetString("request_id")).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Unhandled error")
	}

	Abort(c, status, appErr.Message)
}

// Abort writes an error envelope with an explicit status and stops the chain.
func Abort(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, Response{
		Success: false,
		Error:   message,
	})
}
