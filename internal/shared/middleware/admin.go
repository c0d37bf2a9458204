package middleware

import (
	"github.com/gin-gonic/gin"

	"research-blog-backend/internal/domains/user"
)

// AdminOnly is Authorize restricted to the admin role.
func AdminOnly() gin.HandlerFunc {
	return Authorize(user.RoleAdmin)
}
