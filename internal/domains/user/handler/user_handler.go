package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"research-blog-backend/internal/domains/user"
	"research-blog-backend/internal/shared/request"
	"research-blog-backend/internal/shared/response"
)

// UserHandler serves the admin user endpoints.
type UserHandler struct {
	service user.Service
}

func NewUserHandler(service user.Service) *UserHandler {
	return &UserHandler{service: service}
}

// ListUsers - GET /api/auth/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	params := user.ParseListParams(c.Request.URL.Query())

	users, total, err := h.service.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.List(c, users, total)
}

// GetUser - GET /api/auth/user/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := request.ParamUUID(c, "id")
	if !ok {
		return
	}

	u, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, u)
}

// UpdateUser - PUT /api/auth/user/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := request.ParamUUID(c, "id")
	if !ok {
		return
	}

	var req user.UpdateUserRequest
	if !request.BindJSON(c, &req) {
		return
	}

	u, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, u)
}

// DeleteUser - DELETE /api/auth/user/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := request.ParamUUID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, nil)
}
