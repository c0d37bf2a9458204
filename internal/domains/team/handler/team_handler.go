package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"research-blog-backend/internal/domains/team"
	"research-blog-backend/internal/shared/request"
	"research-blog-backend/internal/shared/response"
)

type TeamHandler struct {
	service team.Service
}

func NewTeamHandler(svc team.Service) *TeamHandler {
	return &TeamHandler{service: svc}
}

// Create - POST /api/team
func (h *TeamHandler) Create(c *gin.Context) {
	var req team.CreateTeamRequest
	if !request.BindJSON(c, &req) {
		return
	}

	t, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, t)
}

// List - GET /api/team?sort=name&page=1&limit=10&search=
func (h *TeamHandler) List(c *gin.Context) {
	teams, total, err := h.service.List(c.Request.Context(), team.ParseListParams(c.Request.URL.Query()))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, teams, total)
}

// GetByID - GET /api/team/:id
func (h *TeamHandler) GetByID(c *gin.Context) {
	id, ok := request.ParamUUID(c, "id")
	if !ok {
		return
	}

	t, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, t)
}

// Update - PUT /api/team/:id
func (h *TeamHandler) Update(c *gin.Context) {
	id, ok := request.ParamUUID(c, "id")
	if !ok {
		return
	}

	var req team.UpdateTeamRequest
	if !request.BindJSON(c, &req) {
		return
	}

	t, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, t)
}

// Delete - DELETE /api/team/:id
func (h *TeamHandler) Delete(c *gin.Context) {
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

// UploadImage - PUT /api/team/:id/image
func (h *TeamHandler) UploadImage(c *gin.Context) {
	id, ok := request.ParamUUID(c, "id")
	if !ok {
		return
	}

	data, ok := request.FormFile(c, "file")
	if !ok {
		return
	}

	t, err := h.service.UploadImage(c.Request.Context(), id, data)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, t)
}
