package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"research-blog-backend/internal/domains/author"
	"research-blog-backend/internal/shared/request"
	"research-blog-backend/internal/shared/response"
)

type AuthorHandler struct {
	service author.Service
}

func NewAuthorHandler(svc author.Service) *AuthorHandler {
	return &AuthorHandler{
		service: svc,
	}
}

// ════════════════════════════════════════════════════════════════
// CREATE: POST /api/author
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Create(c *gin.Context) {
	var req author.CreateAuthorRequest
	if !request.BindJSON(c, &req) {
		return
	}

	a, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, a)
}

// ════════════════════════════════════════════════════════════════
// READ: GET /api/author/:id
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) GetByID(c *gin.Context) {
	id, ok := request.ParamUUID(c, "id")
	if !ok {
		return
	}

	a, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, a)
}

// ════════════════════════════════════════════════════════════════
// READ: GET /api/author?sort=name,desc&page=1&limit=10&topic=&search=
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) List(c *gin.Context) {
	params := author.ParseListParams(c.Request.URL.Query())

	authors, total, err := h.service.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.List(c, authors, total)
}

// ════════════════════════════════════════════════════════════════
// UPDATE: PUT /api/author/:id
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Update(c *gin.Context) {
	id, ok := request.ParamUUID(c, "id")
	if !ok {
		return
	}

	var req author.UpdateAuthorRequest
	if !request.BindJSON(c, &req) {
		return
	}

	a, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, a)
}

// ════════════════════════════════════════════════════════════════
// DELETE: DELETE /api/author/:id (posts first, then the author)
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Delete(c *gin.Context) {
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

// ════════════════════════════════════════════════════════════════
// IMAGE: PUT /api/author/:id/image (multipart field "file")
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) UploadImage(c *gin.Context) {
	id, ok := request.ParamUUID(c, "id")
	if !ok {
		return
	}

	data, ok := request.FormFile(c, "file")
	if !ok {
		return
	}

	a, err := h.service.UploadImage(c.Request.Context(), id, data)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, a)
}
