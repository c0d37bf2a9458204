package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"research-blog-backend/internal/domains/post"
	"research-blog-backend/internal/shared/middleware"
	"research-blog-backend/internal/shared/request"
	"research-blog-backend/internal/shared/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type PostHandler struct {
	service post.Service
}

func NewPostHandler(svc post.Service) *PostHandler {
	return &PostHandler{
		service: svc,
	}
}

// ════════════════════════════════════════════════════════════════
// CREATE: POST /api/post
// ════════════════════════════════════════════════════════════════

// Create defaults the owner to the caller when posts are owned by users.
func (h *PostHandler) Create(c *gin.Context) {
	var req post.CreatePostRequest
	if !request.BindJSON(c, &req) {
		return
	}

	if req.Owner == nil && h.service.OwnerKind() == post.OwnerUser {
		if u, ok := middleware.CurrentUser(c); ok {
			req.Owner = &u.ID
		}
	}

	p, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, p)
}

// ════════════════════════════════════════════════════════════════
// READ
// ════════════════════════════════════════════════════════════════

// GET /api/post/:id
func (h *PostHandler) GetByID(c *gin.Context) {
	id, ok := request.ParamUUID(c, "id")
	if !ok {
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, p)
}

// GET /api/post?sort=title,desc&page=1&limit=10&topic=&owner=&search=
func (h *PostHandler) List(c *gin.Context) {
	params, err := post.ParseListParams(c.Request.URL.Query())
	if err != nil {
		response.Error(c, err)
		return
	}

	posts, total, err := h.service.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.List(c, posts, total)
}

// GET /api/post/user/:id - posts of one owner, whatever the owner kind.
func (h *PostHandler) ListByOwner(c *gin.Context) {
	ownerID, ok := request.ParamUUID(c, "id")
	if !ok {
		return
	}

	params, err := post.ParseListParams(c.Request.URL.Query())
	if err != nil {
		response.Error(c, err)
		return
	}

	posts, total, err := h.service.ListByOwner(c.Request.Context(), ownerID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.List(c, posts, total)
}

// GET /api/post/export - same filters as List, as an xlsx attachment.
func (h *PostHandler) Export(c *gin.Context) {
	params, err := post.ParseListParams(c.Request.URL.Query())
	if err != nil {
		response.Error(c, err)
		return
	}

	f, n, err := h.service.Export(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close export workbook")
		}
	}()

	filename := fmt.Sprintf("posts-%s.xlsx", time.Now().UTC().Format("20060102-150405"))
	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("X-Export-Count", strconv.Itoa(n))
	c.Status(http.StatusOK)

	if err := f.Write(c.Writer); err != nil {
		log.Error().Err(err).Msg("Failed to write export workbook")
	}
}

// ════════════════════════════════════════════════════════════════
// UPDATE: PUT /api/post/:id
// ════════════════════════════════════════════════════════════════

func (h *PostHandler) Update(c *gin.Context) {
	id, ok := request.ParamUUID(c, "id")
	if !ok {
		return
	}

	var req post.UpdatePostRequest
	if !request.BindJSON(c, &req) {
		return
	}

	p, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, p)
}

// ════════════════════════════════════════════════════════════════
// DELETE: DELETE /api/post/:id
// ════════════════════════════════════════════════════════════════

func (h *PostHandler) Delete(c *gin.Context) {
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
// COVER: PUT /api/post/:id/cover (multipart field "file")
// ════════════════════════════════════════════════════════════════

func (h *PostHandler) UploadCover(c *gin.Context) {
	id, ok := request.ParamUUID(c, "id")
	if !ok {
		return
	}

	data, ok := request.FormFile(c, "file")
	if !ok {
		return
	}

	p, err := h.service.UploadCover(c.Request.Context(), id, data)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, p)
}
