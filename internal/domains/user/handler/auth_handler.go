package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"research-blog-backend/internal/domains/user"
	"research-blog-backend/internal/shared/middleware"
	"research-blog-backend/internal/shared/request"
	"research-blog-backend/internal/shared/response"
)

// CookieConfig controls the token cookie set on register and login.
type CookieConfig struct {
	MaxAge time.Duration
	Secure bool
}

// AuthHandler xử lý HTTP requests cho authentication
type AuthHandler struct {
	service user.Service
	cookie  CookieConfig
}

func NewAuthHandler(service user.Service, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{
		service: service,
		cookie:  cookie,
	}
}

// Register xử lý POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if !request.BindJSON(c, &req) {
		return
	}

	_, token, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.sendToken(c, http.StatusOK, token)
}

// Login xử lý POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if !request.BindJSON(c, &req) {
		return
	}

	_, token, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.sendToken(c, http.StatusOK, token)
}

// Logout xử lý GET /api/auth/logout
// The cookie is overwritten with an expired one and the token id is revoked.
func (h *AuthHandler) Logout(c *gin.Context) {
	if claims, ok := middleware.CurrentClaims(c); ok {
		if err := h.service.Logout(c.Request.Context(), claims.ID, middleware.RemainingTTL(c)); err != nil {
			response.Error(c, err)
			return
		}
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, "none", -1, "/", "", h.cookie.Secure, true)

	response.Success(c, http.StatusOK, nil)
}

// GetMe xử lý GET /api/auth/me
func (h *AuthHandler) GetMe(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, user.ErrNotAuthenticated)
		return
	}

	response.Success(c, http.StatusOK, u)
}

func (h *AuthHandler) sendToken(c *gin.Context, status int, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, token, int(h.cookie.MaxAge.Seconds()), "/", "", h.cookie.Secure, true)
	response.Token(c, status, token)
}
