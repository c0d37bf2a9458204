package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"research-blog-backend/internal/domains/user"
	"research-blog-backend/internal/shared/middleware"
	"research-blog-backend/pkg/jwt"
)

type fakeService struct {
	loginErr   error
	revokedID  string
	revokedTTL time.Duration
	users      []user.User
	lastList   user.ListParams
}

func (f *fakeService) Register(_ context.Context, req user.RegisterRequest) (*user.User, string, error) {
	return &user.User{ID: uuid.New(), Email: req.Email}, "signed.register.token", nil
}

func (f *fakeService) Login(_ context.Context, _ user.LoginRequest) (*user.User, string, error) {
	if f.loginErr != nil {
		return nil, "", f.loginErr
	}
	return &user.User{ID: uuid.New()}, "signed.login.token", nil
}

func (f *fakeService) Logout(_ context.Context, tokenID string, remaining time.Duration) error {
	f.revokedID = tokenID
	f.revokedTTL = remaining
	return nil
}

func (f *fakeService) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			return &f.users[i], nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (f *fakeService) List(_ context.Context, params user.ListParams) ([]user.User, int64, error) {
	f.lastList = params
	return f.users, int64(len(f.users)), nil
}

func (f *fakeService) Update(_ context.Context, id uuid.UUID, _ user.UpdateUserRequest) (*user.User, error) {
	return f.GetByID(context.Background(), id)
}

func (f *fakeService) Delete(_ context.Context, id uuid.UUID) error {
	_, err := f.GetByID(context.Background(), id)
	return err
}

func newAuthRouter(svc user.Service, claims *jwt.Claims, caller *user.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	auth := NewAuthHandler(svc, CookieConfig{MaxAge: 24 * time.Hour})
	users := NewUserHandler(svc)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if claims != nil {
			c.Set(middleware.ContextClaims, claims)
		}
		if caller != nil {
			c.Set(middleware.ContextUser, caller)
		}
		c.Next()
	})
	r.POST("/api/auth/register", auth.Register)
	r.POST("/api/auth/login", auth.Login)
	r.GET("/api/auth/logout", auth.Logout)
	r.GET("/api/auth/me", auth.GetMe)
	r.GET("/api/auth/users", users.ListUsers)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func tokenCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, ck := range w.Result().Cookies() {
		if ck.Name == middleware.TokenCookie {
			return ck
		}
	}
	return nil
}

func TestLogin_SetsHTTPOnlyCookieAndReturnsToken(t *testing.T) {
	r := newAuthRouter(&fakeService{}, nil, nil)

	w := postJSON(r, "/api/auth/login", `{"email":"ada@example.com","password":"secret1"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"token":"signed.login.token"}`, w.Body.String())

	ck := tokenCookie(w)
	require.NotNil(t, ck)
	assert.Equal(t, "signed.login.token", ck.Value)
	assert.True(t, ck.HttpOnly)
	assert.Equal(t, 86400, ck.MaxAge)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	r := newAuthRouter(&fakeService{loginErr: user.ErrInvalidCredentials}, nil, nil)

	w := postJSON(r, "/api/auth/login", `{"email":"ada@example.com","password":"wrong-pass"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Invalid credentials"}`, w.Body.String())
	assert.Nil(t, tokenCookie(w))
}

func TestLogin_MissingFields(t *testing.T) {
	r := newAuthRouter(&fakeService{}, nil, nil)

	w := postJSON(r, "/api/auth/login", `{"email":"ada@example.com"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Please provide an email and password")
}

func TestLogout_RevokesTokenAndExpiresCookie(t *testing.T) {
	svc := &fakeService{}
	claims := &jwt.Claims{UserID: uuid.NewString()}
	claims.ID = "token-id"
	r := newAuthRouter(svc, claims, &user.User{ID: uuid.New()})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth/logout", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":{}}`, w.Body.String())
	assert.Equal(t, "token-id", svc.revokedID)

	ck := tokenCookie(w)
	require.NotNil(t, ck)
	assert.Equal(t, "none", ck.Value)
	assert.True(t, ck.MaxAge < 0)
}

func TestGetMe_ReturnsCallerWithoutHash(t *testing.T) {
	caller := &user.User{ID: uuid.New(), Name: "Ada", PasswordHash: "$2a$secret"}
	r := newAuthRouter(&fakeService{}, nil, caller)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "$2a$secret")

	var body struct {
		Data user.User `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, caller.ID, body.Data.ID)
}

func TestListUsers_RoleFilter(t *testing.T) {
	svc := &fakeService{users: []user.User{{ID: uuid.New(), Role: user.RoleAdmin}}}
	r := newAuthRouter(svc, nil, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth/users?role=admin&sort=email,desc", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, user.SortByEmail, svc.lastList.Sort.Field)
	assert.Contains(t, w.Body.String(), `"count":1`)
}
