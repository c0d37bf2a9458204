package middleware

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"research-blog-backend/internal/domains/user"
	"research-blog-backend/internal/shared/apperror"
	"research-blog-backend/internal/shared/response"
	"research-blog-backend/pkg/jwt"
)

// Context keys set by Protect.
const (
	ContextUser   = "user"
	ContextClaims = "token_claims"
)

// TokenCookie is the cookie the auth endpoints set and Protect reads.
const TokenCookie = "token"

var errNotAuthorized = apperror.Authentication("Not authorized to access this route")

// TokenVerifier checks a signed token.
type TokenVerifier interface {
	Verify(token string) (*jwt.Claims, error)
}

// UserLoader loads the identified user without its password hash.
type UserLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}

// RevocationChecker reports logged-out token ids.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Protect - Middleware xác thực JWT token
// The token is read from "Authorization: Bearer <token>" and then from the
// token cookie. On any failure the request ends with 401 and nothing is set
// on the context. revoked may be nil.
func Protect(verifier TokenVerifier, users UserLoader, revoked RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.Error(c, errNotAuthorized)
			return
		}

		claims, err := verifier.Verify(token)
		if err != nil {
			response.Error(c, errNotAuthorized)
			return
		}

		ctx := c.Request.Context()

		if revoked != nil {
			isRevoked, err := revoked.IsRevoked(ctx, claims.ID)
			if err != nil {
				// Redis down: the signature and expiry checks still apply.
				log.Warn().Err(err).Msg("Token denylist unavailable")
			} else if isRevoked {
				response.Error(c, errNotAuthorized)
				return
			}
		}

		u, err := users.FindByID(ctx, claims.UserUUID())
		if err != nil {
			if apperror.IsKind(err, apperror.KindNotFound) {
				response.Error(c, errNotAuthorized)
				return
			}
			response.Error(c, err)
			return
		}

		c.Set(ContextUser, u)
		c.Set(ContextClaims, claims)
		c.Next()
	}
}

// Authorize rejects callers whose role is not in roles. It must run after Protect.
func Authorize(roles ...user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := CurrentUser(c)
		if !ok {
			response.Error(c, errNotAuthorized)
			return
		}

		for _, r := range roles {
			if u.Role == r {
				c.Next()
				return
			}
		}

		response.Error(c, apperror.Forbidden(
			fmt.Sprintf("User role %s is not authorized to access this route", u.Role),
		))
	}
}

// CurrentUser returns the user attached by Protect.
func CurrentUser(c *gin.Context) (*user.User, bool) {
	v, exists := c.Get(ContextUser)
	if !exists {
		return nil, false
	}
	u, ok := v.(*user.User)
	return u, ok && u != nil
}

// CurrentClaims returns the verified token claims attached by Protect.
func CurrentClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, exists := c.Get(ContextClaims)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	return claims, ok && claims != nil
}

// RemainingTTL is how long the current token stays valid.
func RemainingTTL(c *gin.Context) time.Duration {
	claims, ok := CurrentClaims(c)
	if !ok {
		return 0
	}
	return claims.RemainingTTL(time.Now())
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if scheme, token, found := strings.Cut(authHeader, " "); found && strings.EqualFold(scheme, "Bearer") {
		if token = strings.TrimSpace(token); token != "" {
			return token
		}
	}

	if cookie, err := c.Cookie(TokenCookie); err == nil && cookie != "" {
		return cookie
	}
	return ""
}
