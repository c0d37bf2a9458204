package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"research-blog-backend/internal/domains/post"
	"research-blog-backend/internal/domains/user"
	"research-blog-backend/internal/shared/apperror"
)

// userService implement user.Service interface
type userService struct {
	repo    user.Repository
	hasher  user.PasswordHasher
	tokens  user.TokenIssuer
	guard   user.LoginGuard
	revoker user.TokenRevoker
	images  user.ImageCleaner
}

// NewUserService tạo service instance
// guard and revoker are backed by Redis and may be nil when it is not configured.
// images removes the covers of deleted posts and may be nil too.
func NewUserService(
	repo user.Repository,
	hasher user.PasswordHasher,
	tokens user.TokenIssuer,
	guard user.LoginGuard,
	revoker user.TokenRevoker,
	images user.ImageCleaner,
) user.Service {
	return &userService{
		repo:    repo,
		hasher:  hasher,
		tokens:  tokens,
		guard:   guard,
		revoker: revoker,
		images:  images,
	}
}

// ========================================
// AUTHENTICATION
// ========================================

// Register creates the account and signs a token for it.
func (s *userService) Register(ctx context.Context, req user.RegisterRequest) (*user.User, string, error) {
	if err := req.Validate(); err != nil {
		return nil, "", err
	}

	// Hashing is an explicit step here, never a side effect of persisting.
	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	newUser := &user.User{
		ID:            uuid.New(),
		UniqueID:      uuid.New(),
		Name:          strings.TrimSpace(req.Name),
		Email:         normalizeEmail(req.Email),
		Role:          user.RoleUser,
		PasswordHash:  passwordHash,
		Image:         req.Image,
		Description:   req.Description,
		GoogleScholar: req.GoogleScholar,
		LinkedIn:      req.LinkedIn,
		ORCID:         req.ORCID,
	}

	if err := s.repo.Create(ctx, newUser); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(newUser.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	log.Info().Str("user_id", newUser.ID.String()).Msg("User registered")

	newUser.Sanitize()
	return newUser, token, nil
}

// Login checks the credentials and signs a token.
// Unknown emails and wrong passwords return the same error.
func (s *userService) Login(ctx context.Context, req user.LoginRequest) (*user.User, string, error) {
	if err := req.Validate(); err != nil {
		return nil, "", err
	}
	email := normalizeEmail(req.Email)

	if s.guard != nil {
		if err := s.guard.Check(ctx, email); err != nil {
			if apperror.IsKind(err, apperror.KindTooManyRequests) {
				return nil, "", err
			}
			log.Warn().Err(err).Msg("Login throttle unavailable")
		}
	}

	u, err := s.repo.FindByEmailWithPassword(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			s.recordFailure(ctx, email)
			return nil, "", user.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !s.hasher.Verify(req.Password, u.PasswordHash) {
		s.recordFailure(ctx, email)
		return nil, "", user.ErrInvalidCredentials
	}

	if s.guard != nil {
		if err := s.guard.Reset(ctx, email); err != nil {
			log.Warn().Err(err).Msg("Failed to reset login attempts")
		}
	}

	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	u.Sanitize()
	return u, token, nil
}

// Logout revokes the token id for the rest of its lifetime.
func (s *userService) Logout(ctx context.Context, tokenID string, remaining time.Duration) error {
	if s.revoker == nil {
		return nil
	}
	if err := s.revoker.Revoke(ctx, tokenID, remaining); err != nil {
		// the cookie is still cleared by the handler
		log.Warn().Err(err).Str("jti", tokenID).Msg("Failed to revoke token")
	}
	return nil
}

func (s *userService) recordFailure(ctx context.Context, email string) {
	if s.guard == nil {
		return
	}
	if err := s.guard.RecordFailure(ctx, email); err != nil {
		log.Warn().Err(err).Msg("Failed to record login failure")
	}
}

// ========================================
// ADMIN FUNCTIONS
// ========================================

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *userService) List(ctx context.Context, params user.ListParams) ([]user.User, int64, error) {
	return s.repo.List(ctx, params)
}

// Update applies a partial update. The hash is only recomputed when the
// request carries a password.
func (s *userService) Update(ctx context.Context, id uuid.UUID, req user.UpdateUserRequest) (*user.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	req.ApplyTo(u)

	var newHash *string
	if req.Password != nil {
		hash, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		newHash = &hash
	}

	if err := s.repo.Update(ctx, u, newHash); err != nil {
		return nil, err
	}

	return u, nil
}

func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	postIDs, err := s.repo.DeleteWithPosts(ctx, id)
	if err != nil {
		return err
	}
	log.Info().Str("user_id", id.String()).Int("posts", len(postIDs)).Msg("User deleted with posts")

	if s.images == nil {
		return nil
	}
	for _, postID := range postIDs {
		if err := s.images.DeleteImages(ctx, post.ImagePrefix(postID)); err != nil {
			log.Warn().Err(err).Str("post_id", postID.String()).Msg("Failed to remove post images")
		}
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
