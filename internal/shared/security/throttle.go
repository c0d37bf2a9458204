package security

import (
	"context"
	"fmt"
	"strings"
	"time"

	"research-blog-backend/internal/shared/apperror"
	"research-blog-backend/pkg/kvstore"
)

var ErrTooManyAttempts = apperror.TooManyRequests("Too many failed login attempts, please try again later")

// LoginThrottle locks an email out after maxAttempts failures inside window.
// The lock lasts for window and a successful login clears the counter.
type LoginThrottle struct {
	store       kvstore.Store
	maxAttempts int
	window      time.Duration
}

func NewLoginThrottle(store kvstore.Store, maxAttempts int, window time.Duration) *LoginThrottle {
	if maxAttempts < 1 {
		maxAttempts = 5
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &LoginThrottle{store: store, maxAttempts: maxAttempts, window: window}
}

func attemptKey(email string) string {
	return "failed_login:" + strings.ToLower(strings.TrimSpace(email))
}

func lockKey(email string) string {
	return "login_locked:" + strings.ToLower(strings.TrimSpace(email))
}

// Check returns ErrTooManyAttempts while email is locked.
func (t *LoginThrottle) Check(ctx context.Context, email string) error {
	locked, err := t.store.Exists(ctx, lockKey(email))
	if err != nil {
		return fmt.Errorf("check login lock: %w", err)
	}
	if locked {
		return ErrTooManyAttempts
	}
	return nil
}

// RecordFailure counts a failed attempt and locks the email once the limit is hit.
func (t *LoginThrottle) RecordFailure(ctx context.Context, email string) error {
	key := attemptKey(email)

	attempts, err := t.store.Increment(ctx, key)
	if err != nil {
		return fmt.Errorf("increment failed logins: %w", err)
	}

	if attempts == 1 {
		if err := t.store.Expire(ctx, key, t.window); err != nil {
			return fmt.Errorf("expire failed logins: %w", err)
		}
	}

	if attempts >= int64(t.maxAttempts) {
		if err := t.store.Set(ctx, lockKey(email), "1", t.window); err != nil {
			return fmt.Errorf("lock login: %w", err)
		}
		return t.store.Delete(ctx, key)
	}

	return nil
}

// Reset clears the counter and any lock for email.
func (t *LoginThrottle) Reset(ctx context.Context, email string) error {
	return t.store.Delete(ctx, attemptKey(email), lockKey(email))
}
