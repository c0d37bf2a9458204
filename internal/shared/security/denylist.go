package security

import (
	"context"
	"time"

	"research-blog-backend/pkg/kvstore"
)

const revokedTokenPrefix = "revoked_token:"

// TokenDenylist remembers token ids that were logged out before expiry.
// Entries expire together with the token they block.
type TokenDenylist struct {
	store kvstore.Store
}

func NewTokenDenylist(store kvstore.Store) *TokenDenylist {
	return &TokenDenylist{store: store}
}

// Revoke blocks jti for ttl. Tokens that are already expired need no entry.
func (d *TokenDenylist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if jti == "" || ttl <= 0 {
		return nil
	}
	return d.store.Set(ctx, revokedTokenPrefix+jti, "1", ttl)
}

// IsRevoked reports whether jti was revoked.
func (d *TokenDenylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	return d.store.Exists(ctx, revokedTokenPrefix+jti)
}
