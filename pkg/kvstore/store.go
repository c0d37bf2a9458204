package kvstore

import (
	"context"
	"time"
)

// Store is the short-lived key/value state used by the auth layer
// (revoked token ids, failed login counters). It is not a read cache:
// nothing in Store is ever a copy of database rows.
type Store interface {
	// Set stores value under key for ttl. A zero ttl keeps the key until deleted.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	// Exists reports whether key is present.
	Exists(ctx context.Context, key string) (bool, error)

	// Delete removes keys. Missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error

	// Increment atomically adds one to the counter at key and returns the new value.
	Increment(ctx context.Context, key string) (int64, error)

	// Expire sets a ttl on an existing key.
	Expire(ctx context.Context, key string, ttl time.Duration) error

	// TTL returns the remaining lifetime of key.
	TTL(ctx context.Context, key string) (time.Duration, error)

	// Ping checks the connection.
	Ping(ctx context.Context) error
}
