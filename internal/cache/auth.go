package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/owely/owely/internal/model"
)

const (
	// authCachePrefix is the Redis key prefix for auth context cache.
	authCachePrefix = "auth:ctx:"
	// authUserIndexPrefix keys the per-user set of cached fingerprints,
	// used to invalidate all of a user's entries at once.
	authUserIndexPrefix = "auth:user:"
	// authCacheTTL is the time-to-live for cached auth contexts.
	// Kept well below the token lifetime so revocations converge quickly.
	authCacheTTL = 5 * time.Minute
)

// cachedAuthContext represents auth context stored in Redis.
type cachedAuthContext struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// GetAuthContext retrieves a cached auth context by token fingerprint.
// Returns nil on a cache miss.
func (c *Cache) GetAuthContext(ctx context.Context, fingerprint string) (*model.AuthContext, error) {
	key := authCachePrefix + fingerprint

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		// Cache miss is not an error
		return nil, nil //nolint:nilerr
	}

	var cached cachedAuthContext
	if err := json.Unmarshal(data, &cached); err != nil {
		// Corrupted cache entry - treat as miss
		return nil, nil //nolint:nilerr
	}

	return &model.AuthContext{
		UserID: cached.UserID,
		Email:  cached.Email,
		Name:   cached.Name,
	}, nil
}

// SetAuthContext caches an auth context and records the fingerprint in the
// user's index set so InvalidateUser can find it later.
func (c *Cache) SetAuthContext(ctx context.Context, fingerprint string, auth *model.AuthContext) error {
	key := authCachePrefix + fingerprint

	data, err := json.Marshal(cachedAuthContext{
		UserID: auth.UserID,
		Email:  auth.Email,
		Name:   auth.Name,
	})
	if err != nil {
		return fmt.Errorf("marshal auth context: %w", err)
	}

	indexKey := authUserIndexPrefix + strconv.FormatInt(auth.UserID, 10)

	pipe := c.client.Pipeline()
	pipe.Set(ctx, key, data, authCacheTTL)
	pipe.SAdd(ctx, indexKey, fingerprint)
	pipe.Expire(ctx, indexKey, authCacheTTL)
	_, err = pipe.Exec(ctx)
	return err
}

// DeleteAuthContext removes a single cached auth context.
func (c *Cache) DeleteAuthContext(ctx context.Context, fingerprint string) error {
	return c.client.Del(ctx, authCachePrefix+fingerprint).Err()
}

// InvalidateUser removes every cached auth context for a user.
// Called on password change and account deletion.
func (c *Cache) InvalidateUser(ctx context.Context, userID int64) error {
	indexKey := authUserIndexPrefix + strconv.FormatInt(userID, 10)

	fingerprints, err := c.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return fmt.Errorf("read auth index: %w", err)
	}

	keys := make([]string, 0, len(fingerprints)+1)
	for _, fp := range fingerprints {
		keys = append(keys, authCachePrefix+fp)
	}
	keys = append(keys, indexKey)

	return c.client.Del(ctx, keys...).Err()
}
