package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"hejazi/internal/config"
	"hejazi/internal/permission"
	"hejazi/internal/port"
)

// PermissionCache stores resolved grants as JSON. Every user key embeds the
// tenant generation, so bumping the generation drops the whole tenant.
type PermissionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewClient connects to Redis and pings it.
func NewClient(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("pinging redis at %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// NewPermissionCache wraps an existing client.
func NewPermissionCache(client *redis.Client, ttl time.Duration) *PermissionCache {
	return &PermissionCache{client: client, ttl: ttl}
}

func generationKey(tenantID uuid.UUID) string {
	return "perm:" + tenantID.String() + ":gen"
}

func userKey(tenantID, userID uuid.UUID, gen int64) string {
	return fmt.Sprintf("perm:%s:%d:%s", tenantID, gen, userID)
}

func (c *PermissionCache) generation(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey(tenantID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *PermissionCache) Get(ctx context.Context, tenantID, userID uuid.UUID) ([]permission.Grant, bool, error) {
	gen, err := c.generation(ctx, tenantID)
	if err != nil {
		return nil, false, fmt.Errorf("permissionCache.Get generation: %w", err)
	}
	raw, err := c.client.Get(ctx, userKey(tenantID, userID, gen)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("permissionCache.Get: %w", err)
	}
	var grants []permission.Grant
	if err := json.Unmarshal(raw, &grants); err != nil {
		// A corrupt entry is treated as a miss and overwritten on the next Set.
		return nil, false, nil
	}
	return grants, true, nil
}

func (c *PermissionCache) Set(ctx context.Context, tenantID, userID uuid.UUID, grants []permission.Grant) error {
	gen, err := c.generation(ctx, tenantID)
	if err != nil {
		return fmt.Errorf("permissionCache.Set generation: %w", err)
	}
	raw, err := json.Marshal(grants)
	if err != nil {
		return fmt.Errorf("permissionCache.Set marshal: %w", err)
	}
	if err := c.client.Set(ctx, userKey(tenantID, userID, gen), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("permissionCache.Set: %w", err)
	}
	return nil
}

func (c *PermissionCache) InvalidateUser(ctx context.Context, tenantID, userID uuid.UUID) error {
	gen, err := c.generation(ctx, tenantID)
	if err != nil {
		return fmt.Errorf("permissionCache.InvalidateUser generation: %w", err)
	}
	if err := c.client.Del(ctx, userKey(tenantID, userID, gen)).Err(); err != nil {
		return fmt.Errorf("permissionCache.InvalidateUser: %w", err)
	}
	return nil
}

// InvalidateTenant bumps the generation. Old entries expire through their TTL.
func (c *PermissionCache) InvalidateTenant(ctx context.Context, tenantID uuid.UUID) error {
	if err := c.client.Incr(ctx, generationKey(tenantID)).Err(); err != nil {
		return fmt.Errorf("permissionCache.InvalidateTenant: %w", err)
	}
	return nil
}

var _ port.PermissionCache = (*PermissionCache)(nil)
