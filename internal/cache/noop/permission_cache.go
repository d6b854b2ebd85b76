// Package noop provides a PermissionCache that never stores anything. It is
// used when Redis is not configured.
package noop

import (
	"context"

	"github.com/google/uuid"

	"hejazi/internal/permission"
	"hejazi/internal/port"
)

type permissionCache struct{}

// NewPermissionCache returns a cache that always misses.
func NewPermissionCache() port.PermissionCache {
	return permissionCache{}
}

func (permissionCache) Get(context.Context, uuid.UUID, uuid.UUID) ([]permission.Grant, bool, error) {
	return nil, false, nil
}

func (permissionCache) Set(context.Context, uuid.UUID, uuid.UUID, []permission.Grant) error {
	return nil
}

func (permissionCache) InvalidateUser(context.Context, uuid.UUID, uuid.UUID) error { return nil }

func (permissionCache) InvalidateTenant(context.Context, uuid.UUID) error { return nil }
