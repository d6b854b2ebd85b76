package port

import (
	"context"
	"io"
	"time"
)

// PutObjectInput describes an object written to the media bucket.
type PutObjectInput struct {
	Key         string
	Body        io.Reader
	ContentType string
	Size        int64
}

// ObjectStorage stores profile media (avatars and signatures) in a single
// bucket chosen at construction.
type ObjectStorage interface {
	Put(ctx context.Context, input PutObjectInput) error
	Delete(ctx context.Context, key string) error
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}
