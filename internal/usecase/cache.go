package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Cache is the slice of the Redis cache the usecases need. A nil-safe
// implementation may degrade every call to a no-op.
type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	InvalidateReadiness(ctx context.Context, userID uuid.UUID) error
}
