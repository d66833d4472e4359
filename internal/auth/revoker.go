package auth

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

const revokedKeyPrefix = "fittrack-revoked-token||"

// Revoker remembers logged out tokens until they would expire anyway.
type Revoker struct {
	redisClient *redis.Client
}

func NewRevoker(redisClient *redis.Client) *Revoker {
	return &Revoker{
		redisClient: redisClient,
	}
}

func (r *Revoker) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if tokenID == "" {
		return errors.New("token id empty")
	}
	if ttl <= 0 {
		// already expired, nothing to remember
		return nil
	}
	return r.redisClient.Set(ctx, revokedKeyPrefix+tokenID, 1, ttl).Err()
}

func (r *Revoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := r.redisClient.Get(ctx, revokedKeyPrefix+tokenID).Err()
	if err == nil {
		return true, nil
	}
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	return false, err
}
