package jwt

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "session:revoked:"

// Revoker keeps a denylist of session ids until their natural expiry. Without
// redis it accepts every session, which only costs logout its teeth.
type Revoker struct {
	redis *redis.Client
}

func NewRevoker(client *redis.Client) *Revoker {
	return &Revoker{redis: client}
}

func (r *Revoker) Revoke(ctx context.Context, sessionID string, expiresAt time.Time) error {
	if r == nil || r.redis == nil {
		return nil
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return r.redis.Set(ctx, revokedKeyPrefix+sessionID, "1", ttl).Err()
}

func (r *Revoker) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	if r == nil || r.redis == nil {
		return false, nil
	}
	n, err := r.redis.Exists(ctx, revokedKeyPrefix+sessionID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
