package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/nimish-23/user-account-service/internal/logger"
)

// TokenRevocationRepository holds revoked token ids in Redis.
// Entries expire together with the token itself, so the set stays bounded.
type TokenRevocationRepository struct {
	client *redis.Client
}

// NewTokenRevocationRepository creates a new repository instance.
func NewTokenRevocationRepository(client *redis.Client) *TokenRevocationRepository {
	return &TokenRevocationRepository{client: client}
}

func revocationKey(tokenID uuid.UUID) string {
	return fmt.Sprintf("revoked_token:%s", tokenID)
}

// Revoke denylists a token id for the remainder of its lifetime.
// A non-positive ttl means the token is already expired and nothing is stored.
func (r *TokenRevocationRepository) Revoke(ctx context.Context, tokenID uuid.UUID, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	key := revocationKey(tokenID)
	err := r.client.Set(ctx, key, "1", ttl).Err()

	logger.Log.Infow("token revoked",
		"key", key,
		"ttl", ttl,
		"error", err,
	)

	return err
}

// IsRevoked reports whether a token id is in the denylist.
func (r *TokenRevocationRepository) IsRevoked(ctx context.Context, tokenID uuid.UUID) (bool, error) {
	key := revocationKey(tokenID)

	err := r.client.Get(ctx, key).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		logger.Log.Errorw("revocation lookup failed", "key", key, "error", err)
		return false, err
	}
	return true, nil
}
