package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const failureStreakPrefix = "comicreader:failstreak:"

// FailureStreakRepoImpl provides a concrete implementation for the FailureStreakRepository interface using Redis.
type FailureStreakRepoImpl struct {
	client *redis.Client
	ttl    time.Duration
}

// NewFailureStreakRepo creates a new instance of FailureStreakRepoImpl.
// A streak expires ttl after its most recent failure.
func NewFailureStreakRepo(client *redis.Client, ttl time.Duration) *FailureStreakRepoImpl {
	return &FailureStreakRepoImpl{client: client, ttl: ttl}
}

func (r *FailureStreakRepoImpl) generateKey(target string) string {
	return fmt.Sprintf("%s%s", failureStreakPrefix, target)
}

// Increment bumps the streak and refreshes its expiry in one round trip.
func (r *FailureStreakRepoImpl) Increment(ctx context.Context, target string) (int64, error) {
	key := r.generateKey(target)

	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, r.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

// Reset removes the streak.
func (r *FailureStreakRepoImpl) Reset(ctx context.Context, target string) error {
	return r.client.Del(ctx, r.generateKey(target)).Err()
}

// Get returns the current streak, zero when the key is absent.
func (r *FailureStreakRepoImpl) Get(ctx context.Context, target string) (int64, error) {
	n, err := r.client.Get(ctx, r.generateKey(target)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return n, err
}
