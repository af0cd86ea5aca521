package repositories

import (
	"context"
	"fmt"
	"time"

	"personrefresh/src/infra/redis"

	"github.com/google/uuid"
)

const batchLeaseKey = "refresh:batch:lease"

// BatchLease guarantees that only one process runs a refresh batch at a time.
// The holder renews it while the batch runs; it expires on its own after ttl
// if the holder dies mid batch.
type BatchLease struct {
	redisClient *redis.RedisClient
	owner       string
	ttl         time.Duration
}

func NewBatchLease(redisClient *redis.RedisClient, ttl time.Duration) *BatchLease {
	return &BatchLease{
		redisClient: redisClient,
		owner:       uuid.NewString(),
		ttl:         ttl,
	}
}

func (l *BatchLease) Acquire(ctx context.Context) (bool, error) {
	acquired, err := l.redisClient.SetIfAbsent(ctx, batchLeaseKey, l.owner, l.ttl)
	if err != nil {
		return false, fmt.Errorf("failed to acquire batch lease: %w", err)
	}
	return acquired, nil
}

// Renew pushes the lease expiry ttl into the future. It reports false when the
// lease is no longer held by this owner.
func (l *BatchLease) Renew(ctx context.Context) (bool, error) {
	renewed, err := l.redisClient.ExpireIfValue(ctx, batchLeaseKey, l.owner, l.ttl)
	if err != nil {
		return false, fmt.Errorf("failed to renew batch lease: %w", err)
	}
	return renewed, nil
}

// RenewInterval is how often a holder should call Renew: a third of the ttl,
// so two missed renewals still leave the lease alive.
func (l *BatchLease) RenewInterval() time.Duration {
	return l.ttl / 3
}

func (l *BatchLease) Release(ctx context.Context) error {
	if _, err := l.redisClient.DeleteIfValue(ctx, batchLeaseKey, l.owner); err != nil {
		return fmt.Errorf("failed to release batch lease: %w", err)
	}
	return nil
}
