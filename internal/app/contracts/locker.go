package contracts

import (
	"context"
	"time"
)

type LockerService interface {
	TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error)
	// LockWithRetry keeps calling TryLock with growing backoff until the lock is
	// acquired, wait has elapsed or ctx is done.
	LockWithRetry(ctx context.Context, key string, expiration, wait, initialBackoff time.Duration) (bool, string, error)
	Unlock(ctx context.Context, key, lockValue string) error
	// Refresh extends the TTL of a lock if owned by lockValue
	Refresh(ctx context.Context, key, lockValue string, expiration time.Duration) error
}
