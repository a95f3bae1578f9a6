package fakes

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Locker is a process-local stand-in for the Redis lock. Expiration is ignored.
type Locker struct {
	mu   sync.Mutex
	held map[string]string
	// TryLockErr, when set, is returned by every acquisition attempt.
	TryLockErr error
}

func NewLocker() *Locker {
	return &Locker{held: map[string]string{}}
}

func (l *Locker) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	if err := ctx.Err(); err != nil {
		return false, "", err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.TryLockErr != nil {
		return false, "", l.TryLockErr
	}
	if _, ok := l.held[key]; ok {
		return false, "", nil
	}
	value := uuid.NewString()
	l.held[key] = value
	return true, value, nil
}

func (l *Locker) LockWithRetry(ctx context.Context, key string, expiration, wait, initialBackoff time.Duration) (bool, string, error) {
	deadline := time.Now().Add(wait)
	for {
		acquired, value, err := l.TryLock(ctx, key, expiration)
		if err != nil || acquired {
			return acquired, value, err
		}
		if time.Now().After(deadline) {
			return false, "", nil
		}
		select {
		case <-ctx.Done():
			return false, "", ctx.Err()
		case <-time.After(time.Millisecond):
		}
	}
}

func (l *Locker) Unlock(ctx context.Context, key, lockValue string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[key] != lockValue {
		return errors.New("lock not owned by this client")
	}
	delete(l.held, key)
	return nil
}

func (l *Locker) Refresh(ctx context.Context, key, lockValue string, expiration time.Duration) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[key] != lockValue {
		return errors.New("lock not owned by this client")
	}
	return nil
}

// Held reports whether key is currently locked.
func (l *Locker) Held(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.held[key]
	return ok
}
