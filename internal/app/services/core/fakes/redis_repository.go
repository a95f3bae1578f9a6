package fakes

import (
	"context"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

// RedisRepository stores JSON encoded values the way the real repository does.
// Expiration is ignored.
type RedisRepository struct {
	mu       sync.Mutex
	data     map[string]string
	counters map[string]int64
}

func NewRedisRepository() *RedisRepository {
	return &RedisRepository{data: map[string]string{}, counters: map[string]int64{}}
}

func encode(value interface{}) string {
	raw, _ := json.Marshal(value)
	return string(raw)
}

func (r *RedisRepository) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, key)
	return nil
}

func (r *RedisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[key] = encode(value)
	return nil
}

func (r *RedisRepository) Get(ctx context.Context, key string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.data[key], nil
}

func (r *RedisRepository) Expire(ctx context.Context, key string, exp time.Duration) error {
	return nil
}

func (r *RedisRepository) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.data[key]; exists {
		return false, nil
	}
	r.data[key] = encode(value)
	return true, nil
}

func (r *RedisRepository) CompareAndDelete(ctx context.Context, key string, value interface{}) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if stored, ok := r.data[key]; !ok || stored != encode(value) {
		return false, nil
	}
	delete(r.data, key)
	return true, nil
}

func (r *RedisRepository) CompareAndExpire(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.data[key]
	return ok && stored == encode(value), nil
}

func (r *RedisRepository) IncrementWithTTL(ctx context.Context, key string, exp time.Duration) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counters[key]++
	return r.counters[key], nil
}
