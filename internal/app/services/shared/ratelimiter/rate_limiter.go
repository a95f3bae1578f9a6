package ratelimiter

import (
	"context"
	"fmt"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/pkg/constvars"
	"strings"
	"time"

	"go.uber.org/zap"
)

// SubjectLimiter is a fixed-window counter kept in Redis, so the quota holds
// across every instance serving the API.
type SubjectLimiter struct {
	redis contracts.RedisRepository
	log   *zap.Logger
	now   func() time.Time
}

func NewSubjectLimiter(redis contracts.RedisRepository, log *zap.Logger) *SubjectLimiter {
	return &SubjectLimiter{redis: redis, log: log, now: time.Now}
}

type AllowInput struct {
	// Group namespaces the counter, e.g. booking or payment.
	Group   string
	Subject string
	Window  time.Duration
	Quota   int
}

type AllowOutput struct {
	Allowed    bool
	RetryAfter time.Duration
}

// Allow counts one attempt for the subject in the current window. A quota of
// zero or less disables the limit.
func (l *SubjectLimiter) Allow(ctx context.Context, in AllowInput) (*AllowOutput, error) {
	if in.Quota <= 0 {
		return &AllowOutput{Allowed: true}, nil
	}

	window := in.Window
	if window < time.Second {
		window = time.Minute
	}
	group := strings.ToLower(strings.TrimSpace(in.Group))
	subject := strings.TrimSpace(in.Subject)
	if group == "" || subject == "" {
		return &AllowOutput{Allowed: false, RetryAfter: window}, nil
	}

	now := l.now().UTC()
	windowSec := int64(window / time.Second)
	windowID := now.Unix() / windowSec
	key := fmt.Sprintf(constvars.RedisKeyRateLimitFormat, group, subject, windowID)

	count, err := l.redis.IncrementWithTTL(ctx, key, window+time.Second)
	if err != nil {
		l.log.Error("SubjectLimiter.Allow increment failed",
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
		return nil, err
	}

	if count > int64(in.Quota) {
		nextWindow := time.Unix((windowID+1)*windowSec, 0)
		return &AllowOutput{Allowed: false, RetryAfter: nextWindow.Sub(now)}, nil
	}
	return &AllowOutput{Allowed: true}, nil
}
