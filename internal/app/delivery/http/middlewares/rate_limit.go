package middlewares

import (
	"errors"
	"fmt"
	"math"
	"medibook-service/internal/app/models"
	"medibook-service/internal/app/services/shared/ratelimiter"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/exceptions"
	"medibook-service/internal/pkg/utils"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/httprate"
	"go.uber.org/zap"
)

// GlobalRateLimit caps every client IP at App.MaxRequests per second.
func (m *Middlewares) GlobalRateLimit() func(next http.Handler) http.Handler {
	return httprate.Limit(
		m.InternalConfig.App.MaxRequests,
		time.Second,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTooManyRequests(errors.New("global request rate exceeded")))
		}),
	)
}

// LoginRateLimiter guards the credential endpoints against brute force.
func (m *Middlewares) LoginRateLimiter() *RateLimiter {
	return NewRateLimiter(m.Log, m.InternalConfig.App.LoginAttemptsPerMinute, time.Minute, 5*time.Minute)
}

// LimitPerSubject caps how often one authenticated subject may hit the wrapped
// routes per minute. It must run after Authenticate. Redis failures let the
// request through.
func (m *Middlewares) LimitPerSubject(group string, quota int) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(*models.Session)
			if m.SubjectLimiter == nil || !ok || session == nil {
				next.ServeHTTP(w, r)
				return
			}

			out, err := m.SubjectLimiter.Allow(r.Context(), ratelimiter.AllowInput{
				Group:   group,
				Subject: session.SubjectID,
				Window:  time.Minute,
				Quota:   quota,
			})
			if err != nil {
				m.Log.Warn("Middlewares.LimitPerSubject limiter unavailable",
					zap.String("group", group),
					zap.Error(err),
				)
				next.ServeHTTP(w, r)
				return
			}

			if !out.Allowed {
				retryAfter := int(math.Ceil(out.RetryAfter.Seconds()))
				w.Header().Set(constvars.HeaderRetryAfter, strconv.Itoa(retryAfter))
				utils.BuildErrorResponse(m.Log, w, exceptions.ErrTooManyRequests(
					fmt.Errorf("%s quota exceeded for subject %s", group, session.SubjectID),
				))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
