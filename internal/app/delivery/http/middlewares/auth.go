package middlewares

import (
	"context"
	"errors"
	"fmt"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/exceptions"
	"medibook-service/internal/pkg/utils"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const sessionLookupTimeout = 10 * time.Second

// Authenticate resolves the bearer token into the session stored in Redis and
// attaches it to the request context.
func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get(constvars.HeaderAuthorization)
		if authHeader == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		sessionID, err := utils.ParseJWT(token, m.InternalConfig.JWT.Secret)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenInvalidOrExpired(err))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), sessionLookupTimeout)
		defer cancel()

		session, err := m.SessionService.GetSession(ctx, sessionID)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				utils.BuildErrorResponse(m.Log, w, exceptions.ErrServerDeadlineExceeded(err))
				return
			}
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		requestCtx := context.WithValue(r.Context(), constvars.CONTEXT_SESSION_DATA_KEY, session)
		next.ServeHTTP(w, r.WithContext(requestCtx))
	})
}

// Authorize checks the session role against the casbin policy for the request
// method and path. It must run after Authenticate.
func (m *Middlewares) Authorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := utils.GetRequestID(r.Context())
		session, ok := utils.GetSession(r.Context())
		if !ok {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrMissingSession(nil))
			return
		}

		path := m.policyPath(r.URL.Path)
		allowed, err := m.Enforcer.Enforce(session.Role, r.Method, path)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrRBACEnforce(err))
			return
		}

		if !allowed {
			utils.LogSecurityEvent(m.Log, "rbac_denied", requestID, "medium",
				append(utils.SessionFields(session),
					zap.String(constvars.LoggingMethodKey, r.Method),
					zap.String(constvars.LoggingEndpointKey, path),
				)...,
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrRoleNotAllowed(nil, session.Role, r.Method, path))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// policyPath strips the /{prefix}/{version} mount point so policies stay
// independent of where the API is served.
func (m *Middlewares) policyPath(path string) string {
	mount := fmt.Sprintf("/%s/%s", m.InternalConfig.App.EndpointPrefix, m.InternalConfig.App.Version)
	trimmed := strings.TrimSuffix(strings.TrimPrefix(path, mount), "/")
	if trimmed == "" {
		return "/"
	}
	return trimmed
}
