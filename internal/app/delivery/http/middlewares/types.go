package middlewares

import (
	"medibook-service/internal/app/config"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/app/services/shared/ratelimiter"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

type Middlewares struct {
	Log            *zap.Logger
	SessionService contracts.SessionService
	Enforcer       *casbin.Enforcer
	InternalConfig *config.InternalConfig
	// SubjectLimiter is optional. When nil, per-subject quotas are not applied.
	SubjectLimiter *ratelimiter.SubjectLimiter
}

func NewMiddlewares(logger *zap.Logger, sessionService contracts.SessionService, enforcer *casbin.Enforcer, internalConfig *config.InternalConfig) *Middlewares {
	return &Middlewares{
		Log:            logger,
		SessionService: sessionService,
		Enforcer:       enforcer,
		InternalConfig: internalConfig,
	}
}

func (m *Middlewares) WithSubjectLimiter(limiter *ratelimiter.SubjectLimiter) *Middlewares {
	m.SubjectLimiter = limiter
	return m
}
