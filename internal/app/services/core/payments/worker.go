package payments

import (
	"context"
	"medibook-service/internal/app/config"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/utils"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	fallbackCronSpec = "@every 5m"
	defaultLeaderTTL = 2 * time.Minute
)

// Worker periodically reconciles stale payment intents and repairs slot ledgers.
// Only the instance holding the leader lock does work in a given cycle.
type Worker struct {
	log                *zap.Logger
	cfg                *config.InternalConfig
	locker             contracts.LockerService
	paymentUsecase     contracts.PaymentUsecase
	appointmentUsecase contracts.AppointmentUsecase
	cron               *cron.Cron
	cancel             context.CancelFunc
}

func NewWorker(log *zap.Logger, cfg *config.InternalConfig, locker contracts.LockerService, paymentUsecase contracts.PaymentUsecase, appointmentUsecase contracts.AppointmentUsecase) *Worker {
	return &Worker{
		log:                log,
		cfg:                cfg,
		locker:             locker,
		paymentUsecase:     paymentUsecase,
		appointmentUsecase: appointmentUsecase,
	}
}

func (w *Worker) Start(ctx context.Context) {
	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	c := cron.New()
	if _, err := c.AddFunc(w.cfg.Worker.CronSpec, func() { w.RunOnce(runCtx) }); err != nil {
		w.log.Warn("payments.worker: invalid cron spec, falling back",
			zap.String("cron_spec", w.cfg.Worker.CronSpec),
			zap.String("fallback", fallbackCronSpec),
			zap.Error(err),
		)
		c = cron.New()
		_, _ = c.AddFunc(fallbackCronSpec, func() { w.RunOnce(runCtx) })
	}
	c.Start()
	w.cron = c
}

// Stop cancels in-flight cycles and waits for them to return.
func (w *Worker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	if w.cron != nil {
		<-w.cron.Stop().Done()
	}
}

// RunOnce performs a single cycle if this instance becomes leader.
func (w *Worker) RunOnce(ctx context.Context) {
	ctx = context.WithValue(ctx, constvars.CONTEXT_REQUEST_ID_KEY, utils.GenerateRequestID())
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	ttl := time.Duration(w.cfg.Worker.LeaderLockTTLInSeconds) * time.Second
	if ttl <= 0 {
		ttl = defaultLeaderTTL
	}
	acquired, token, err := w.locker.TryLock(ctx, constvars.RedisKeyWorkerLeaderLockKey, ttl)
	if err != nil {
		w.log.Warn("payments.worker: leader lock attempt failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return
	}
	if !acquired {
		w.log.Info("payments.worker: leader lock held by another instance",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		return
	}
	defer func() {
		if err := w.locker.Unlock(context.WithoutCancel(ctx), constvars.RedisKeyWorkerLeaderLockKey, token); err != nil {
			w.log.Warn("payments.worker: leader unlock failed",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
		}
	}()

	refreshCtx, cancelRefresh := context.WithCancel(ctx)
	defer cancelRefresh()
	go w.refreshLeadership(refreshCtx, token, ttl)

	reconciled, err := w.paymentUsecase.SweepPendingPayments(ctx)
	if err != nil {
		w.log.Warn("payments.worker: pending payment sweep failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}

	repaired := 0
	if w.cfg.Worker.RepairLedgerOnEachCycle {
		repaired, err = w.appointmentUsecase.RepairSlotLedgers(ctx)
		if err != nil {
			w.log.Warn("payments.worker: slot ledger repair failed",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
		}
	}

	w.log.Info("payments.worker: cycle finished",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int("reconciled", reconciled),
		zap.Int("ledgers_repaired", repaired),
	)
}

func (w *Worker) refreshLeadership(ctx context.Context, token string, ttl time.Duration) {
	tick := time.NewTicker(ttl / 2)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			if err := w.locker.Refresh(ctx, constvars.RedisKeyWorkerLeaderLockKey, token, ttl); err != nil {
				w.log.Warn("payments.worker: leader lock refresh failed", zap.Error(err))
			}
		}
	}
}
