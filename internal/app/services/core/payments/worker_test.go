package payments

import (
	"context"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/app/services/core/fakes"
	"medibook-service/internal/pkg/constvars"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockAppointmentUsecase struct {
	contracts.AppointmentUsecase
	mock.Mock
}

func (m *mockAppointmentUsecase) RepairSlotLedgers(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func TestWorker_RunOnce(t *testing.T) {
	f := newPaymentFixture(t)
	f.config.Worker.RepairLedgerOnEachCycle = true
	f.storeIntent(t, constvars.PaymentProviderStripe, "cs_1", f.appointmentID, time.Now().Add(-time.Hour))
	f.stripe.SetVerification("cs_1", constvars.PaymentStatusCompleted, f.appointmentID)

	locker := fakes.NewLocker()
	appointmentUsecase := &mockAppointmentUsecase{}
	appointmentUsecase.On("RepairSlotLedgers", mock.Anything).Return(2, nil).Once()

	worker := NewWorker(zap.NewNop(), f.config, locker, f.usecase, appointmentUsecase)
	worker.RunOnce(context.Background())

	appointmentUsecase.AssertExpectations(t)
	assert.Equal(t, constvars.PaymentIntentStatusCompleted, f.intentStatus(t, "cs_1"))
	assert.False(t, locker.Held(constvars.RedisKeyWorkerLeaderLockKey))
}

func TestWorker_RunOnce_NotLeader(t *testing.T) {
	f := newPaymentFixture(t)
	f.config.Worker.RepairLedgerOnEachCycle = true
	f.storeIntent(t, constvars.PaymentProviderStripe, "cs_1", f.appointmentID, time.Now().Add(-time.Hour))
	f.stripe.SetVerification("cs_1", constvars.PaymentStatusCompleted, f.appointmentID)

	locker := fakes.NewLocker()
	acquired, _, err := locker.TryLock(context.Background(), constvars.RedisKeyWorkerLeaderLockKey, time.Minute)
	require.NoError(t, err)
	require.True(t, acquired)

	appointmentUsecase := &mockAppointmentUsecase{}
	worker := NewWorker(zap.NewNop(), f.config, locker, f.usecase, appointmentUsecase)
	worker.RunOnce(context.Background())

	appointmentUsecase.AssertNotCalled(t, "RepairSlotLedgers", mock.Anything)
	assert.Zero(t, f.stripe.VerifyCalls)
	assert.Equal(t, constvars.PaymentIntentStatusPending, f.intentStatus(t, "cs_1"))
}

func TestWorker_StartStop(t *testing.T) {
	f := newPaymentFixture(t)
	f.config.Worker.CronSpec = "not a cron spec"

	worker := NewWorker(zap.NewNop(), f.config, fakes.NewLocker(), f.usecase, &mockAppointmentUsecase{})
	worker.Start(context.Background())
	assert.Len(t, worker.cron.Entries(), 1)
	worker.Stop()
}
