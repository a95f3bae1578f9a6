package appointments

import (
	"context"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/app/models"
	"medibook-service/internal/app/services/core/slot"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/exceptions"
	"time"

	"go.uber.org/zap"
)

const (
	releaseAttempts = 3
	// slotCleanupTimeout bounds ledger writes that must finish even when the
	// caller has gone away.
	slotCleanupTimeout = 10 * time.Second
)

// cleanupContext keeps the caller's values but not its cancellation.
func cleanupContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), slotCleanupTimeout)
}

// releaseSlot frees the appointment's label in its doctor's ledger, retrying when
// the ledger was rewritten between read and write. It runs to completion once the
// appointment itself has been cancelled or deleted.
func (uc *appointmentUsecase) releaseSlot(ctx context.Context, appointment *models.Appointment) error {
	ctx, cancel := cleanupContext(ctx)
	defer cancel()

	return uc.withDoctorLock(ctx, appointment.DocID, func() error {
		var err error
		for attempt := 0; attempt < releaseAttempts; attempt++ {
			var doctor *models.Doctor
			doctor, err = uc.DoctorRepository.FindByID(ctx, appointment.DocID)
			if err != nil {
				return err
			}
			if doctor == nil {
				return nil
			}

			slots := doctor.SlotsBooked.Clone()
			if !slot.Release(slots, appointment.SlotDate, appointment.SlotTime) {
				return nil
			}

			err = uc.DoctorRepository.UpdateSlotsBooked(ctx, doctor.ID, slots, doctor.Version)
			if err == nil || !exceptions.IsKind(err, exceptions.KindConflict) {
				return err
			}
		}
		return err
	})
}

func (uc *appointmentUsecase) RepairSlotLedgers(ctx context.Context) (int, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.RepairSlotLedgers called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	doctors, err := uc.DoctorRepository.FindAll(ctx, contracts.DoctorFilter{})
	if err != nil {
		return 0, err
	}

	repaired := 0
	for i := range doctors {
		if ctx.Err() != nil {
			return repaired, ctx.Err()
		}

		doctorID := doctors[i].ID
		var rewritten bool
		err := uc.withDoctorLock(ctx, doctorID, func() error {
			var err error
			rewritten, err = uc.repairDoctorLedger(ctx, doctorID)
			return err
		})
		if err != nil {
			uc.Log.Warn("appointmentUsecase.RepairSlotLedgers skipped doctor",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingDoctorIDKey, doctorID),
				zap.Error(err),
			)
			continue
		}
		if rewritten {
			repaired++
		}
	}

	uc.Log.Info("appointmentUsecase.RepairSlotLedgers finished",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, repaired),
	)
	return repaired, nil
}

// repairDoctorLedger must run under the doctor lock.
func (uc *appointmentUsecase) repairDoctorLedger(ctx context.Context, doctorID string) (bool, error) {
	doctor, err := uc.DoctorRepository.FindByID(ctx, doctorID)
	if err != nil || doctor == nil {
		return false, err
	}

	active, err := uc.AppointmentRepository.FindActiveByDoctorID(ctx, doctorID)
	if err != nil {
		return false, err
	}

	expected := slot.Rebuild(active)
	if expected.Equal(doctor.SlotsBooked) {
		return false, nil
	}

	uc.Log.Warn("appointmentUsecase.repairDoctorLedger rewriting drifted ledger",
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
		zap.Int64(constvars.LoggingSlotVersionKey, doctor.Version),
	)
	if err := uc.DoctorRepository.UpdateSlotsBooked(ctx, doctorID, expected, doctor.Version); err != nil {
		return false, err
	}
	return true, nil
}
