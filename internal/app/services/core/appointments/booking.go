package appointments

import (
	"context"
	"fmt"
	"medibook-service/internal/app/models"
	"medibook-service/internal/app/services/core/slot"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/exceptions"
	"time"

	"go.uber.org/zap"
)

func (uc *appointmentUsecase) BookAppointment(ctx context.Context, session *models.Session, request *requests.BookAppointment) (*models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.BookAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, request.DoctorID),
		zap.String(constvars.LoggingSlotDateKey, request.SlotDate),
		zap.String(constvars.LoggingSlotTimeKey, request.SlotTime),
	)

	if !session.IsPatient() {
		return nil, exceptions.ErrRoleNotAllowed(nil, session.Role, "book", "appointments")
	}
	if _, err := slot.ParseDateKey(request.SlotDate, time.UTC); err != nil {
		return nil, exceptions.ErrInvalidDateKey(err, request.SlotDate)
	}

	patient, err := uc.PatientRepository.FindByID(ctx, session.SubjectID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, exceptions.ErrPatientNotFound(nil, session.SubjectID)
	}

	var booked *models.Appointment
	err = uc.withDoctorLock(ctx, request.DoctorID, func() error {
		booked, err = uc.reserveAndCreate(ctx, patient, request)
		return err
	})
	if err != nil {
		uc.Log.Error("appointmentUsecase.BookAppointment failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDoctorIDKey, request.DoctorID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.publish(ctx, constvars.EventAppointmentBooked, booked)
	uc.Log.Info("appointmentUsecase.BookAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, booked.ID),
		zap.String(constvars.LoggingPatientIDKey, patient.ID),
	)
	return booked, nil
}

// reserveAndCreate must run under the doctor lock.
func (uc *appointmentUsecase) reserveAndCreate(ctx context.Context, patient *models.Patient, request *requests.BookAppointment) (*models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	doctor, err := uc.DoctorRepository.FindByID(ctx, request.DoctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil || !doctor.Bookable() {
		return nil, exceptions.ErrDoctorNotFound(nil, request.DoctorID)
	}
	if !doctor.Available {
		return nil, exceptions.ErrDoctorUnavailable(nil, request.DoctorID)
	}

	reserved, err := slot.Reserve(doctor.SlotsBooked.Clone(), request.SlotDate, request.SlotTime)
	if err != nil {
		return nil, exceptions.ErrSlotAlreadyBooked(err, request.SlotDate, request.SlotTime)
	}
	if err := uc.DoctorRepository.UpdateSlotsBooked(ctx, doctor.ID, reserved, doctor.Version); err != nil {
		return nil, err
	}

	appointment := &models.Appointment{
		UserID:   patient.ID,
		DocID:    doctor.ID,
		SlotDate: request.SlotDate,
		SlotTime: request.SlotTime,
		UserData: patient.Snapshot(),
		DocData:  doctor.Snapshot(),
		Amount:   doctor.Fees,
		Date:     time.Now().UnixMilli(),
	}
	appointmentID, err := uc.AppointmentRepository.CreateAppointment(ctx, appointment)
	if err != nil {
		// Another active appointment already owns the slot, so the label stays.
		if exceptions.IsKind(err, exceptions.KindConflict) {
			return nil, err
		}

		rollbackCtx, cancel := cleanupContext(ctx)
		defer cancel()
		slot.Release(reserved, request.SlotDate, request.SlotTime)
		if rollbackErr := uc.DoctorRepository.UpdateSlotsBooked(rollbackCtx, doctor.ID, reserved, doctor.Version+1); rollbackErr != nil {
			uc.Log.Error("appointmentUsecase.reserveAndCreate rollback failed, slot left held",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingDoctorIDKey, doctor.ID),
				zap.Error(rollbackErr),
			)
		}
		return nil, err
	}

	appointment.ID = appointmentID
	return appointment, nil
}

// withDoctorLock runs fn while holding the booking lock of doctorID. The lock is
// always released, and an unlock failure is only logged.
func (uc *appointmentUsecase) withDoctorLock(ctx context.Context, doctorID string, fn func() error) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	lockKey := fmt.Sprintf(constvars.RedisKeyBookingLockFormat, doctorID)
	booking := uc.InternalConfig.Booking

	acquired, lockValue, err := uc.LockerService.LockWithRetry(ctx, lockKey,
		time.Duration(booking.LockTTLInSeconds)*time.Second,
		time.Duration(booking.LockWaitInMilliseconds)*time.Millisecond,
		time.Duration(booking.LockRetryInMilliseconds)*time.Millisecond,
	)
	if err != nil {
		return err
	}
	if !acquired {
		return exceptions.ErrBookingBusy(nil, doctorID)
	}
	defer func() {
		if err := uc.LockerService.Unlock(context.WithoutCancel(ctx), lockKey, lockValue); err != nil {
			uc.Log.Warn("appointmentUsecase.withDoctorLock unlock failed",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingRedisKey, lockKey),
				zap.Error(err),
			)
		}
	}()

	return fn()
}
