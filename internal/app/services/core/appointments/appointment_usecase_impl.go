package appointments

import (
	"context"
	"medibook-service/internal/app/config"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/exceptions"
	"time"

	"go.uber.org/zap"
)

type appointmentUsecase struct {
	AppointmentRepository contracts.AppointmentRepository
	DoctorRepository      contracts.DoctorRepository
	PatientRepository     contracts.PatientRepository
	LockerService         contracts.LockerService
	EventPublisher        contracts.EventPublisher
	InternalConfig        *config.InternalConfig
	Log                   *zap.Logger
}

func NewAppointmentUsecase(
	appointmentRepository contracts.AppointmentRepository,
	doctorRepository contracts.DoctorRepository,
	patientRepository contracts.PatientRepository,
	lockerService contracts.LockerService,
	eventPublisher contracts.EventPublisher,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.AppointmentUsecase {
	return &appointmentUsecase{
		AppointmentRepository: appointmentRepository,
		DoctorRepository:      doctorRepository,
		PatientRepository:     patientRepository,
		LockerService:         lockerService,
		EventPublisher:        eventPublisher,
		InternalConfig:        internalConfig,
		Log:                   logger,
	}
}

func (uc *appointmentUsecase) CancelAppointment(ctx context.Context, session *models.Session, appointmentID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.CancelAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	appointment, err := uc.findAppointment(ctx, appointmentID)
	if err != nil {
		return err
	}
	if !appointment.CanBeManagedBy(session) {
		return exceptions.ErrNotAuthorizedForAppointment(nil, session.SubjectID, session.Role, appointmentID)
	}
	if err := terminalStateError(appointment); err != nil {
		return err
	}

	changed, err := uc.AppointmentRepository.MarkCancelled(ctx, appointmentID)
	if err != nil {
		uc.Log.Error("appointmentUsecase.CancelAppointment error marking appointment cancelled",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
			zap.Error(err),
		)
		return err
	}
	if !changed {
		return uc.lostTransition(ctx, appointmentID)
	}

	if err := uc.releaseSlot(ctx, appointment); err != nil {
		uc.Log.Error("appointmentUsecase.CancelAppointment slot left held after cancellation",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
			zap.String(constvars.LoggingDoctorIDKey, appointment.DocID),
			zap.Error(err),
		)
	}

	uc.publish(ctx, constvars.EventAppointmentCancelled, appointment)
	uc.Log.Info("appointmentUsecase.CancelAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.String(constvars.LoggingRoleKey, session.Role),
	)
	return nil
}

func (uc *appointmentUsecase) CompleteAppointment(ctx context.Context, session *models.Session, appointmentID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.CompleteAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	appointment, err := uc.findAppointment(ctx, appointmentID)
	if err != nil {
		return err
	}
	if !session.IsDoctor() || appointment.DocID != session.SubjectID {
		return exceptions.ErrNotAuthorizedForAppointment(nil, session.SubjectID, session.Role, appointmentID)
	}
	if err := terminalStateError(appointment); err != nil {
		return err
	}

	changed, err := uc.AppointmentRepository.MarkCompleted(ctx, appointmentID)
	if err != nil {
		uc.Log.Error("appointmentUsecase.CompleteAppointment error marking appointment completed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}
	if !changed {
		return uc.lostTransition(ctx, appointmentID)
	}

	uc.publish(ctx, constvars.EventAppointmentCompleted, appointment)
	return nil
}

func (uc *appointmentUsecase) PurgeAppointment(ctx context.Context, session *models.Session, appointmentID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.PurgeAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	if !session.IsAdmin() {
		return exceptions.ErrNotAuthorizedForAppointment(nil, session.SubjectID, session.Role, appointmentID)
	}

	appointment, err := uc.findAppointment(ctx, appointmentID)
	if err != nil {
		return err
	}

	deleted, err := uc.AppointmentRepository.DeleteByID(ctx, appointmentID)
	if err != nil {
		uc.Log.Error("appointmentUsecase.PurgeAppointment error deleting appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}
	if !deleted {
		return exceptions.ErrAppointmentNotFound(nil, appointmentID)
	}

	// The record is gone first so a failed release can only leave the slot held.
	if appointment.HoldsSlot() {
		if err := uc.releaseSlot(ctx, appointment); err != nil {
			uc.Log.Error("appointmentUsecase.PurgeAppointment slot left held after purge",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingDoctorIDKey, appointment.DocID),
				zap.Error(err),
			)
		}
	}

	uc.publish(ctx, constvars.EventAppointmentPurged, appointment)
	return nil
}

func (uc *appointmentUsecase) ListPatientAppointments(ctx context.Context, session *models.Session) ([]models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.ListPatientAppointments called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, session.SubjectID),
	)

	if !session.IsPatient() {
		return nil, exceptions.ErrRoleNotAllowed(nil, session.Role, "list", "patient appointments")
	}
	return uc.AppointmentRepository.FindByUserID(ctx, session.SubjectID)
}

func (uc *appointmentUsecase) ListDoctorAppointments(ctx context.Context, session *models.Session) ([]models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.ListDoctorAppointments called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, session.SubjectID),
	)

	if !session.IsDoctor() {
		return nil, exceptions.ErrRoleNotAllowed(nil, session.Role, "list", "doctor appointments")
	}
	return uc.AppointmentRepository.FindByDoctorID(ctx, session.SubjectID)
}

func (uc *appointmentUsecase) ListAllAppointments(ctx context.Context) ([]models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.ListAllAppointments called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return uc.AppointmentRepository.FindAll(ctx)
}

func (uc *appointmentUsecase) findAppointment(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotFound(nil, appointmentID)
	}
	return appointment, nil
}

func terminalStateError(appointment *models.Appointment) error {
	switch {
	case appointment.Cancelled:
		return exceptions.ErrAppointmentAlreadyCancelled(nil, appointment.ID)
	case appointment.IsCompleted:
		return exceptions.ErrAppointmentAlreadyCompleted(nil, appointment.ID)
	}
	return nil
}

// lostTransition reports the terminal flag written by whoever won a conditional update.
func (uc *appointmentUsecase) lostTransition(ctx context.Context, appointmentID string) error {
	appointment, err := uc.findAppointment(ctx, appointmentID)
	if err != nil {
		return err
	}
	if err := terminalStateError(appointment); err != nil {
		return err
	}
	return exceptions.ErrAppointmentAlreadyCancelled(nil, appointmentID)
}

func (uc *appointmentUsecase) publish(ctx context.Context, eventType string, appointment *models.Appointment) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	event := &requests.DomainEvent{
		Type:          eventType,
		AppointmentID: appointment.ID,
		DoctorID:      appointment.DocID,
		PatientID:     appointment.UserID,
		SlotDate:      appointment.SlotDate,
		SlotTime:      appointment.SlotTime,
		Amount:        appointment.Amount,
		OccurredAt:    time.Now().UTC(),
	}
	if err := uc.EventPublisher.Publish(ctx, event); err != nil {
		uc.Log.Warn("appointmentUsecase.publish event dropped",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEventKey, eventType),
			zap.Error(err),
		)
	}
}
