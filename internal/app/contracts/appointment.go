package contracts

import (
	"context"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/dto/requests"
)

type AppointmentRepository interface {
	CreateAppointment(ctx context.Context, appointment *models.Appointment) (string, error)
	FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error)
	FindByUserID(ctx context.Context, userID string) ([]models.Appointment, error)
	FindByDoctorID(ctx context.Context, doctorID string) ([]models.Appointment, error)
	// FindActiveByDoctorID returns the appointments that still hold a slot.
	FindActiveByDoctorID(ctx context.Context, doctorID string) ([]models.Appointment, error)
	FindAll(ctx context.Context) ([]models.Appointment, error)
	FindLatest(ctx context.Context, limit int64) ([]models.Appointment, error)
	// MarkCancelled, MarkCompleted and MarkPaid are conditional writes. They report
	// false when the guard flag was already set or the appointment is gone.
	MarkCancelled(ctx context.Context, appointmentID string) (bool, error)
	MarkCompleted(ctx context.Context, appointmentID string) (bool, error)
	MarkPaid(ctx context.Context, appointmentID string) (bool, error)
	DeleteByID(ctx context.Context, appointmentID string) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type AppointmentUsecase interface {
	BookAppointment(ctx context.Context, session *models.Session, request *requests.BookAppointment) (*models.Appointment, error)
	CancelAppointment(ctx context.Context, session *models.Session, appointmentID string) error
	CompleteAppointment(ctx context.Context, session *models.Session, appointmentID string) error
	PurgeAppointment(ctx context.Context, session *models.Session, appointmentID string) error
	ListPatientAppointments(ctx context.Context, session *models.Session) ([]models.Appointment, error)
	ListDoctorAppointments(ctx context.Context, session *models.Session) ([]models.Appointment, error)
	ListAllAppointments(ctx context.Context) ([]models.Appointment, error)
	// RepairSlotLedgers rebuilds each doctor's booked slots from the appointments that
	// still hold one and returns how many doctors were rewritten.
	RepairSlotLedgers(ctx context.Context) (int, error)
}
