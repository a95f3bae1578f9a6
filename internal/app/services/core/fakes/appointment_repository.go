package fakes

import (
	"context"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/exceptions"
	"sort"
	"sync"
)

type AppointmentRepository struct {
	mu           sync.Mutex
	appointments map[string]*models.Appointment
	// CreateErr, when set, is returned by CreateAppointment.
	CreateErr error
	// PaidWrites counts MarkPaid calls that changed the flag.
	PaidWrites int
	// BeforeCreate and AfterCancel run outside the repository lock, letting tests
	// interleave work with a usecase call.
	BeforeCreate func()
	AfterCancel  func()
}

func NewAppointmentRepository() *AppointmentRepository {
	return &AppointmentRepository{appointments: map[string]*models.Appointment{}}
}

func (r *AppointmentRepository) Seed(appointment *models.Appointment) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if appointment.ID == "" {
		appointment.ID = newID()
	}
	copied := *appointment
	r.appointments[appointment.ID] = &copied
	return appointment.ID
}

func (r *AppointmentRepository) CreateAppointment(ctx context.Context, appointment *models.Appointment) (string, error) {
	if r.BeforeCreate != nil {
		r.BeforeCreate()
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.CreateErr != nil {
		return "", r.CreateErr
	}
	// Mirrors the partial unique index on live (docId, slotDate, slotTime).
	for _, existing := range r.appointments {
		if !existing.Cancelled && existing.DocID == appointment.DocID &&
			existing.SlotDate == appointment.SlotDate && existing.SlotTime == appointment.SlotTime {
			return "", exceptions.ErrSlotAlreadyBooked(nil, appointment.SlotDate, appointment.SlotTime)
		}
	}
	copied := *appointment
	copied.ID = newID()
	r.appointments[copied.ID] = &copied
	return copied.ID, nil
}

func (r *AppointmentRepository) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	appointment, ok := r.appointments[appointmentID]
	if !ok {
		return nil, nil
	}
	copied := *appointment
	return &copied, nil
}

func (r *AppointmentRepository) filter(match func(*models.Appointment) bool, newestFirst bool) []models.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]models.Appointment, 0)
	for _, appointment := range r.appointments {
		if match(appointment) {
			result = append(result, *appointment)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Date == result[j].Date {
			return result[i].ID < result[j].ID != newestFirst
		}
		return result[i].Date > result[j].Date == newestFirst
	})
	return result
}

func (r *AppointmentRepository) FindByUserID(ctx context.Context, userID string) ([]models.Appointment, error) {
	return r.filter(func(a *models.Appointment) bool { return a.UserID == userID }, true), nil
}

func (r *AppointmentRepository) FindByDoctorID(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	return r.filter(func(a *models.Appointment) bool { return a.DocID == doctorID }, true), nil
}

func (r *AppointmentRepository) FindActiveByDoctorID(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	return r.filter(func(a *models.Appointment) bool { return a.DocID == doctorID && a.HoldsSlot() }, false), nil
}

func (r *AppointmentRepository) FindAll(ctx context.Context) ([]models.Appointment, error) {
	return r.filter(func(a *models.Appointment) bool { return true }, true), nil
}

func (r *AppointmentRepository) FindLatest(ctx context.Context, limit int64) ([]models.Appointment, error) {
	all := r.filter(func(a *models.Appointment) bool { return true }, true)
	if int64(len(all)) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *AppointmentRepository) update(appointmentID string, guard func(*models.Appointment) bool, apply func(*models.Appointment)) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	appointment, ok := r.appointments[appointmentID]
	if !ok || !guard(appointment) {
		return false
	}
	apply(appointment)
	return true
}

func (r *AppointmentRepository) MarkCancelled(ctx context.Context, appointmentID string) (bool, error) {
	changed := r.update(appointmentID,
		func(a *models.Appointment) bool { return !a.Cancelled && !a.IsCompleted },
		func(a *models.Appointment) { a.Cancelled = true },
	)
	if changed && r.AfterCancel != nil {
		r.AfterCancel()
	}
	return changed, nil
}

func (r *AppointmentRepository) MarkCompleted(ctx context.Context, appointmentID string) (bool, error) {
	return r.update(appointmentID,
		func(a *models.Appointment) bool { return !a.Cancelled && !a.IsCompleted },
		func(a *models.Appointment) { a.IsCompleted = true },
	), nil
}

func (r *AppointmentRepository) MarkPaid(ctx context.Context, appointmentID string) (bool, error) {
	changed := r.update(appointmentID,
		func(a *models.Appointment) bool { return !a.Payment },
		func(a *models.Appointment) { a.Payment = true },
	)
	if changed {
		r.mu.Lock()
		r.PaidWrites++
		r.mu.Unlock()
	}
	return changed, nil
}

func (r *AppointmentRepository) DeleteByID(ctx context.Context, appointmentID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.appointments[appointmentID]; !ok {
		return false, nil
	}
	delete(r.appointments, appointmentID)
	return true, nil
}

func (r *AppointmentRepository) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.appointments)), nil
}
