package fakes

import (
	"context"
	"errors"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/exceptions"
	"sort"
	"sync"
)

type DoctorRepository struct {
	mu      sync.Mutex
	doctors map[string]*models.Doctor
	// UpdateSlotsErr, when set, is returned by every UpdateSlotsBooked call.
	UpdateSlotsErr error
	// SlotWrites counts successful UpdateSlotsBooked calls.
	SlotWrites int
	// BeforeDeletePending runs outside the lock at the start of DeletePending.
	BeforeDeletePending func()
}

func NewDoctorRepository() *DoctorRepository {
	return &DoctorRepository{doctors: map[string]*models.Doctor{}}
}

func cloneDoctor(doctor *models.Doctor) *models.Doctor {
	copied := *doctor
	copied.SlotsBooked = doctor.SlotsBooked.Clone()
	return &copied
}

// Seed stores doctor as is, assigning an id when it has none, and returns the id.
func (r *DoctorRepository) Seed(doctor *models.Doctor) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if doctor.ID == "" {
		doctor.ID = newID()
	}
	r.doctors[doctor.ID] = cloneDoctor(doctor)
	return doctor.ID
}

func (r *DoctorRepository) CreateDoctor(ctx context.Context, doctor *models.Doctor) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.doctors {
		if existing.Email == doctor.Email {
			return "", exceptions.ErrEmailAlreadyExist(errors.New("duplicate key"))
		}
	}
	stored := cloneDoctor(doctor)
	stored.ID = newID()
	r.doctors[stored.ID] = stored
	return stored.ID, nil
}

func (r *DoctorRepository) FindByID(ctx context.Context, doctorID string) (*models.Doctor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	doctor, ok := r.doctors[doctorID]
	if !ok {
		return nil, nil
	}
	return cloneDoctor(doctor), nil
}

func (r *DoctorRepository) FindByEmail(ctx context.Context, email string) (*models.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, doctor := range r.doctors {
		if doctor.Email == email {
			return cloneDoctor(doctor), nil
		}
	}
	return nil, nil
}

func (r *DoctorRepository) FindAll(ctx context.Context, filter contracts.DoctorFilter) ([]models.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]models.Doctor, 0, len(r.doctors))
	for _, doctor := range r.doctors {
		if filter.ApprovedOnly && !doctor.IsApproved {
			continue
		}
		if filter.PendingOnly && doctor.IsApproved {
			continue
		}
		result = append(result, *cloneDoctor(doctor))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date > result[j].Date })
	return result, nil
}

func (r *DoctorRepository) UpdateSlotsBooked(ctx context.Context, doctorID string, slots models.SlotsBooked, expectedVersion int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.UpdateSlotsErr != nil {
		return r.UpdateSlotsErr
	}
	doctor, ok := r.doctors[doctorID]
	if !ok || doctor.Version != expectedVersion {
		return exceptions.ErrSlotVersionConflict(nil, doctorID)
	}
	doctor.SlotsBooked = slots.Clone()
	doctor.Version++
	r.SlotWrites++
	return nil
}

func (r *DoctorRepository) SetApproved(ctx context.Context, doctorID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doctor, ok := r.doctors[doctorID]
	if !ok {
		return false, nil
	}
	doctor.IsApproved = true
	return true, nil
}

func (r *DoctorRepository) SetAvailability(ctx context.Context, doctorID string, available bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	doctor, ok := r.doctors[doctorID]
	if !ok {
		return exceptions.ErrDoctorNotFound(nil, doctorID)
	}
	doctor.Available = available
	return nil
}

func (r *DoctorRepository) UpdateProfile(ctx context.Context, doctorID string, update contracts.DoctorProfileUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	doctor, ok := r.doctors[doctorID]
	if !ok {
		return exceptions.ErrDoctorNotFound(nil, doctorID)
	}
	if update.Fees != nil {
		doctor.Fees = *update.Fees
	}
	if update.About != nil {
		doctor.About = *update.About
	}
	if update.Address != nil {
		doctor.Address = *update.Address
	}
	if update.Available != nil {
		doctor.Available = *update.Available
	}
	return nil
}

func (r *DoctorRepository) DeleteByID(ctx context.Context, doctorID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.doctors[doctorID]; !ok {
		return false, nil
	}
	delete(r.doctors, doctorID)
	return true, nil
}

func (r *DoctorRepository) DeletePending(ctx context.Context, doctorID string) (bool, error) {
	if r.BeforeDeletePending != nil {
		r.BeforeDeletePending()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	doctor, ok := r.doctors[doctorID]
	if !ok || doctor.IsApproved {
		return false, nil
	}
	delete(r.doctors, doctorID)
	return true, nil
}

func (r *DoctorRepository) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.doctors)), nil
}
