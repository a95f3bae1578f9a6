package fakes

import (
	"context"
	"errors"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/exceptions"
	"sync"
)

type PatientRepository struct {
	mu       sync.Mutex
	patients map[string]*models.Patient
}

func NewPatientRepository() *PatientRepository {
	return &PatientRepository{patients: map[string]*models.Patient{}}
}

func (r *PatientRepository) Seed(patient *models.Patient) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if patient.ID == "" {
		patient.ID = newID()
	}
	copied := *patient
	r.patients[patient.ID] = &copied
	return patient.ID
}

func (r *PatientRepository) CreatePatient(ctx context.Context, patient *models.Patient) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.patients {
		if existing.Email == patient.Email {
			return "", exceptions.ErrEmailAlreadyExist(errors.New("duplicate key"))
		}
	}
	copied := *patient
	copied.ID = newID()
	r.patients[copied.ID] = &copied
	return copied.ID, nil
}

func (r *PatientRepository) FindByID(ctx context.Context, patientID string) (*models.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	patient, ok := r.patients[patientID]
	if !ok {
		return nil, nil
	}
	copied := *patient
	return &copied, nil
}

func (r *PatientRepository) FindByEmail(ctx context.Context, email string) (*models.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, patient := range r.patients {
		if patient.Email == email {
			copied := *patient
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *PatientRepository) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.patients)), nil
}
