package contracts

import (
	"context"
	"medibook-service/internal/app/models"
)

type PatientRepository interface {
	CreatePatient(ctx context.Context, patient *models.Patient) (string, error)
	FindByID(ctx context.Context, patientID string) (*models.Patient, error)
	FindByEmail(ctx context.Context, email string) (*models.Patient, error)
	Count(ctx context.Context) (int64, error)
}
