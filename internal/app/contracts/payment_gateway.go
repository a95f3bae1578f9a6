package contracts

import (
	"context"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/dto/responses"
)

// PaymentProvider is implemented once per external gateway.
type PaymentProvider interface {
	Name() string
	// Initiate must refuse cancelled appointments before contacting the provider.
	Initiate(ctx context.Context, appointment *models.Appointment, patient *models.Patient) (*responses.PaymentInitiation, error)
	Verify(ctx context.Context, token string) (*responses.PaymentVerification, error)
}

type PaymentProviderRegistry interface {
	Get(name string) (PaymentProvider, error)
}
