package fakes

import (
	"context"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/dto/responses"
	"medibook-service/internal/pkg/exceptions"
	"sync"
)

// PaymentProvider answers Verify from a table keyed by token.
type PaymentProvider struct {
	mu            sync.Mutex
	ProviderName  string
	Verifications map[string]*responses.PaymentVerification
	VerifyErr     error
	VerifyCalls   int
}

func NewPaymentProvider(name string) *PaymentProvider {
	return &PaymentProvider{ProviderName: name, Verifications: map[string]*responses.PaymentVerification{}}
}

func (p *PaymentProvider) Name() string {
	return p.ProviderName
}

func (p *PaymentProvider) Initiate(ctx context.Context, appointment *models.Appointment, patient *models.Patient) (*responses.PaymentInitiation, error) {
	if appointment.Cancelled {
		return nil, exceptions.ErrInvalidAppointment(nil, appointment.ID)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	token := p.ProviderName + "-token-" + appointment.ID
	p.Verifications[token] = &responses.PaymentVerification{Status: constvars.PaymentStatusPending, ProviderStatus: "Initiated"}
	return &responses.PaymentInitiation{
		Provider:         p.ProviderName,
		AppointmentID:    appointment.ID,
		RedirectURL:      "https://pay.local/" + token,
		CorrelationToken: token,
	}, nil
}

func (p *PaymentProvider) Verify(ctx context.Context, token string) (*responses.PaymentVerification, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.VerifyCalls++
	if p.VerifyErr != nil {
		return nil, p.VerifyErr
	}
	verification, ok := p.Verifications[token]
	if !ok {
		return nil, exceptions.ErrPaymentProviderBadStatus(nil, p.ProviderName, 404)
	}
	copied := *verification
	return &copied, nil
}

// SetVerification replaces the provider answer for token.
func (p *PaymentProvider) SetVerification(token string, status constvars.PaymentStatus, externalAppointmentID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Verifications[token] = &responses.PaymentVerification{Status: status, ExternalAppointmentID: externalAppointmentID, ProviderStatus: string(status)}
}
