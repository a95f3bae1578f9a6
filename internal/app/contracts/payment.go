package contracts

import (
	"context"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/dto/responses"
	"time"
)

type PaymentIntentRepository interface {
	CreateIntent(ctx context.Context, intent *models.PaymentIntent) (string, error)
	FindByToken(ctx context.Context, token string) (*models.PaymentIntent, error)
	// FindPendingCreatedBefore returns least recently checked intents first.
	FindPendingCreatedBefore(ctx context.Context, cutoff time.Time, limit int64) ([]models.PaymentIntent, error)
	MarkChecked(ctx context.Context, token string, at time.Time) error
	UpdateStatus(ctx context.Context, token string, status constvars.PaymentIntentStatus) error
}

type PaymentUsecase interface {
	InitiatePayment(ctx context.Context, session *models.Session, provider string, request *requests.InitiatePayment) (*responses.PaymentInitiation, error)
	// Reconcile verifies token with the provider and flips the payment flag of the
	// appointment the provider vouches for. An empty claimedAppointmentID skips the
	// caller cross-check.
	Reconcile(ctx context.Context, provider, token, claimedAppointmentID string) (*responses.PaymentReconciliation, error)
	SweepPendingPayments(ctx context.Context) (int, error)
}
