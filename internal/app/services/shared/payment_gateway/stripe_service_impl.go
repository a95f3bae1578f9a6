package payment_gateway

import (
	"context"
	"errors"
	"fmt"
	"medibook-service/internal/app/config"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/dto/responses"
	"medibook-service/internal/pkg/exceptions"
	"net/http"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"go.uber.org/zap"
)

type stripeService struct {
	Currency   string
	SuccessUrl string
	CancelUrl  string
	api        *client.API
	client     *providerClient
	Log        *zap.Logger
}

func NewStripeService(internalConfig *config.InternalConfig, logger *zap.Logger) contracts.PaymentProvider {
	timeout := time.Duration(internalConfig.App.PaymentGatewayRequestTimeoutInSeconds) * time.Second
	pacer := newProviderClient(constvars.PaymentProviderStripe, timeout, internalConfig.App.PaymentGatewayRequestsPerSecond, logger)

	// Retries stay off: the sweep worker re-verifies pending sessions.
	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(strings.TrimSuffix(internalConfig.Stripe.BaseUrl, "/")),
		HTTPClient:        &http.Client{Timeout: timeout},
		LeveledLogger:     logger.Sugar(),
		MaxNetworkRetries: stripe.Int64(0),
		EnableTelemetry:   stripe.Bool(false),
	})
	api := &client.API{}
	api.Init(internalConfig.Stripe.SecretKey, &stripe.Backends{API: backend})

	return &stripeService{
		Currency:   internalConfig.Stripe.Currency,
		SuccessUrl: internalConfig.Stripe.SuccessUrl,
		CancelUrl:  internalConfig.Stripe.CancelUrl,
		api:        api,
		client:     pacer,
		Log:        logger,
	}
}

func (s *stripeService) Name() string {
	return constvars.PaymentProviderStripe
}

func (s *stripeService) Initiate(ctx context.Context, appointment *models.Appointment, patient *models.Patient) (*responses.PaymentInitiation, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("stripeService.Initiate called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
	)

	if appointment.Cancelled {
		return nil, exceptions.ErrInvalidAppointment(nil, appointment.ID)
	}

	ctx, cancel, err := s.client.pace(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(s.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(fmt.Sprintf(constvars.PaymentOrderNameFormat, appointment.ID)),
					},
					UnitAmount: stripe.Int64(appointment.Amount * constvars.PaymentMinorUnitMultiplier),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL:        stripe.String(s.SuccessUrl),
		CancelURL:         stripe.String(s.CancelUrl),
		ClientReferenceID: stripe.String(appointment.ID),
		Metadata:          map[string]string{constvars.PaymentMetadataAppointmentIDKey: appointment.ID},
	}
	params.Context = ctx
	if patient != nil && patient.Email != "" {
		params.CustomerEmail = stripe.String(patient.Email)
	}

	session, err := s.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, s.providerError(requestID, "stripeService.Initiate", err)
	}
	if session.ID == "" {
		return nil, exceptions.ErrProviderResponseMissingField(nil, constvars.PaymentProviderStripe, "id")
	}
	if session.URL == "" {
		return nil, exceptions.ErrProviderResponseMissingField(nil, constvars.PaymentProviderStripe, "url")
	}

	s.Log.Info("stripeService.Initiate succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
		zap.String(constvars.LoggingPaymentTokenKey, session.ID),
	)

	return &responses.PaymentInitiation{
		Provider:         constvars.PaymentProviderStripe,
		AppointmentID:    appointment.ID,
		RedirectURL:      session.URL,
		CorrelationToken: session.ID,
	}, nil
}

func (s *stripeService) Verify(ctx context.Context, token string) (*responses.PaymentVerification, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("stripeService.Verify called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentTokenKey, token),
	)

	ctx, cancel, err := s.client.pace(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()

	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	session, err := s.api.CheckoutSessions.Get(token, params)
	if err != nil {
		return nil, s.providerError(requestID, "stripeService.Verify", err)
	}
	if session.PaymentStatus == "" {
		return nil, exceptions.ErrProviderResponseMissingField(nil, constvars.PaymentProviderStripe, "payment_status")
	}

	s.Log.Info("stripeService.Verify succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentTokenKey, token),
		zap.String(constvars.LoggingPaymentStatusKey, string(session.PaymentStatus)),
	)

	return &responses.PaymentVerification{
		Status:                mapStripeStatus(session.PaymentStatus, session.Status),
		ProviderStatus:        string(session.PaymentStatus),
		ExternalAppointmentID: session.Metadata[constvars.PaymentMetadataAppointmentIDKey],
	}, nil
}

// providerError maps API errors that carry an HTTP status to a bad-status
// error and everything else to a transport failure.
func (s *stripeService) providerError(requestID, operation string, err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) && stripeErr.HTTPStatusCode != 0 {
		s.Log.Error(operation+" stripe returned an error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, stripeErr.HTTPStatusCode),
			zap.String("stripe_error_type", string(stripeErr.Type)),
			zap.Error(err),
		)
		return exceptions.ErrPaymentProviderBadStatus(err, constvars.PaymentProviderStripe, stripeErr.HTTPStatusCode)
	}

	s.Log.Error(operation+" error calling stripe",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Error(err),
	)
	return exceptions.ErrSendHTTPRequest(err)
}

func mapStripeStatus(paymentStatus stripe.CheckoutSessionPaymentStatus, sessionStatus stripe.CheckoutSessionStatus) constvars.PaymentStatus {
	switch {
	case paymentStatus == stripe.CheckoutSessionPaymentStatusPaid, paymentStatus == stripe.CheckoutSessionPaymentStatusNoPaymentRequired:
		return constvars.PaymentStatusCompleted
	case sessionStatus == stripe.CheckoutSessionStatusExpired:
		return constvars.PaymentStatusFailed
	default:
		return constvars.PaymentStatusPending
	}
}
