package payments

import (
	"context"
	"medibook-service/internal/app/config"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/dto/responses"
	"medibook-service/internal/pkg/exceptions"
	"medibook-service/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
)

// abandonedIntentAge is how long a pending intent is swept before it is given up on.
const abandonedIntentAge = 24 * time.Hour

type paymentUsecase struct {
	AppointmentRepository   contracts.AppointmentRepository
	PatientRepository       contracts.PatientRepository
	PaymentIntentRepository contracts.PaymentIntentRepository
	Providers               contracts.PaymentProviderRegistry
	EventPublisher          contracts.EventPublisher
	InternalConfig          *config.InternalConfig
	Log                     *zap.Logger
}

func NewPaymentUsecase(
	appointmentRepository contracts.AppointmentRepository,
	patientRepository contracts.PatientRepository,
	paymentIntentRepository contracts.PaymentIntentRepository,
	providers contracts.PaymentProviderRegistry,
	eventPublisher contracts.EventPublisher,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.PaymentUsecase {
	return &paymentUsecase{
		AppointmentRepository:   appointmentRepository,
		PatientRepository:       patientRepository,
		PaymentIntentRepository: paymentIntentRepository,
		Providers:               providers,
		EventPublisher:          eventPublisher,
		InternalConfig:          internalConfig,
		Log:                     logger,
	}
}

func (uc *paymentUsecase) InitiatePayment(ctx context.Context, session *models.Session, provider string, request *requests.InitiatePayment) (*responses.PaymentInitiation, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.InitiatePayment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentProviderKey, provider),
		zap.String(constvars.LoggingAppointmentIDKey, request.AppointmentID),
	)

	gateway, err := uc.Providers.Get(provider)
	if err != nil {
		return nil, err
	}

	appointment, err := uc.AppointmentRepository.FindByID(ctx, request.AppointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotFound(nil, request.AppointmentID)
	}
	if !session.IsPatient() || appointment.UserID != session.SubjectID {
		return nil, exceptions.ErrNotAuthorizedForAppointment(nil, session.SubjectID, session.Role, appointment.ID)
	}
	if appointment.Payment {
		return nil, exceptions.ErrAppointmentAlreadyPaid(nil, appointment.ID)
	}

	patient, err := uc.PatientRepository.FindByID(ctx, appointment.UserID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, exceptions.ErrPatientNotFound(nil, appointment.UserID)
	}

	initiation, err := gateway.Initiate(ctx, appointment, patient)
	if err != nil {
		uc.Log.Error("paymentUsecase.InitiatePayment provider initiation failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPaymentProviderKey, provider),
			zap.Error(err),
		)
		return nil, err
	}

	intent := &models.PaymentIntent{
		Token:         initiation.CorrelationToken,
		Provider:      gateway.Name(),
		AppointmentID: appointment.ID,
		Amount:        appointment.Amount,
		Status:        constvars.PaymentIntentStatusPending,
	}
	if _, err := uc.PaymentIntentRepository.CreateIntent(ctx, intent); err != nil {
		uc.Log.Error("paymentUsecase.InitiatePayment error storing payment intent",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPaymentTokenKey, initiation.CorrelationToken),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("paymentUsecase.InitiatePayment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
		zap.String(constvars.LoggingPaymentTokenKey, initiation.CorrelationToken),
	)
	return initiation, nil
}

func (uc *paymentUsecase) Reconcile(ctx context.Context, provider, token, claimedAppointmentID string) (*responses.PaymentReconciliation, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.Reconcile called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentProviderKey, provider),
		zap.String(constvars.LoggingPaymentTokenKey, token),
	)

	gateway, err := uc.Providers.Get(provider)
	if err != nil {
		return nil, err
	}

	verification, err := gateway.Verify(ctx, token)
	if err != nil {
		uc.Log.Error("paymentUsecase.Reconcile provider verification failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPaymentProviderKey, provider),
			zap.Error(err),
		)
		return nil, err
	}

	intent, err := uc.PaymentIntentRepository.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	verifiedAppointmentID, err := uc.resolveAppointmentID(ctx, token, verification, intent)
	if err != nil {
		return nil, err
	}
	if claimedAppointmentID != "" && claimedAppointmentID != verifiedAppointmentID {
		utils.LogSecurityEvent(uc.Log, "payment_correlation_mismatch", requestID, "high",
			zap.String(constvars.LoggingPaymentProviderKey, provider),
			zap.String(constvars.LoggingPaymentTokenKey, token),
			zap.String("claimed_appointment_id", claimedAppointmentID),
			zap.String("verified_appointment_id", verifiedAppointmentID),
		)
		return nil, exceptions.ErrCorrelationMismatch(nil, claimedAppointmentID, verifiedAppointmentID)
	}

	appointment, err := uc.AppointmentRepository.FindByID(ctx, verifiedAppointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotFound(nil, verifiedAppointmentID)
	}

	if appointment.Payment {
		intentStatus := constvars.PaymentIntentStatusPending
		switch verification.Status {
		case constvars.PaymentStatusCompleted:
			intentStatus = constvars.PaymentIntentStatusCompleted
		case constvars.PaymentStatusFailed:
			intentStatus = constvars.PaymentIntentStatusFailed
		}
		if intentStatus != constvars.PaymentIntentStatusPending {
			uc.settleIntent(ctx, intent, intentStatus)
		}
		return &responses.PaymentReconciliation{
			AppointmentID: appointment.ID,
			Payment:       true,
			AlreadyPaid:   true,
			IntentStatus:  intentStatus,
		}, nil
	}

	if verification.Status != constvars.PaymentStatusCompleted {
		if verification.Status == constvars.PaymentStatusFailed {
			uc.settleIntent(ctx, intent, constvars.PaymentIntentStatusFailed)
		}
		uc.Log.Info("paymentUsecase.Reconcile payment not completed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPaymentStatusKey, verification.ProviderStatus),
		)
		return nil, exceptions.ErrPaymentNotCompleted(nil, verification.ProviderStatus, token)
	}

	if appointment.Cancelled {
		uc.Log.Warn("paymentUsecase.Reconcile payment received for cancelled appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
			zap.String(constvars.LoggingPaymentTokenKey, token),
		)
	}

	changed, err := uc.AppointmentRepository.MarkPaid(ctx, appointment.ID)
	if err != nil {
		uc.Log.Error("paymentUsecase.Reconcile error marking appointment paid",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	uc.settleIntent(ctx, intent, constvars.PaymentIntentStatusCompleted)

	if changed {
		uc.publishPaid(ctx, appointment)
		utils.LogBusinessEvent(uc.Log, "appointment_paid", requestID,
			zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
			zap.String(constvars.LoggingPaymentProviderKey, provider),
			zap.Int64(constvars.LoggingAmountKey, appointment.Amount),
		)
	}
	return &responses.PaymentReconciliation{
		AppointmentID: appointment.ID,
		Payment:       true,
		AlreadyPaid:   !changed,
		IntentStatus:  constvars.PaymentIntentStatusCompleted,
	}, nil
}

// resolveAppointmentID picks the appointment vouched for by the provider and the
// stored intent. Either alone is enough, but they must agree when both exist.
func (uc *paymentUsecase) resolveAppointmentID(ctx context.Context, token string, verification *responses.PaymentVerification, intent *models.PaymentIntent) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	fromProvider := verification.ExternalAppointmentID
	fromIntent := ""
	if intent != nil {
		fromIntent = intent.AppointmentID
	}

	switch {
	case fromProvider != "" && fromIntent != "" && fromProvider != fromIntent:
		utils.LogSecurityEvent(uc.Log, "payment_intent_disagreement", requestID, "high",
			zap.String(constvars.LoggingPaymentTokenKey, token),
			zap.String("provider_appointment_id", fromProvider),
			zap.String("intent_appointment_id", fromIntent),
		)
		return "", exceptions.ErrCorrelationIntentDisagreement(nil, fromProvider, fromIntent)
	case fromProvider != "":
		return fromProvider, nil
	case fromIntent != "":
		return fromIntent, nil
	default:
		return "", exceptions.ErrCorrelationLost(nil, token)
	}
}

func (uc *paymentUsecase) settleIntent(ctx context.Context, intent *models.PaymentIntent, status constvars.PaymentIntentStatus) {
	if intent == nil || intent.Status == status {
		return
	}
	if err := uc.PaymentIntentRepository.UpdateStatus(ctx, intent.Token, status); err != nil {
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		uc.Log.Warn("paymentUsecase.settleIntent error updating intent status",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPaymentTokenKey, intent.Token),
			zap.Error(err),
		)
	}
}

func (uc *paymentUsecase) publishPaid(ctx context.Context, appointment *models.Appointment) {
	event := &requests.DomainEvent{
		Type:          constvars.EventAppointmentPaid,
		AppointmentID: appointment.ID,
		DoctorID:      appointment.DocID,
		PatientID:     appointment.UserID,
		SlotDate:      appointment.SlotDate,
		SlotTime:      appointment.SlotTime,
		Amount:        appointment.Amount,
		OccurredAt:    time.Now().UTC(),
	}
	if err := uc.EventPublisher.Publish(ctx, event); err != nil {
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		uc.Log.Warn("paymentUsecase.publishPaid event dropped",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}
}

func (uc *paymentUsecase) SweepPendingPayments(ctx context.Context) (int, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.SweepPendingPayments called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	worker := uc.InternalConfig.Worker
	now := time.Now()
	cutoff := now.Add(-time.Duration(worker.PendingGraceInMinutes) * time.Minute)

	intents, err := uc.PaymentIntentRepository.FindPendingCreatedBefore(ctx, cutoff, int64(worker.BatchSize))
	if err != nil {
		uc.Log.Error("paymentUsecase.SweepPendingPayments error fetching pending intents",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return 0, err
	}

	reconciled := 0
	for i := range intents {
		if ctx.Err() != nil {
			return reconciled, ctx.Err()
		}

		intent := &intents[i]
		if err := uc.PaymentIntentRepository.MarkChecked(ctx, intent.Token, now); err != nil {
			uc.Log.Warn("paymentUsecase.SweepPendingPayments error marking intent checked",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingPaymentTokenKey, intent.Token),
				zap.Error(err),
			)
		}

		abandoned := now.Sub(intent.CreatedAt) > abandonedIntentAge
		result, err := uc.Reconcile(ctx, intent.Provider, intent.Token, "")
		switch {
		case err == nil:
			reconciled++
			// A duplicate attempt for an appointment that was paid another way.
			if result.IntentStatus == constvars.PaymentIntentStatusPending && abandoned {
				uc.settleIntent(ctx, intent, constvars.PaymentIntentStatusFailed)
			}
		case exceptions.IsKind(err, exceptions.KindPaymentNotCompleted):
			if abandoned {
				uc.settleIntent(ctx, intent, constvars.PaymentIntentStatusFailed)
			}
		default:
			uc.Log.Warn("paymentUsecase.SweepPendingPayments could not reconcile intent",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingPaymentTokenKey, intent.Token),
				zap.Error(err),
			)
		}
	}

	uc.Log.Info("paymentUsecase.SweepPendingPayments finished",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, reconciled),
		zap.Int("pending", len(intents)),
	)
	return reconciled, nil
}
