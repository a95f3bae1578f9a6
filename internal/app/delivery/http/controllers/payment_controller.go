package controllers

import (
	"context"
	"medibook-service/internal/app/config"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/utils"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PaymentController struct {
	Log            *zap.Logger
	PaymentUsecase contracts.PaymentUsecase
	InternalConfig *config.InternalConfig
}

func NewPaymentController(logger *zap.Logger, paymentUsecase contracts.PaymentUsecase, internalConfig *config.InternalConfig) *PaymentController {
	return &PaymentController{
		Log:            logger,
		PaymentUsecase: paymentUsecase,
		InternalConfig: internalConfig,
	}
}

func (ctrl *PaymentController) InitiatePayment(w http.ResponseWriter, r *http.Request) {
	session, err := requireSession(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.InitiatePayment)
	if err := bindJSON[requests.InitiatePayment](r, request, nil); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.providerTimeout())
	defer cancel()

	result, err := ctrl.PaymentUsecase.InitiatePayment(ctx, session, ctrl.provider(r), request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PaymentInitiatedSuccess, result)
}

// VerifyPayment is hit by the frontend after the provider redirects back. The
// appointment it names is only a claim checked against what the provider reports.
func (ctrl *PaymentController) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	request := new(requests.VerifyPayment)
	if err := bindJSON[requests.VerifyPayment](r, request, nil); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	provider := ctrl.provider(r)
	logFields := []zap.Field{
		zap.String(constvars.LoggingPaymentProviderKey, provider),
		zap.String(constvars.LoggingAppointmentIDKey, request.AppointmentID),
	}
	if session, ok := utils.GetSession(r.Context()); ok {
		logFields = append(logFields, utils.SessionFields(session)...)
	}
	utils.LogSecurityEvent(ctrl.Log, "payment_verification_received", requestID, "info", logFields...)

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.providerTimeout())
	defer cancel()

	result, err := ctrl.PaymentUsecase.Reconcile(ctx, provider, strings.TrimSpace(request.Token), strings.TrimSpace(request.AppointmentID))
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PaymentReconciledSuccess, result)
}

func (ctrl *PaymentController) provider(r *http.Request) string {
	return strings.ToLower(strings.TrimSpace(chi.URLParam(r, constvars.URLParamProvider)))
}

// providerTimeout leaves room for one provider round trip plus our own writes.
func (ctrl *PaymentController) providerTimeout() time.Duration {
	if ctrl.InternalConfig == nil || ctrl.InternalConfig.App.PaymentGatewayRequestTimeoutInSeconds <= 0 {
		return 2 * defaultRequestTimeout
	}
	return time.Duration(ctrl.InternalConfig.App.PaymentGatewayRequestTimeoutInSeconds)*time.Second + defaultRequestTimeout
}
