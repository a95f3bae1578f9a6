package payment_gateway

import (
	"bytes"
	"context"
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

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

type khaltiCustomerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type khaltiInitiateRequest struct {
	ReturnUrl         string             `json:"return_url"`
	WebsiteUrl        string             `json:"website_url"`
	Amount            int64              `json:"amount"`
	PurchaseOrderID   string             `json:"purchase_order_id"`
	PurchaseOrderName string             `json:"purchase_order_name"`
	CustomerInfo      khaltiCustomerInfo `json:"customer_info"`
	Metadata          map[string]string  `json:"metadata"`
}

type khaltiLookupRequest struct {
	Pidx string `json:"pidx"`
}

type khaltiService struct {
	BaseUrl    string
	SecretKey  string
	ReturnUrl  string
	WebsiteUrl string
	client     *providerClient
	Log        *zap.Logger
}

func NewKhaltiService(internalConfig *config.InternalConfig, logger *zap.Logger) contracts.PaymentProvider {
	timeout := time.Duration(internalConfig.App.PaymentGatewayRequestTimeoutInSeconds) * time.Second
	return &khaltiService{
		BaseUrl:    strings.TrimSuffix(internalConfig.Khalti.BaseUrl, "/"),
		SecretKey:  internalConfig.Khalti.SecretKey,
		ReturnUrl:  internalConfig.Khalti.ReturnUrl,
		WebsiteUrl: internalConfig.Khalti.WebsiteUrl,
		client:     newProviderClient(constvars.PaymentProviderKhalti, timeout, internalConfig.App.PaymentGatewayRequestsPerSecond, logger),
		Log:        logger,
	}
}

func (s *khaltiService) Name() string {
	return constvars.PaymentProviderKhalti
}

func (s *khaltiService) Initiate(ctx context.Context, appointment *models.Appointment, patient *models.Patient) (*responses.PaymentInitiation, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("khaltiService.Initiate called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
	)

	if appointment.Cancelled {
		return nil, exceptions.ErrInvalidAppointment(nil, appointment.ID)
	}

	payload := &khaltiInitiateRequest{
		ReturnUrl:         s.ReturnUrl,
		WebsiteUrl:        s.WebsiteUrl,
		Amount:            appointment.Amount * constvars.PaymentMinorUnitMultiplier,
		PurchaseOrderID:   appointment.ID,
		PurchaseOrderName: fmt.Sprintf(constvars.PaymentOrderNameFormat, appointment.ID),
		Metadata: map[string]string{
			constvars.PaymentMetadataAppointmentIDKey: appointment.ID,
		},
	}
	if patient != nil {
		payload.CustomerInfo = khaltiCustomerInfo{Name: patient.Name, Email: patient.Email, Phone: patient.Phone}
	}

	requestBody, err := json.Marshal(payload)
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	body, err := s.client.do(ctx, func(ctx context.Context) (*http.Request, error) {
		return s.newRequest(ctx, s.BaseUrl+constvars.KhaltiInitiatePath, requestBody)
	})
	if err != nil {
		return nil, err
	}

	if !gjson.ValidBytes(body) {
		return nil, exceptions.ErrDecodeProviderResponse(nil, constvars.PaymentProviderKhalti)
	}
	result := gjson.GetManyBytes(body, "pidx", "payment_url")
	pidx, paymentUrl := result[0].String(), result[1].String()
	if pidx == "" {
		return nil, exceptions.ErrProviderResponseMissingField(nil, constvars.PaymentProviderKhalti, "pidx")
	}
	if paymentUrl == "" {
		return nil, exceptions.ErrProviderResponseMissingField(nil, constvars.PaymentProviderKhalti, "payment_url")
	}

	s.Log.Info("khaltiService.Initiate succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
		zap.String(constvars.LoggingPaymentTokenKey, pidx),
	)

	return &responses.PaymentInitiation{
		Provider:         constvars.PaymentProviderKhalti,
		AppointmentID:    appointment.ID,
		RedirectURL:      paymentUrl,
		CorrelationToken: pidx,
	}, nil
}

func (s *khaltiService) Verify(ctx context.Context, token string) (*responses.PaymentVerification, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("khaltiService.Verify called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentTokenKey, token),
	)

	requestBody, err := json.Marshal(&khaltiLookupRequest{Pidx: token})
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	body, err := s.client.do(ctx, func(ctx context.Context) (*http.Request, error) {
		return s.newRequest(ctx, s.BaseUrl+constvars.KhaltiLookupPath, requestBody)
	})
	if err != nil {
		return nil, err
	}

	if !gjson.ValidBytes(body) {
		return nil, exceptions.ErrDecodeProviderResponse(nil, constvars.PaymentProviderKhalti)
	}
	providerStatus := gjson.GetBytes(body, "status")
	if !providerStatus.Exists() {
		return nil, exceptions.ErrProviderResponseMissingField(nil, constvars.PaymentProviderKhalti, "status")
	}

	verification := &responses.PaymentVerification{
		Status:                mapKhaltiStatus(providerStatus.String()),
		ProviderStatus:        providerStatus.String(),
		ExternalAppointmentID: gjson.GetBytes(body, "purchase_order_id").String(),
	}

	s.Log.Info("khaltiService.Verify succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentTokenKey, token),
		zap.String(constvars.LoggingPaymentStatusKey, providerStatus.String()),
	)
	return verification, nil
}

func (s *khaltiService) newRequest(ctx context.Context, url string, body []byte) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set(constvars.HeaderAuthorization, fmt.Sprintf("%s %s", constvars.KhaltiAuthScheme, s.SecretKey))
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	return req, nil
}

func mapKhaltiStatus(status string) constvars.PaymentStatus {
	switch status {
	case constvars.KhaltiStatusCompleted:
		return constvars.PaymentStatusCompleted
	case constvars.KhaltiStatusPending, constvars.KhaltiStatusInitiated:
		return constvars.PaymentStatusPending
	default:
		return constvars.PaymentStatusFailed
	}
}
