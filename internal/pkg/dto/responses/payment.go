package responses

import "medibook-service/internal/pkg/constvars"

type PaymentInitiation struct {
	Provider         string `json:"provider"`
	AppointmentID    string `json:"appointment_id"`
	RedirectURL      string `json:"redirect_url"`
	CorrelationToken string `json:"correlation_token"`
}

type PaymentVerification struct {
	Status                constvars.PaymentStatus `json:"status"`
	ExternalAppointmentID string                  `json:"external_appointment_id"`
	ProviderStatus        string                  `json:"provider_status"`
}

type PaymentReconciliation struct {
	AppointmentID string `json:"appointment_id"`
	Payment       bool   `json:"payment"`
	AlreadyPaid   bool   `json:"already_paid"`
	// IntentStatus is where the verified intent ended up.
	IntentStatus constvars.PaymentIntentStatus `json:"-"`
}
