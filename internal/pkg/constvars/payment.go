package constvars

const (
	PaymentProviderKhalti = "khalti"
	PaymentProviderStripe = "stripe"
)

// PaymentStatus is the provider-agnostic verification outcome
type PaymentStatus string

const (
	PaymentStatusCompleted PaymentStatus = "Completed"
	PaymentStatusPending   PaymentStatus = "Pending"
	PaymentStatusFailed    PaymentStatus = "Failed"
)

// PaymentIntentStatus is the lifecycle of a stored correlation record
type PaymentIntentStatus string

const (
	PaymentIntentStatusPending   PaymentIntentStatus = "pending"
	PaymentIntentStatusCompleted PaymentIntentStatus = "completed"
	PaymentIntentStatusFailed    PaymentIntentStatus = "failed"
)

const (
	KhaltiStatusCompleted = "Completed"
	KhaltiStatusPending   = "Pending"
	KhaltiStatusInitiated = "Initiated"

	KhaltiInitiatePath = "/epayment/initiate/"
	KhaltiLookupPath   = "/epayment/lookup/"
	KhaltiAuthScheme   = "Key"
)

const StripeCheckoutSessionsPath = "/v1/checkout/sessions"

const (
	PaymentMetadataAppointmentIDKey = "appointmentId"
	PaymentOrderNameFormat          = "Appointment Payment - %s"
	PaymentMinorUnitMultiplier      = 100
)
