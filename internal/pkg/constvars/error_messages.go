package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":         "is required",
	"email":            "must be a valid email",
	"alphanum":         "must contain only alphanumeric characters",
	"min":              "must be at least %s characters long",
	"max":              "maximum at %s characters long",
	"numeric":          "must be a number",
	"oneof":            "must be one of [%s]",
	"gt":               "must be greater than %s",
	"gte":              "must be greater than or equal to %s",
	"url":              "must be a valid URL",
	"base64":           "must be a valid base64 string",
	"date_key":         "must follow the <year>_<monthIndex>_<day> format, e.g. 2025_5_10",
	"slot_time":        "must be a time label such as 10:00AM",
	"payment_provider": "must be either 'khalti' or 'stripe'",
	"phone_number":     "phone number must be a valid international number",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"gt":    true,
	"gte":   true,
	"oneof": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientInvalidUsernameOrPassword     = "invalid email or password"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientEmailAlreadyExists            = "email already used"
	ErrClientTooManyRequests               = "too many requests, please try again later"

	ErrClientDoctorNotFound          = "doctor not found"
	ErrClientDoctorUnavailable       = "doctor not available"
	ErrClientDoctorAlreadyApproved   = "doctor already approved"
	ErrClientPatientNotFound         = "patient not found"
	ErrClientAppointmentNotFound     = "appointment not found"
	ErrClientSlotAlreadyBooked       = "slot not available"
	ErrClientBookingBusy             = "slot is being booked, please try again"
	ErrClientAppointmentCancelled    = "appointment already cancelled"
	ErrClientAppointmentCompleted    = "appointment already completed"
	ErrClientAppointmentAlreadyPaid  = "appointment already paid"
	ErrClientInvalidAppointment      = "invalid appointment"
	ErrClientPaymentNotCompleted     = "payment not completed yet"
	ErrClientPaymentProviderFailure  = "payment provider is unavailable, please try again"
	ErrClientPaymentProviderNotFound = "payment provider not supported"
	ErrClientPaymentVerification     = "payment could not be verified"
)

// Error messages for developers
const (
	ErrDevInvalidInput             = "invalid input"
	ErrDevCannotParseJSON          = "cannot parse JSON into struct or other data types"
	ErrDevCannotMarshalJSON        = "cannot convert struct or other data types to JSON"
	ErrDevFailedToHashPassword     = "failed to hash password"
	ErrDevInvalidCredentials       = "invalid credentials"
	ErrDevCreateHTTPRequest        = "failed to create HTTP request"
	ErrDevSendHTTPRequest          = "failed to send HTTP request"
	ErrDevServerProcess            = "server failed to process the request"
	ErrDevServerDeadlineExceeded   = "server deadline exceeded"
	ErrDevMissingSession           = "session data missing from context"
	ErrDevEmailAlreadyExists       = "email already exists"
	ErrDevRoleNotAllowed           = "role %s is not allowed to %s %s"
	ErrDevDecodeImage              = "failed to decode base64 image"
	ErrDevTooManyRequests          = "rate limit exceeded"
	ErrDevRBACEnforce              = "failed to evaluate rbac policy"
	ErrDevInvalidDateKey           = "slot date %q is not a valid date key"
	ErrDevRedisUnlock              = "failed to release redis lock"
	ErrDevRabbitMQPublish          = "failed to publish message to exchange %s"
	ErrDevURLParamIDValidation     = "parameter %s validation failed"
	ErrDevAccountNotFound          = "account with the given email not found"
	ErrDevPasswordMismatch         = "password does not match stored hash"
	ErrDevAdminCredentialMisconfig = "admin credential hash not configured"

	// Domain
	ErrDevDoctorNotFound                = "doctor %s not found or not approved"
	ErrDevDoctorUnavailable             = "doctor %s has availability switched off"
	ErrDevDoctorAlreadyApproved         = "doctor %s is already approved and cannot be rejected"
	ErrDevPatientNotFound               = "patient %s not found"
	ErrDevAppointmentNotFound           = "appointment %s not found"
	ErrDevSlotAlreadyBooked             = "slot %s %s already booked for doctor"
	ErrDevSlotVersionConflict           = "doctor %s slots were modified concurrently"
	ErrDevBookingLockNotAcquired        = "could not acquire booking lock for doctor %s"
	ErrDevAppointmentAlreadyCancelled   = "appointment %s is already cancelled"
	ErrDevAppointmentAlreadyCompleted   = "appointment %s is already completed"
	ErrDevAppointmentAlreadyPaid        = "appointment %s is already paid"
	ErrDevAppointmentNotOwned           = "requester %s with role %s does not own appointment %s"
	ErrDevDoctorNotOwned                = "requester %s with role %s may not manage doctor %s"
	ErrDevInvalidAppointment            = "appointment %s is cancelled, refusing to create a charge"
	ErrDevPaymentNotCompleted           = "provider reported status %s for token %s"
	ErrDevPaymentProviderNotFound       = "payment provider %s is not registered"
	ErrDevPaymentProviderBadStatus      = "payment provider %s responded with http status %d"
	ErrDevPaymentProviderDecode         = "failed to decode %s provider response"
	ErrDevPaymentProviderMissingField   = "%s provider response is missing field %s"
	ErrDevCorrelationMismatch           = "correlation mismatch: claimed %q, verified %q"
	ErrDevCorrelationLost               = "no appointment correlation found for token %s"
	ErrDevCorrelationIntentDisagreement = "provider appointment %q disagrees with stored intent appointment %q"

	// Authentication messages
	ErrDevAuthSigningMethod         = "unexpected signing method"
	ErrDevAuthTokenInvalid          = "invalid token"
	ErrDevAuthTokenInvalidOrExpired = "invalid or expired token"
	ErrDevAuthTokenMissing          = "token missing"
	ErrDevAuthInvalidSession        = "invalid session"
	ErrDevAuthGenerateToken         = "failed to generate token"

	// Database messages
	ErrDevDBFailedToInsertDocument   = "failed to insert document into database"
	ErrDevDBFailedToUpdateDocument   = "failed to update document into database"
	ErrDevDBFailedToFindDocument     = "failed when do find document on database"
	ErrDevDBFailedToDeleteDocument   = "failed when do delete document on database"
	ErrDevDBFailedToIterateDocuments = "failed when iterating documents from database"
	ErrDevDBFailedToCountDocuments   = "failed when counting documents on database"
	ErrDevDBStringNotObjectID        = "given ID is not valid object ID"

	// Minio messages
	ErrDevMinioFailedToCreateObject = "failed to create object into minio storage with bucket name '%s'"

	// Redis messages
	ErrDevRedisGetNoData  = "no data found in redis for key %s"
	ErrDevRedisGetData    = "failed to get data from redis"
	ErrDevRedisSetData    = "failed to set data into redis"
	ErrDevRedisDeleteData = "failed to delete data from redis"
	ErrDevRedisExpireData = "failed to refresh expiration in redis"
)
