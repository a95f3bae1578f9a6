package constvars

const (
	LoggingRequestIDKey          = "request_id"
	LoggingMethodKey             = "method"
	LoggingEndpointKey           = "endpoint"
	LoggingRemoteAddrKey         = "remote_addr"
	LoggingUserAgentKey          = "user_agent"
	LoggingQueryKey              = "query"
	LoggingRouteKey              = "route"
	LoggingResponseBytesKey      = "response_bytes"
	LoggingStatusCodeKey         = "status_code"
	LoggingDurationKey           = "duration"
	LoggingSuccessKey            = "success"
	LoggingOperationKey          = "operation"
	LoggingErrorTypeKey          = "error_type"
	LoggingErrorCodeKey          = "error_code"
	LoggingErrorMessageKey       = "error_message"
	LoggingRedisKey              = "redis_key"
	LoggingLockValueKey          = "lock_value"
	LoggingLockExpirationTimeKey = "lock_expiration"
	LoggingRoleKey               = "role"
	LoggingSubjectIDKey          = "subject_id"
	LoggingDoctorIDKey           = "doctor_id"
	LoggingPatientIDKey          = "patient_id"
	LoggingAppointmentIDKey      = "appointment_id"
	LoggingSlotDateKey           = "slot_date"
	LoggingSlotTimeKey           = "slot_time"
	LoggingSlotVersionKey        = "slot_version"
	LoggingPaymentProviderKey    = "payment_provider"
	LoggingPaymentTokenKey       = "payment_token"
	LoggingPaymentStatusKey      = "payment_status"
	LoggingAmountKey             = "amount"
	LoggingEventKey              = "event"
	LoggingCountKey              = "count"
	LoggingEmailKey              = "email"
)
