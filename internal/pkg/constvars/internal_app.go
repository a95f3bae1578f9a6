package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_SESSION_DATA_KEY         ContextKey = "session_data"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
)

const (
	REQUEST_ID_PREFIX = "MDBK_SVC_"
)

const (
	RoleAdmin   = "admin"
	RoleDoctor  = "doctor"
	RolePatient = "patient"
)

const (
	MongoCollectionDoctors        = "doctors"
	MongoCollectionAppointments   = "appointments"
	MongoCollectionUsers          = "users"
	MongoCollectionPaymentIntents = "payment_intents"
)

// Redis key formats
const (
	RedisKeySessionFormat       = "session:%s"
	RedisKeyBookingLockFormat   = "booking:doctor:%s"
	RedisKeyWorkerLeaderLockKey = "payments:worker:leader"
	// group, subject, window index
	RedisKeyRateLimitFormat = "ratelimit:%s:%s:%d"
)

// Domain events published to RabbitMQ
const (
	EventAppointmentBooked    = "appointment.booked"
	EventAppointmentCancelled = "appointment.cancelled"
	EventAppointmentCompleted = "appointment.completed"
	EventAppointmentPurged    = "appointment.purged"
	EventAppointmentPaid      = "appointment.paid"
	EventDoctorApproved       = "doctor.approved"
)

const (
	RateLimitGroupBooking = "booking"
	RateLimitGroupPayment = "payment"
)

const (
	DateKeySeparator          = "_"
	DashboardLatestLimit      = 5
	DoctorImageObjectPrefix   = "doctor"
	DefaultDoctorImageFileExt = ".png"
)
