package config

type InternalConfig struct {
	App     App
	JWT     AppJWT
	Admin   AppAdmin
	Khalti  AppKhalti
	Stripe  AppStripe
	Booking AppBooking
	Worker  AppWorker
	Events  AppEvents
}

type App struct {
	Env                                   string
	Port                                  string
	Version                               string
	Address                               string
	Timezone                              string
	EndpointPrefix                        string
	FrontendDomain                        string
	MaxRequests                           int
	ShutdownTimeoutInSeconds              int
	RequestBodyLimitInMegabyte            int
	PaymentGatewayRequestTimeoutInSeconds int
	PaymentGatewayRequestsPerSecond       int
	DoctorImageMaxUploadSizeInMB          int
	LoginAttemptsPerMinute                int
	BookingAttemptsPerMinute              int
	PaymentAttemptsPerMinute              int
	RBACModelPath                         string
	RBACPolicyPath                        string
}

type AppJWT struct {
	Secret        string
	ExpTimeInHour int
}

// AppAdmin holds the single operator account. PasswordHash is a bcrypt hash,
// generate it with `migration hash-password`.
type AppAdmin struct {
	Email        string
	PasswordHash string
}

type AppKhalti struct {
	BaseUrl    string
	SecretKey  string
	ReturnUrl  string
	WebsiteUrl string
}

type AppStripe struct {
	BaseUrl    string
	SecretKey  string
	Currency   string
	SuccessUrl string
	CancelUrl  string
}

type AppBooking struct {
	LockTTLInSeconds       int
	LockWaitInMilliseconds int
	// LockRetryInMilliseconds is the initial backoff between lock attempts.
	LockRetryInMilliseconds int
}

type AppWorker struct {
	CronSpec                string
	PendingGraceInMinutes   int
	BatchSize               int
	LeaderLockTTLInSeconds  int
	RepairLedgerOnEachCycle bool
}

type AppEvents struct {
	Exchange string
}
