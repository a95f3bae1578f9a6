package config

import (
	"medibook-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

// requiredEnvKeys have no usable default in any environment.
var requiredEnvKeys = []string{"JWT_SECRET", "ADMIN_EMAIL", "ADMIN_PASSWORD_HASH"}

// productionEnvKeys are additionally required when APP_ENV is production.
var productionEnvKeys = []string{"STRIPE_SECRET_KEY", "KHALTI_SECRET_KEY", "MONGODB_PASSWORD", "REDIS_PASSWORD"}

// CheckRequiredEnv reports every required key that is unset or blank.
func CheckRequiredEnv() error {
	keys := requiredEnvKeys
	if utils.GetEnvString("APP_ENV", "development") == "production" {
		keys = append(append([]string{}, requiredEnvKeys...), productionEnvKeys...)
	}
	return utils.RequireEnv(keys...)
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "medibook"),
			Username: utils.GetEnvString("MONGODB_USERNAME", ""),
			Password: utils.GetEnvString("MONGODB_PASSWORD", ""),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
		Minio: Minio{
			Port:          utils.GetEnvString("MINIO_PORT", "9000"),
			Host:          utils.GetEnvString("MINIO_HOST", "localhost"),
			Username:      utils.GetEnvString("MINIO_USERNAME", "minioadmin"),
			Password:      utils.GetEnvString("MINIO_PASSWORD", "minioadmin"),
			BucketName:    utils.GetEnvString("MINIO_BUCKET_NAME", "doctors"),
			UseSSL:        utils.GetEnvBool("MINIO_USE_SSL", false),
			PublicBaseUrl: utils.GetEnvString("MINIO_PUBLIC_BASE_URL", "http://localhost:9000"),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                                   utils.GetEnvString("APP_ENV", "development"),
			Port:                                  utils.GetEnvString("APP_PORT", "8080"),
			Version:                               utils.GetEnvString("APP_VERSION", "v1"),
			Address:                               utils.GetEnvString("APP_ADDRESS", "0.0.0.0"),
			Timezone:                              utils.GetEnvString("APP_TIMEZONE", "Asia/Kathmandu"),
			EndpointPrefix:                        utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			FrontendDomain:                        utils.GetEnvString("APP_FRONTEND_DOMAIN", "http://localhost:5173"),
			MaxRequests:                           utils.GetEnvInt("APP_MAX_REQUEST", 100),
			ShutdownTimeoutInSeconds:              utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT_IN_SECONDS", 10),
			RequestBodyLimitInMegabyte:            utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 6),
			PaymentGatewayRequestTimeoutInSeconds: utils.GetEnvInt("APP_PAYMENT_GATEWAY_REQUEST_TIMEOUT_IN_SECONDS", 15),
			PaymentGatewayRequestsPerSecond:       utils.GetEnvInt("APP_PAYMENT_GATEWAY_REQUESTS_PER_SECOND", 5),
			DoctorImageMaxUploadSizeInMB:          utils.GetEnvInt("APP_DOCTOR_IMAGE_MAX_UPLOAD_SIZE_IN_MB", 2),
			LoginAttemptsPerMinute:                utils.GetEnvInt("APP_LOGIN_ATTEMPTS_PER_MINUTE", 10),
			BookingAttemptsPerMinute:              utils.GetEnvInt("APP_BOOKING_ATTEMPTS_PER_MINUTE", 5),
			PaymentAttemptsPerMinute:              utils.GetEnvInt("APP_PAYMENT_ATTEMPTS_PER_MINUTE", 10),
			RBACModelPath:                         utils.GetEnvString("APP_RBAC_MODEL_PATH", "resources/rbac_model.conf"),
			RBACPolicyPath:                        utils.GetEnvString("APP_RBAC_POLICY_PATH", "resources/rbac_policy.csv"),
		},
		JWT: AppJWT{
			Secret:        utils.GetEnvString("JWT_SECRET", ""),
			ExpTimeInHour: utils.GetEnvInt("JWT_EXP_TIME_IN_HOUR", 24),
		},
		Admin: AppAdmin{
			Email:        utils.GetEnvString("ADMIN_EMAIL", ""),
			PasswordHash: utils.GetEnvString("ADMIN_PASSWORD_HASH", ""),
		},
		Khalti: AppKhalti{
			BaseUrl:    utils.GetEnvString("KHALTI_BASE_URL", "https://dev.khalti.com/api/v2"),
			SecretKey:  utils.GetEnvString("KHALTI_SECRET_KEY", ""),
			ReturnUrl:  utils.GetEnvString("KHALTI_RETURN_URL", "http://localhost:5173/payment/khalti"),
			WebsiteUrl: utils.GetEnvString("KHALTI_WEBSITE_URL", "http://localhost:5173"),
		},
		Stripe: AppStripe{
			BaseUrl:    utils.GetEnvString("STRIPE_BASE_URL", "https://api.stripe.com"),
			SecretKey:  utils.GetEnvString("STRIPE_SECRET_KEY", ""),
			Currency:   utils.GetEnvString("STRIPE_CURRENCY", "usd"),
			SuccessUrl: utils.GetEnvString("STRIPE_SUCCESS_URL", "http://localhost:5173/payment/stripe?session_id={CHECKOUT_SESSION_ID}"),
			CancelUrl:  utils.GetEnvString("STRIPE_CANCEL_URL", "http://localhost:5173/my-appointments"),
		},
		Booking: AppBooking{
			LockTTLInSeconds:        utils.GetEnvInt("BOOKING_LOCK_TTL_IN_SECONDS", 10),
			LockWaitInMilliseconds:  utils.GetEnvInt("BOOKING_LOCK_WAIT_IN_MILLISECONDS", 2000),
			LockRetryInMilliseconds: utils.GetEnvInt("BOOKING_LOCK_RETRY_IN_MILLISECONDS", 25),
		},
		Worker: AppWorker{
			CronSpec:                utils.GetEnvString("WORKER_CRON_SPEC", "@every 5m"),
			PendingGraceInMinutes:   utils.GetEnvInt("WORKER_PENDING_GRACE_IN_MINUTES", 15),
			BatchSize:               utils.GetEnvInt("WORKER_BATCH_SIZE", 50),
			LeaderLockTTLInSeconds:  utils.GetEnvInt("WORKER_LEADER_LOCK_TTL_IN_SECONDS", 120),
			RepairLedgerOnEachCycle: utils.GetEnvBool("WORKER_REPAIR_LEDGER_ON_EACH_CYCLE", true),
		},
		Events: AppEvents{
			Exchange: utils.GetEnvString("EVENTS_EXCHANGE", "medibook.events"),
		},
	}
}
