package main

import (
	"context"
	"fmt"
	"log"
	"medibook-service/internal/app/config"
	"medibook-service/internal/app/delivery/http/controllers"
	"medibook-service/internal/app/delivery/http/middlewares"
	"medibook-service/internal/app/delivery/http/routers"
	"medibook-service/internal/app/drivers/database"
	"medibook-service/internal/app/drivers/logger"
	"medibook-service/internal/app/drivers/messaging"
	"medibook-service/internal/app/drivers/storage"
	"medibook-service/internal/app/services/core/appointments"
	"medibook-service/internal/app/services/core/approval"
	"medibook-service/internal/app/services/core/auth"
	"medibook-service/internal/app/services/core/dashboard"
	"medibook-service/internal/app/services/core/doctors"
	"medibook-service/internal/app/services/core/patients"
	"medibook-service/internal/app/services/core/payments"
	"medibook-service/internal/app/services/shared/events"
	"medibook-service/internal/app/services/shared/locker"
	"medibook-service/internal/app/services/shared/payment_gateway"
	"medibook-service/internal/app/services/shared/ratelimiter"
	redisRepo "medibook-service/internal/app/services/shared/redis"
	minioStorage "medibook-service/internal/app/services/shared/storage"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/casbin/casbin/v2"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {
	if err := config.CheckRequiredEnv(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)
	accessLogger := logger.NewLogrusLogger(internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	mongoDB := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig)
	minioClient := storage.NewMinio(driverConfig)
	chiRouter := chi.NewRouter()

	indexCtx, cancelIndex := context.WithTimeout(context.Background(), 30*time.Second)
	indexes, err := database.EnsureIndexes(indexCtx, mongoDB)
	cancelIndex()
	if err != nil {
		log.Fatalf("Failed to ensure mongo indexes: %v", err)
	}
	log.Printf("Mongo indexes ready: %v", indexes)

	bootstrap := &config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		RabbitMQ:       rabbitMQ,
		Minio:          minioClient,
		Logger:         zapLogger,
		AccessLogger:   accessLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	err = bootstrapingTheApp(bootstrap)
	if err != nil {
		log.Fatalf("Error bootstraping the app: %v", err)
	}

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", internalConfig.App.Address, internalConfig.App.Port),
		Handler:           chiRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server listening on %s", server.Addr)
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	accessLogger.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Printf("Error releasing resources: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) error {
	internalConfig := bootstrap.InternalConfig

	// Shared services
	redisRepository := redisRepo.NewRedisRepository(bootstrap.Redis)
	lockerService := locker.NewLockService(redisRepository, bootstrap.Logger)
	eventsChannel := messaging.DeclareEventsExchange(bootstrap.RabbitMQ, internalConfig.Events.Exchange)
	eventPublisher := events.NewRabbitMQPublisher(eventsChannel, internalConfig.Events.Exchange, bootstrap.Logger)
	objectStorage := minioStorage.NewMinioStorage(bootstrap.Minio, bootstrap.DriverConfig.Minio.PublicBaseUrl, bootstrap.Logger)
	paymentProviders := payment_gateway.NewRegistry(
		payment_gateway.NewKhaltiService(internalConfig, bootstrap.Logger),
		payment_gateway.NewStripeService(internalConfig, bootstrap.Logger),
	)

	// Repositories
	doctorRepository := doctors.NewDoctorMongoRepository(bootstrap.MongoDB)
	appointmentRepository := appointments.NewAppointmentMongoRepository(bootstrap.MongoDB)
	patientRepository := patients.NewPatientMongoRepository(bootstrap.MongoDB)
	paymentIntentRepository := payments.NewPaymentIntentMongoRepository(bootstrap.MongoDB)

	// Usecases
	sessionService := auth.NewSessionService(redisRepository, internalConfig, bootstrap.Logger)
	authUsecase := auth.NewAuthUsecase(patientRepository, doctorRepository, sessionService, internalConfig, bootstrap.Logger)
	doctorUsecase := doctors.NewDoctorUsecase(doctorRepository, appointmentRepository, bootstrap.Logger)
	approvalUsecase := approval.NewApprovalUsecase(doctorRepository, objectStorage, eventPublisher, internalConfig, bootstrap.DriverConfig.Minio.BucketName, bootstrap.Logger)
	appointmentUsecase := appointments.NewAppointmentUsecase(appointmentRepository, doctorRepository, patientRepository, lockerService, eventPublisher, internalConfig, bootstrap.Logger)
	paymentUsecase := payments.NewPaymentUsecase(appointmentRepository, patientRepository, paymentIntentRepository, paymentProviders, eventPublisher, internalConfig, bootstrap.Logger)
	dashboardUsecase := dashboard.NewDashboardUsecase(doctorRepository, appointmentRepository, patientRepository, bootstrap.Logger)

	// Payments worker
	worker := payments.NewWorker(bootstrap.Logger, internalConfig, lockerService, paymentUsecase, appointmentUsecase)
	worker.Start(context.Background())
	bootstrap.WorkerStop = worker.Stop

	// RBAC
	enforcer, err := casbin.NewEnforcer(internalConfig.App.RBACModelPath, internalConfig.App.RBACPolicyPath)
	if err != nil {
		return fmt.Errorf("load rbac policy: %w", err)
	}
	bootstrap.Logger.Info("RBAC policy loaded",
		zap.String("model", internalConfig.App.RBACModelPath),
		zap.String("policy", internalConfig.App.RBACPolicyPath),
	)

	// Delivery
	middlewares := middlewares.NewMiddlewares(bootstrap.Logger, sessionService, enforcer, internalConfig).
		WithSubjectLimiter(ratelimiter.NewSubjectLimiter(redisRepository, bootstrap.Logger))
	authController := controllers.NewAuthController(bootstrap.Logger, authUsecase)
	doctorController := controllers.NewDoctorController(bootstrap.Logger, doctorUsecase, approvalUsecase, appointmentUsecase)
	appointmentController := controllers.NewAppointmentController(bootstrap.Logger, appointmentUsecase)
	paymentController := controllers.NewPaymentController(bootstrap.Logger, paymentUsecase, internalConfig)
	adminController := controllers.NewAdminController(bootstrap.Logger, doctorUsecase, approvalUsecase, appointmentUsecase, dashboardUsecase)

	routers.SetupRoutes(
		bootstrap.Router,
		internalConfig,
		bootstrap.AccessLogger,
		middlewares,
		authController,
		doctorController,
		appointmentController,
		paymentController,
		adminController,
	)
	return nil
}
