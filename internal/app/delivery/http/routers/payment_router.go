package routers

import (
	"medibook-service/internal/app/delivery/http/controllers"
	"medibook-service/internal/app/delivery/http/middlewares"
	"medibook-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachPaymentRoutes(router chi.Router, middlewares *middlewares.Middlewares, paymentController *controllers.PaymentController) {
	router.Use(
		middlewares.Authenticate,
		middlewares.Authorize,
		middlewares.LimitPerSubject(constvars.RateLimitGroupPayment, middlewares.InternalConfig.App.PaymentAttemptsPerMinute),
	)
	router.Post("/{provider}/initiate", paymentController.InitiatePayment)
	router.Post("/{provider}/verify", paymentController.VerifyPayment)
}
