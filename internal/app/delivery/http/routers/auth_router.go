package routers

import (
	"medibook-service/internal/app/delivery/http/controllers"
	"medibook-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachAuthRoutes(router chi.Router, middlewares *middlewares.Middlewares, authController *controllers.AuthController) {
	loginLimiter := middlewares.LoginRateLimiter()

	router.With(loginLimiter.Limit).Post("/patients/register", authController.RegisterPatient)
	router.With(loginLimiter.Limit).Post("/patients/login", authController.LoginPatient)
	router.With(loginLimiter.Limit).Post("/doctors/login", authController.LoginDoctor)
	router.With(loginLimiter.Limit).Post("/admin/login", authController.LoginAdmin)
	router.With(middlewares.Authenticate, middlewares.Authorize).Post("/logout", authController.Logout)
}
