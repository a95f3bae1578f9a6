package routers

import (
	"medibook-service/internal/app/delivery/http/controllers"
	"medibook-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachDoctorRoutes(router chi.Router, middlewares *middlewares.Middlewares, doctorController *controllers.DoctorController) {
	router.Get("/", doctorController.ListPublicDoctors)
	router.With(middlewares.LoginRateLimiter().Limit).Post("/register", doctorController.RegisterDoctor)

	router.Group(func(r chi.Router) {
		r.Use(middlewares.Authenticate, middlewares.Authorize)
		r.Get("/me", doctorController.GetProfile)
		r.Put("/me", doctorController.UpdateProfile)
		r.Get("/me/dashboard", doctorController.Dashboard)
		r.Get("/me/appointments", doctorController.ListDoctorAppointments)
		r.Post("/{doctor_id}/availability", doctorController.ChangeAvailability)
	})
}
