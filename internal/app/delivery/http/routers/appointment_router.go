package routers

import (
	"medibook-service/internal/app/delivery/http/controllers"
	"medibook-service/internal/app/delivery/http/middlewares"
	"medibook-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachAppointmentRoutes(router chi.Router, middlewares *middlewares.Middlewares, appointmentController *controllers.AppointmentController) {
	router.Use(middlewares.Authenticate, middlewares.Authorize)
	router.With(middlewares.LimitPerSubject(
		constvars.RateLimitGroupBooking,
		middlewares.InternalConfig.App.BookingAttemptsPerMinute,
	)).Post("/", appointmentController.BookAppointment)
	router.Get("/", appointmentController.ListPatientAppointments)
	router.Post("/{appointment_id}/cancel", appointmentController.CancelAppointment)
	router.Post("/{appointment_id}/complete", appointmentController.CompleteAppointment)
}
