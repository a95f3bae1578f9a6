package routers

import (
	"medibook-service/internal/app/delivery/http/controllers"
	"medibook-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachAdminRoutes(router chi.Router, middlewares *middlewares.Middlewares, adminController *controllers.AdminController) {
	router.Use(middlewares.Authenticate, middlewares.Authorize)
	router.Get("/doctors", adminController.ListAllDoctors)
	router.Get("/doctors/pending", adminController.ListPendingDoctors)
	router.Post("/doctors", adminController.AddDoctor)
	router.Post("/doctors/{doctor_id}/approve", adminController.ApproveDoctor)
	router.Post("/doctors/{doctor_id}/reject", adminController.RejectDoctor)
	router.Delete("/doctors/{doctor_id}", adminController.DeleteDoctor)
	router.Get("/appointments", adminController.ListAllAppointments)
	router.Delete("/appointments/{appointment_id}", adminController.PurgeAppointment)
	router.Get("/dashboard", adminController.AdminDashboard)
}
