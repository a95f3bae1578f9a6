package responses

import "medibook-service/internal/app/models"

type DoctorDashboard struct {
	Earnings           int64                `json:"earnings"`
	Appointments       int                  `json:"appointments"`
	Patients           int                  `json:"patients"`
	LatestAppointments []models.Appointment `json:"latestAppointments"`
}

type AdminDashboard struct {
	Doctors            int64                `json:"doctors"`
	Appointments       int64                `json:"appointments"`
	Patients           int64                `json:"patients"`
	LatestAppointments []models.Appointment `json:"latestAppointments"`
}
