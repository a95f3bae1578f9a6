package constvars

const (
	URLParamDoctorID      = "doctor_id"
	URLParamAppointmentID = "appointment_id"
	URLParamProvider      = "provider"
)
