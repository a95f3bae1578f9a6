package constvars

const (
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"

	// Auth
	LoginSuccess           = "successfully login"
	LogoutSuccess          = "successfully logout"
	PatientRegisterSuccess = "patient registered successfully"

	// Doctors
	DoctorRegisterSuccess           = "doctor registration submitted, waiting for approval"
	DoctorCreatedSuccess            = "doctor added successfully"
	DoctorApprovedSuccess           = "doctor approved successfully"
	DoctorRejectedSuccess           = "doctor application rejected"
	DoctorDeletedSuccess            = "doctor deleted successfully"
	DoctorListSuccess               = "get doctors successfully"
	DoctorProfileSuccess            = "get doctor profile successfully"
	DoctorProfileUpdatedSuccess     = "doctor profile updated successfully"
	DoctorAvailabilityChangeSuccess = "availability changed successfully"
	DashboardSuccess                = "get dashboard successfully"

	// Appointments
	AppointmentBookedSuccess    = "appointment booked successfully"
	AppointmentCancelledSuccess = "appointment cancelled successfully"
	AppointmentCompletedSuccess = "appointment completed successfully"
	AppointmentPurgedSuccess    = "appointment deleted successfully"
	AppointmentListSuccess      = "get appointments successfully"

	// Payments
	PaymentInitiatedSuccess  = "payment initiated successfully"
	PaymentReconciledSuccess = "payment successful and appointment updated"
)
