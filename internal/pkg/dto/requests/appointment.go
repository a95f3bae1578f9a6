package requests

type BookAppointment struct {
	DoctorID string `json:"docId" validate:"required"`
	SlotDate string `json:"slotDate" validate:"required,date_key"`
	SlotTime string `json:"slotTime" validate:"required,slot_time"`
}
