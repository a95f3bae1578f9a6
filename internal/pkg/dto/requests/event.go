package requests

import "time"

type DomainEvent struct {
	Type          string    `json:"type"`
	AppointmentID string    `json:"appointment_id,omitempty"`
	DoctorID      string    `json:"doctor_id,omitempty"`
	PatientID     string    `json:"patient_id,omitempty"`
	SlotDate      string    `json:"slot_date,omitempty"`
	SlotTime      string    `json:"slot_time,omitempty"`
	Amount        int64     `json:"amount,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}
