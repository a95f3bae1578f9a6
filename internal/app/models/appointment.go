package models

import "medibook-service/internal/pkg/constvars"

type AppointmentState string

const (
	AppointmentStateBooked    AppointmentState = "booked"
	AppointmentStatePaid      AppointmentState = "paid"
	AppointmentStateCompleted AppointmentState = "completed"
	AppointmentStateCancelled AppointmentState = "cancelled"
)

type Appointment struct {
	ID          string          `json:"_id" bson:"_id,omitempty"`
	UserID      string          `json:"userId" bson:"userId"`
	DocID       string          `json:"docId" bson:"docId"`
	SlotDate    string          `json:"slotDate" bson:"slotDate"`
	SlotTime    string          `json:"slotTime" bson:"slotTime"`
	UserData    PatientSnapshot `json:"userData" bson:"userData"`
	DocData     DoctorSnapshot  `json:"docData" bson:"docData"`
	Amount      int64           `json:"amount" bson:"amount"`
	Date        int64           `json:"date" bson:"date"`
	Cancelled   bool            `json:"cancelled" bson:"cancelled"`
	Payment     bool            `json:"payment" bson:"payment"`
	IsCompleted bool            `json:"isCompleted" bson:"isCompleted"`
}

// State folds the three flags into one label. Cancelled and completed are terminal
// and take precedence over payment.
func (a *Appointment) State() AppointmentState {
	switch {
	case a.Cancelled:
		return AppointmentStateCancelled
	case a.IsCompleted:
		return AppointmentStateCompleted
	case a.Payment:
		return AppointmentStatePaid
	default:
		return AppointmentStateBooked
	}
}

// HoldsSlot reports whether the appointment still occupies its doctor's slot.
func (a *Appointment) HoldsSlot() bool {
	return !a.Cancelled
}

func (a *Appointment) IsTerminal() bool {
	return a.Cancelled || a.IsCompleted
}

// CanBeManagedBy applies the cancellation ownership rule: patients their own,
// doctors their own, admins any.
func (a *Appointment) CanBeManagedBy(session *Session) bool {
	if session == nil {
		return false
	}
	switch session.Role {
	case constvars.RoleAdmin:
		return true
	case constvars.RoleDoctor:
		return a.DocID == session.SubjectID
	case constvars.RolePatient:
		return a.UserID == session.SubjectID
	default:
		return false
	}
}
