package utils

import (
	"medibook-service/internal/pkg/dto/requests"
	"strings"
)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func SanitizeLoginRequest(input *requests.Login) {
	input.Email = normalizeEmail(input.Email)
}

func SanitizeRegisterPatientRequest(input *requests.RegisterPatient) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = normalizeEmail(input.Email)
	input.Phone = strings.TrimSpace(input.Phone)
}

func SanitizeRegisterDoctorRequest(input *requests.RegisterDoctor) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = normalizeEmail(input.Email)
	input.Speciality = strings.TrimSpace(input.Speciality)
	input.Degree = strings.TrimSpace(input.Degree)
	input.Experience = strings.TrimSpace(input.Experience)
	input.Address.Line1 = strings.TrimSpace(input.Address.Line1)
	input.Address.Line2 = strings.TrimSpace(input.Address.Line2)
}

// SanitizeBookAppointmentRequest only trims. Time labels are compared verbatim with
// the ones already in the ledger, so their case and spacing are left alone.
func SanitizeBookAppointmentRequest(input *requests.BookAppointment) {
	input.DoctorID = strings.TrimSpace(input.DoctorID)
	input.SlotDate = strings.TrimSpace(input.SlotDate)
	input.SlotTime = strings.TrimSpace(input.SlotTime)
}
