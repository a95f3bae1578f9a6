package utils

import (
	"medibook-service/internal/pkg/dto/requests"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeLoginRequest(t *testing.T) {
	t.Run("Email Sanitization", func(t *testing.T) {
		request := &requests.Login{Email: "  TEST@EXAMPLE.COM  ", Password: " secret "}

		SanitizeLoginRequest(request)

		assert.Equal(t, "test@example.com", request.Email, "email should be lowercase and trimmed")
		assert.Equal(t, " secret ", request.Password, "password must be left untouched")
	})
}

func TestSanitizeRegisterDoctorRequest(t *testing.T) {
	request := &requests.RegisterDoctor{
		Name:       "  Dr. Jane  ",
		Email:      " Jane@Clinic.ORG ",
		Speciality: " Dermatologist ",
		Address:    requests.Address{Line1: " 1 Main St ", Line2: " Kathmandu "},
	}

	SanitizeRegisterDoctorRequest(request)

	assert.Equal(t, "Dr. Jane", request.Name)
	assert.Equal(t, "jane@clinic.org", request.Email)
	assert.Equal(t, "Dermatologist", request.Speciality)
	assert.Equal(t, "1 Main St", request.Address.Line1)
	assert.Equal(t, "Kathmandu", request.Address.Line2)
}

func TestSanitizeBookAppointmentRequest(t *testing.T) {
	t.Run("Trims Without Changing Labels", func(t *testing.T) {
		request := &requests.BookAppointment{DoctorID: " abc ", SlotDate: " 2025_5_10 ", SlotTime: " 10:00AM "}

		SanitizeBookAppointmentRequest(request)

		assert.Equal(t, "abc", request.DoctorID)
		assert.Equal(t, "2025_5_10", request.SlotDate)
		assert.Equal(t, "10:00AM", request.SlotTime)
	})
}
