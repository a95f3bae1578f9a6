package dashboard

import (
	"context"
	"medibook-service/internal/app/models"
	"medibook-service/internal/app/services/core/fakes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDashboardUsecase_AdminDashboard(t *testing.T) {
	doctors := fakes.NewDoctorRepository()
	appointments := fakes.NewAppointmentRepository()
	patients := fakes.NewPatientRepository()

	doctors.Seed(&models.Doctor{Email: "a@example.com"})
	doctors.Seed(&models.Doctor{Email: "b@example.com"})
	patients.Seed(&models.Patient{Email: "p@example.com"})
	for i := int64(1); i <= 7; i++ {
		appointments.Seed(&models.Appointment{DocID: "d", UserID: "p", Date: i})
	}

	uc := NewDashboardUsecase(doctors, appointments, patients, zap.NewNop())
	dashboard, err := uc.AdminDashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), dashboard.Doctors)
	assert.Equal(t, int64(7), dashboard.Appointments)
	assert.Equal(t, int64(1), dashboard.Patients)
	require.Len(t, dashboard.LatestAppointments, 5)
	assert.Equal(t, int64(7), dashboard.LatestAppointments[0].Date)
	assert.Equal(t, int64(3), dashboard.LatestAppointments[4].Date)
}
