package routers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"medibook-service/internal/app/delivery/http/controllers"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/dto/responses"
	"medibook-service/internal/pkg/exceptions"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func newDoctorRouter(t *testing.T) (*chi.Mux, *MockDoctorUsecase, *MockApprovalUsecase, *MockAppointmentUsecase) {
	doctors := new(MockDoctorUsecase)
	approval := new(MockApprovalUsecase)
	appointments := new(MockAppointmentUsecase)
	m := newTestMiddlewares(t)
	controller := controllers.NewDoctorController(zap.NewNop(), doctors, approval, appointments)
	return mountAt("/doctors", func(r chi.Router) {
		attachDoctorRoutes(r, m, controller)
	}), doctors, approval, appointments
}

func TestDoctorRouter_PublicList(t *testing.T) {
	router, doctors, _, _ := newDoctorRouter(t)
	doctors.On("ListPublicDoctors", mock.Anything).Return([]responses.PublicDoctor{{ID: testDoctorID, Name: "Dr. Richard James"}}, nil)

	rr := serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/doctors", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Dr. Richard James")
	assert.NotContains(t, rr.Body.String(), "email")
}

func TestDoctorRouter_SelfRegister(t *testing.T) {
	router, _, approval, _ := newDoctorRouter(t)
	approval.On("RegisterDoctor", mock.Anything, mock.AnythingOfType("*requests.RegisterDoctor")).Return(testDoctorID, nil)

	rr := serve(router, httptest.NewRequest(http.MethodPost, "/api/v1/doctors/register", jsonBody(t, requests.RegisterDoctor{
		Name:       "Dr. New",
		Email:      "new@clinic.com",
		Password:   "password123",
		Speciality: "Dermatologist",
		Degree:     "MBBS",
		Experience: "2 Years",
		About:      "About",
		Fees:       30,
	})))

	assert.Equal(t, http.StatusCreated, rr.Code)
	approval.AssertExpectations(t)
}

func TestDoctorRouter_Me(t *testing.T) {
	t.Run("doctor profile", func(t *testing.T) {
		router, doctors, _, _ := newDoctorRouter(t)
		doctors.On("GetProfile", mock.Anything, testSessions["doctor-session"]).Return(&models.Doctor{ID: testDoctorID, Name: "Dr. Me"}, nil)

		rr := serve(router, authed(t, httptest.NewRequest(http.MethodGet, "/api/v1/doctors/me", nil), "doctor-session"))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Dr. Me")
	})

	t.Run("patients cannot see doctor pages", func(t *testing.T) {
		router, doctors, _, _ := newDoctorRouter(t)

		rr := serve(router, authed(t, httptest.NewRequest(http.MethodGet, "/api/v1/doctors/me/dashboard", nil), "patient-session"))

		assert.Equal(t, http.StatusForbidden, rr.Code)
		doctors.AssertNotCalled(t, "Dashboard", mock.Anything, mock.Anything)
	})

	t.Run("update profile", func(t *testing.T) {
		router, doctors, _, _ := newDoctorRouter(t)
		fees := int64(75)
		doctors.On("UpdateProfile", mock.Anything, testSessions["doctor-session"], mock.MatchedBy(func(request *requests.UpdateDoctorProfile) bool {
			return request.Fees != nil && *request.Fees == fees
		})).Return(&models.Doctor{ID: testDoctorID, Fees: fees}, nil)

		rr := serve(router, authed(t, httptest.NewRequest(http.MethodPut, "/api/v1/doctors/me", jsonBody(t, map[string]int64{"fees": fees})), "doctor-session"))

		assert.Equal(t, http.StatusOK, rr.Code)
		doctors.AssertExpectations(t)
	})

	t.Run("own appointments", func(t *testing.T) {
		router, _, _, appointments := newDoctorRouter(t)
		appointments.On("ListDoctorAppointments", mock.Anything, testSessions["doctor-session"]).Return([]models.Appointment{}, nil)

		rr := serve(router, authed(t, httptest.NewRequest(http.MethodGet, "/api/v1/doctors/me/appointments", nil), "doctor-session"))

		assert.Equal(t, http.StatusOK, rr.Code)
		appointments.AssertExpectations(t)
	})
}

func TestDoctorRouter_ChangeAvailability(t *testing.T) {
	t.Run("doctor toggles someone else", func(t *testing.T) {
		router, doctors, _, _ := newDoctorRouter(t)
		other := "64b7f0c2a1b2c3d4e5f60799"
		doctors.On("ChangeAvailability", mock.Anything, testSessions["doctor-session"], other).
			Return(nil, exceptions.ErrNotAuthorizedForDoctor(nil, testDoctorID, "doctor", other))

		rr := serve(router, authed(t, httptest.NewRequest(http.MethodPost, "/api/v1/doctors/"+other+"/availability", nil), "doctor-session"))

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("admin toggles", func(t *testing.T) {
		router, doctors, _, _ := newDoctorRouter(t)
		doctors.On("ChangeAvailability", mock.Anything, testSessions["admin-session"], testDoctorID).
			Return(&models.Doctor{ID: testDoctorID, Available: false}, nil)

		rr := serve(router, authed(t, httptest.NewRequest(http.MethodPost, "/api/v1/doctors/"+testDoctorID+"/availability", nil), "admin-session"))

		assert.Equal(t, http.StatusOK, rr.Code)
	})
}
