package routers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"medibook-service/internal/app/delivery/http/controllers"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/exceptions"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func newAppointmentRouter(t *testing.T, usecase *MockAppointmentUsecase) *chi.Mux {
	m := newTestMiddlewares(t)
	controller := controllers.NewAppointmentController(zap.NewNop(), usecase)
	return mountAt("/appointments", func(r chi.Router) {
		attachAppointmentRoutes(r, m, controller)
	})
}

func authed(t *testing.T, req *http.Request, sessionID string) *http.Request {
	req.Header.Set(constvars.HeaderAuthorization, bearerFor(t, sessionID))
	return req
}

func TestAppointmentRouter_Book(t *testing.T) {
	booking := requests.BookAppointment{DoctorID: testDoctorID, SlotDate: "2025_0_30", SlotTime: "10:00 AM"}

	t.Run("patient books", func(t *testing.T) {
		usecase := new(MockAppointmentUsecase)
		usecase.On("BookAppointment", mock.Anything, testSessions["patient-session"], mock.AnythingOfType("*requests.BookAppointment")).
			Return(&models.Appointment{ID: testApptID, DocID: testDoctorID, SlotDate: booking.SlotDate, SlotTime: booking.SlotTime}, nil)

		router := newAppointmentRouter(t, usecase)
		rr := serve(router, authed(t, httptest.NewRequest(http.MethodPost, "/api/v1/appointments", jsonBody(t, booking)), "patient-session"))

		assert.Equal(t, http.StatusCreated, rr.Code)
		usecase.AssertExpectations(t)
	})

	t.Run("doctor is forbidden by policy", func(t *testing.T) {
		usecase := new(MockAppointmentUsecase)
		router := newAppointmentRouter(t, usecase)

		rr := serve(router, authed(t, httptest.NewRequest(http.MethodPost, "/api/v1/appointments", jsonBody(t, booking)), "doctor-session"))

		assert.Equal(t, http.StatusForbidden, rr.Code)
		usecase.AssertNotCalled(t, "BookAppointment", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("slot taken", func(t *testing.T) {
		usecase := new(MockAppointmentUsecase)
		usecase.On("BookAppointment", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, exceptions.ErrSlotAlreadyBooked(nil, booking.SlotDate, booking.SlotTime))

		router := newAppointmentRouter(t, usecase)
		rr := serve(router, authed(t, httptest.NewRequest(http.MethodPost, "/api/v1/appointments", jsonBody(t, booking)), "patient-session"))

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("bad slot time rejected before usecase", func(t *testing.T) {
		usecase := new(MockAppointmentUsecase)
		router := newAppointmentRouter(t, usecase)
		bad := booking
		bad.SlotTime = "25:99"

		rr := serve(router, authed(t, httptest.NewRequest(http.MethodPost, "/api/v1/appointments", jsonBody(t, bad)), "patient-session"))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		usecase.AssertNotCalled(t, "BookAppointment", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAppointmentRouter_Transitions(t *testing.T) {
	t.Run("patient cancels", func(t *testing.T) {
		usecase := new(MockAppointmentUsecase)
		usecase.On("CancelAppointment", mock.Anything, testSessions["patient-session"], testApptID).Return(nil)
		router := newAppointmentRouter(t, usecase)

		rr := serve(router, authed(t, httptest.NewRequest(http.MethodPost, "/api/v1/appointments/"+testApptID+"/cancel", nil), "patient-session"))

		assert.Equal(t, http.StatusOK, rr.Code)
		usecase.AssertExpectations(t)
	})

	t.Run("cancel of someone else's appointment", func(t *testing.T) {
		usecase := new(MockAppointmentUsecase)
		usecase.On("CancelAppointment", mock.Anything, mock.Anything, testApptID).
			Return(exceptions.ErrNotAuthorizedForAppointment(nil, testPatientID, constvars.RolePatient, testApptID))
		router := newAppointmentRouter(t, usecase)

		rr := serve(router, authed(t, httptest.NewRequest(http.MethodPost, "/api/v1/appointments/"+testApptID+"/cancel", nil), "patient-session"))

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		usecase := new(MockAppointmentUsecase)
		router := newAppointmentRouter(t, usecase)

		rr := serve(router, authed(t, httptest.NewRequest(http.MethodPost, "/api/v1/appointments/not-an-id/cancel", nil), "admin-session"))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("only doctors complete", func(t *testing.T) {
		usecase := new(MockAppointmentUsecase)
		usecase.On("CompleteAppointment", mock.Anything, testSessions["doctor-session"], testApptID).Return(nil)
		router := newAppointmentRouter(t, usecase)

		rr := serve(router, authed(t, httptest.NewRequest(http.MethodPost, "/api/v1/appointments/"+testApptID+"/complete", nil), "patient-session"))
		assert.Equal(t, http.StatusForbidden, rr.Code)

		rr = serve(router, authed(t, httptest.NewRequest(http.MethodPost, "/api/v1/appointments/"+testApptID+"/complete", nil), "doctor-session"))
		assert.Equal(t, http.StatusOK, rr.Code)
		usecase.AssertExpectations(t)
	})

	t.Run("patient lists own", func(t *testing.T) {
		usecase := new(MockAppointmentUsecase)
		usecase.On("ListPatientAppointments", mock.Anything, testSessions["patient-session"]).Return([]models.Appointment{{ID: testApptID}}, nil)
		router := newAppointmentRouter(t, usecase)

		rr := serve(router, authed(t, httptest.NewRequest(http.MethodGet, "/api/v1/appointments", nil), "patient-session"))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), testApptID)
	})
}
