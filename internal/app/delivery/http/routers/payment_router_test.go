package routers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"medibook-service/internal/app/config"
	"medibook-service/internal/app/delivery/http/controllers"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/dto/responses"
	"medibook-service/internal/pkg/exceptions"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func newPaymentRouter(t *testing.T, usecase *MockPaymentUsecase) *chi.Mux {
	m := newTestMiddlewares(t)
	controller := controllers.NewPaymentController(zap.NewNop(), usecase, &config.InternalConfig{
		App: config.App{PaymentGatewayRequestTimeoutInSeconds: 5},
	})
	return mountAt("/payments", func(r chi.Router) {
		attachPaymentRoutes(r, m, controller)
	})
}

func TestPaymentRouter_Initiate(t *testing.T) {
	usecase := new(MockPaymentUsecase)
	usecase.On("InitiatePayment", mock.Anything, testSessions["patient-session"], constvars.PaymentProviderKhalti, mock.MatchedBy(func(request *requests.InitiatePayment) bool {
		return request.AppointmentID == testApptID
	})).Return(&responses.PaymentInitiation{Provider: constvars.PaymentProviderKhalti, RedirectURL: "https://pay.example/abc"}, nil)

	router := newPaymentRouter(t, usecase)
	rr := serve(router, authed(t, httptest.NewRequest(http.MethodPost, "/api/v1/payments/Khalti/initiate", jsonBody(t, requests.InitiatePayment{AppointmentID: testApptID})), "patient-session"))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "https://pay.example/abc")
	usecase.AssertExpectations(t)
}

func TestPaymentRouter_Verify(t *testing.T) {
	t.Run("paid", func(t *testing.T) {
		usecase := new(MockPaymentUsecase)
		usecase.On("Reconcile", mock.Anything, constvars.PaymentProviderStripe, "cs_test_1", testApptID).
			Return(&responses.PaymentReconciliation{AppointmentID: testApptID, Payment: true}, nil)

		router := newPaymentRouter(t, usecase)
		rr := serve(router, authed(t, httptest.NewRequest(http.MethodPost, "/api/v1/payments/stripe/verify", jsonBody(t, requests.VerifyPayment{Token: " cs_test_1 ", AppointmentID: testApptID})), "patient-session"))

		assert.Equal(t, http.StatusOK, rr.Code)
		usecase.AssertExpectations(t)
	})

	t.Run("claimed appointment differs from provider", func(t *testing.T) {
		usecase := new(MockPaymentUsecase)
		usecase.On("Reconcile", mock.Anything, constvars.PaymentProviderKhalti, "pidx-1", testApptID).
			Return(nil, exceptions.ErrCorrelationMismatch(nil, testApptID, "other"))

		router := newPaymentRouter(t, usecase)
		rr := serve(router, authed(t, httptest.NewRequest(http.MethodPost, "/api/v1/payments/khalti/verify", jsonBody(t, requests.VerifyPayment{Token: "pidx-1", AppointmentID: testApptID})), "patient-session"))

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("not completed", func(t *testing.T) {
		usecase := new(MockPaymentUsecase)
		usecase.On("Reconcile", mock.Anything, constvars.PaymentProviderKhalti, "pidx-2", "").
			Return(nil, exceptions.ErrPaymentNotCompleted(nil, "Pending", "pidx-2"))

		router := newPaymentRouter(t, usecase)
		rr := serve(router, authed(t, httptest.NewRequest(http.MethodPost, "/api/v1/payments/khalti/verify", jsonBody(t, requests.VerifyPayment{Token: "pidx-2"})), "patient-session"))

		assert.Equal(t, http.StatusPaymentRequired, rr.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		usecase := new(MockPaymentUsecase)
		router := newPaymentRouter(t, usecase)
		rr := serve(router, authed(t, httptest.NewRequest(http.MethodPost, "/api/v1/payments/khalti/verify", jsonBody(t, requests.VerifyPayment{})), "patient-session"))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		usecase.AssertNotCalled(t, "Reconcile", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
