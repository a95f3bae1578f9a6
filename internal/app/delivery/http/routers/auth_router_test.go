package routers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

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

func newAuthRouter(t *testing.T, usecase *MockAuthUsecase) *chi.Mux {
	m := newTestMiddlewares(t)
	controller := controllers.NewAuthController(zap.NewNop(), usecase)
	return mountAt("/auth", func(r chi.Router) {
		attachAuthRoutes(r, m, controller)
	})
}

func TestAuthRouter_RegisterPatient(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		usecase := new(MockAuthUsecase)
		usecase.On("RegisterPatient", mock.Anything, mock.MatchedBy(func(request *requests.RegisterPatient) bool {
			return request.Email == "jane@example.com"
		})).Return(&responses.Login{Token: "token", Role: constvars.RolePatient}, nil)

		router := newAuthRouter(t, usecase)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/patients/register", jsonBody(t, requests.RegisterPatient{
			Name:     "Jane",
			Email:    "  Jane@Example.com ",
			Password: "password123",
		}))

		rr := serve(router, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Contains(t, rr.Body.String(), `"token":"token"`)
		usecase.AssertExpectations(t)
	})

	t.Run("short password never reaches usecase", func(t *testing.T) {
		usecase := new(MockAuthUsecase)
		router := newAuthRouter(t, usecase)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/patients/register", jsonBody(t, requests.RegisterPatient{
			Name:     "Jane",
			Email:    "jane@example.com",
			Password: "short",
		}))

		rr := serve(router, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		usecase.AssertNotCalled(t, "RegisterPatient", mock.Anything, mock.Anything)
	})

	t.Run("malformed json", func(t *testing.T) {
		usecase := new(MockAuthUsecase)
		router := newAuthRouter(t, usecase)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/patients/register", strings.NewReader("{"))

		rr := serve(router, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestAuthRouter_Logins(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		method string
	}{
		{"patient", "/api/v1/auth/patients/login", "LoginPatient"},
		{"doctor", "/api/v1/auth/doctors/login", "LoginDoctor"},
		{"admin", "/api/v1/auth/admin/login", "LoginAdmin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			usecase := new(MockAuthUsecase)
			usecase.On(tt.method, mock.Anything, mock.AnythingOfType("*requests.Login")).Return(&responses.Login{Token: "token"}, nil)

			router := newAuthRouter(t, usecase)
			rr := serve(router, httptest.NewRequest(http.MethodPost, tt.path, jsonBody(t, requests.Login{Email: "a@b.co", Password: "secret"})))

			assert.Equal(t, http.StatusOK, rr.Code)
			usecase.AssertExpectations(t)
		})
	}

	t.Run("wrong password", func(t *testing.T) {
		usecase := new(MockAuthUsecase)
		usecase.On("LoginDoctor", mock.Anything, mock.Anything).Return(nil, exceptions.ErrInvalidUsernameOrPassword(nil))

		router := newAuthRouter(t, usecase)
		rr := serve(router, httptest.NewRequest(http.MethodPost, "/api/v1/auth/doctors/login", jsonBody(t, requests.Login{Email: "a@b.co", Password: "nope"})))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestAuthRouter_Logout(t *testing.T) {
	t.Run("requires a token", func(t *testing.T) {
		usecase := new(MockAuthUsecase)
		router := newAuthRouter(t, usecase)

		rr := serve(router, httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		usecase.AssertNotCalled(t, "Logout", mock.Anything, mock.Anything)
	})

	t.Run("deletes the session", func(t *testing.T) {
		usecase := new(MockAuthUsecase)
		usecase.On("Logout", mock.Anything, testSessions["doctor-session"]).Return(nil)
		router := newAuthRouter(t, usecase)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
		req.Header.Set(constvars.HeaderAuthorization, bearerFor(t, "doctor-session"))
		rr := serve(router, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		usecase.AssertExpectations(t)
	})

	t.Run("unknown session", func(t *testing.T) {
		usecase := new(MockAuthUsecase)
		router := newAuthRouter(t, usecase)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
		req.Header.Set(constvars.HeaderAuthorization, bearerFor(t, "expired-session"))
		rr := serve(router, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
