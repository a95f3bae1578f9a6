package routers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"medibook-service/internal/app/config"
	"medibook-service/internal/app/delivery/http/middlewares"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/dto/responses"
	"medibook-service/internal/pkg/exceptions"
	"medibook-service/internal/pkg/utils"

	"github.com/casbin/casbin/v2"
	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testSecret    = "test-secret"
	testPatientID = "64b7f0c2a1b2c3d4e5f60701"
	testDoctorID  = "64b7f0c2a1b2c3d4e5f60702"
	testApptID    = "64b7f0c2a1b2c3d4e5f60703"
)

var testSessions = map[string]*models.Session{
	"patient-session": {SessionID: "patient-session", Role: constvars.RolePatient, SubjectID: testPatientID},
	"doctor-session":  {SessionID: "doctor-session", Role: constvars.RoleDoctor, SubjectID: testDoctorID},
	"admin-session":   {SessionID: "admin-session", Role: constvars.RoleAdmin, SubjectID: "admin"},
}

type stubSessionService struct{}

func (stubSessionService) CreateSession(ctx context.Context, role, subjectID, email string) (*models.Session, error) {
	return nil, nil
}

func (stubSessionService) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	session, ok := testSessions[sessionID]
	if !ok {
		return nil, exceptions.ErrInvalidSession(nil)
	}
	return session, nil
}

func (stubSessionService) DeleteSession(ctx context.Context, sessionID string) error {
	return nil
}

func newTestMiddlewares(t *testing.T) *middlewares.Middlewares {
	t.Helper()
	enforcer, err := casbin.NewEnforcer("../../../../../resources/rbac_model.conf", "../../../../../resources/rbac_policy.csv")
	require.NoError(t, err)

	return middlewares.NewMiddlewares(zap.NewNop(), stubSessionService{}, enforcer, &config.InternalConfig{
		App: config.App{EndpointPrefix: "api", Version: "v1", LoginAttemptsPerMinute: 100},
		JWT: config.AppJWT{Secret: testSecret, ExpTimeInHour: 1},
	})
}

func bearerFor(t *testing.T, sessionID string) string {
	t.Helper()
	token, err := utils.GenerateSessionJWT(sessionID, testSecret, time.Now().Add(time.Hour))
	require.NoError(t, err)
	return "Bearer " + token
}

type MockAuthUsecase struct {
	mock.Mock
}

func (m *MockAuthUsecase) RegisterPatient(ctx context.Context, request *requests.RegisterPatient) (*responses.Login, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.Login), args.Error(1)
}

func (m *MockAuthUsecase) LoginPatient(ctx context.Context, request *requests.Login) (*responses.Login, error) {
	return m.login("LoginPatient", ctx, request)
}

func (m *MockAuthUsecase) LoginDoctor(ctx context.Context, request *requests.Login) (*responses.Login, error) {
	return m.login("LoginDoctor", ctx, request)
}

func (m *MockAuthUsecase) LoginAdmin(ctx context.Context, request *requests.Login) (*responses.Login, error) {
	return m.login("LoginAdmin", ctx, request)
}

func (m *MockAuthUsecase) login(method string, ctx context.Context, request *requests.Login) (*responses.Login, error) {
	args := m.MethodCalled(method, ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.Login), args.Error(1)
}

func (m *MockAuthUsecase) Logout(ctx context.Context, session *models.Session) error {
	return m.Called(ctx, session).Error(0)
}

type MockAppointmentUsecase struct {
	mock.Mock
}

func (m *MockAppointmentUsecase) BookAppointment(ctx context.Context, session *models.Session, request *requests.BookAppointment) (*models.Appointment, error) {
	args := m.Called(ctx, session, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}

func (m *MockAppointmentUsecase) CancelAppointment(ctx context.Context, session *models.Session, appointmentID string) error {
	return m.Called(ctx, session, appointmentID).Error(0)
}

func (m *MockAppointmentUsecase) CompleteAppointment(ctx context.Context, session *models.Session, appointmentID string) error {
	return m.Called(ctx, session, appointmentID).Error(0)
}

func (m *MockAppointmentUsecase) PurgeAppointment(ctx context.Context, session *models.Session, appointmentID string) error {
	return m.Called(ctx, session, appointmentID).Error(0)
}

func (m *MockAppointmentUsecase) ListPatientAppointments(ctx context.Context, session *models.Session) ([]models.Appointment, error) {
	args := m.Called(ctx, session)
	return args.Get(0).([]models.Appointment), args.Error(1)
}

func (m *MockAppointmentUsecase) ListDoctorAppointments(ctx context.Context, session *models.Session) ([]models.Appointment, error) {
	args := m.Called(ctx, session)
	return args.Get(0).([]models.Appointment), args.Error(1)
}

func (m *MockAppointmentUsecase) ListAllAppointments(ctx context.Context) ([]models.Appointment, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Appointment), args.Error(1)
}

func (m *MockAppointmentUsecase) RepairSlotLedgers(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockPaymentUsecase struct {
	mock.Mock
}

func (m *MockPaymentUsecase) InitiatePayment(ctx context.Context, session *models.Session, provider string, request *requests.InitiatePayment) (*responses.PaymentInitiation, error) {
	args := m.Called(ctx, session, provider, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.PaymentInitiation), args.Error(1)
}

func (m *MockPaymentUsecase) Reconcile(ctx context.Context, provider, token, claimedAppointmentID string) (*responses.PaymentReconciliation, error) {
	args := m.Called(ctx, provider, token, claimedAppointmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.PaymentReconciliation), args.Error(1)
}

func (m *MockPaymentUsecase) SweepPendingPayments(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockApprovalUsecase struct {
	mock.Mock
}

func (m *MockApprovalUsecase) RegisterDoctor(ctx context.Context, request *requests.RegisterDoctor) (string, error) {
	args := m.Called(ctx, request)
	return args.String(0), args.Error(1)
}

func (m *MockApprovalUsecase) AddDoctor(ctx context.Context, request *requests.RegisterDoctor) (string, error) {
	args := m.Called(ctx, request)
	return args.String(0), args.Error(1)
}

func (m *MockApprovalUsecase) ApproveDoctor(ctx context.Context, doctorID string) error {
	return m.Called(ctx, doctorID).Error(0)
}

func (m *MockApprovalUsecase) RejectDoctor(ctx context.Context, doctorID string) error {
	return m.Called(ctx, doctorID).Error(0)
}

func (m *MockApprovalUsecase) DeleteDoctor(ctx context.Context, doctorID string) error {
	return m.Called(ctx, doctorID).Error(0)
}

func (m *MockApprovalUsecase) ListPendingDoctors(ctx context.Context) ([]models.Doctor, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Doctor), args.Error(1)
}

type MockDoctorUsecase struct {
	mock.Mock
}

func (m *MockDoctorUsecase) ListPublicDoctors(ctx context.Context) ([]responses.PublicDoctor, error) {
	args := m.Called(ctx)
	return args.Get(0).([]responses.PublicDoctor), args.Error(1)
}

func (m *MockDoctorUsecase) ListAllDoctors(ctx context.Context) ([]models.Doctor, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Doctor), args.Error(1)
}

func (m *MockDoctorUsecase) GetProfile(ctx context.Context, session *models.Session) (*models.Doctor, error) {
	args := m.Called(ctx, session)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Doctor), args.Error(1)
}

func (m *MockDoctorUsecase) UpdateProfile(ctx context.Context, session *models.Session, request *requests.UpdateDoctorProfile) (*models.Doctor, error) {
	args := m.Called(ctx, session, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Doctor), args.Error(1)
}

func (m *MockDoctorUsecase) ChangeAvailability(ctx context.Context, session *models.Session, doctorID string) (*models.Doctor, error) {
	args := m.Called(ctx, session, doctorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Doctor), args.Error(1)
}

func (m *MockDoctorUsecase) Dashboard(ctx context.Context, session *models.Session) (*responses.DoctorDashboard, error) {
	args := m.Called(ctx, session)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.DoctorDashboard), args.Error(1)
}

type MockDashboardUsecase struct {
	mock.Mock
}

func (m *MockDashboardUsecase) AdminDashboard(ctx context.Context) (*responses.AdminDashboard, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.AdminDashboard), args.Error(1)
}

func mountAt(path string, attach func(chi.Router)) *chi.Mux {
	router := chi.NewRouter()
	router.Route("/api/v1"+path, attach)
	return router
}

func jsonBody(t *testing.T, v interface{}) *bytes.Reader {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(raw)
}

func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}
