package auth

import (
	"context"
	"medibook-service/internal/app/config"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/dto/responses"
	"medibook-service/internal/pkg/exceptions"
	"medibook-service/internal/pkg/utils"
	"strings"

	"go.uber.org/zap"
)

type authUsecase struct {
	PatientRepository contracts.PatientRepository
	DoctorRepository  contracts.DoctorRepository
	SessionService    contracts.SessionService
	InternalConfig    *config.InternalConfig
	Log               *zap.Logger
}

func NewAuthUsecase(
	patientRepository contracts.PatientRepository,
	doctorRepository contracts.DoctorRepository,
	sessionService contracts.SessionService,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.AuthUsecase {
	return &authUsecase{
		PatientRepository: patientRepository,
		DoctorRepository:  doctorRepository,
		SessionService:    sessionService,
		InternalConfig:    internalConfig,
		Log:               logger,
	}
}

func (uc *authUsecase) RegisterPatient(ctx context.Context, request *requests.RegisterPatient) (*responses.Login, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("authUsecase.RegisterPatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEmailKey, request.Email),
	)

	existing, err := uc.PatientRepository.FindByEmail(ctx, request.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, exceptions.ErrEmailAlreadyExist(nil)
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, exceptions.ErrHashPassword(err)
	}

	patient := &models.Patient{
		Name:     request.Name,
		Email:    request.Email,
		Password: hashedPassword,
		Phone:    request.Phone,
	}
	patientID, err := uc.PatientRepository.CreatePatient(ctx, patient)
	if err != nil {
		uc.Log.Error("authUsecase.RegisterPatient error creating patient",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	return uc.issueSession(ctx, constvars.RolePatient, patientID, request.Email)
}

func (uc *authUsecase) LoginPatient(ctx context.Context, request *requests.Login) (*responses.Login, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("authUsecase.LoginPatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	patient, err := uc.PatientRepository.FindByEmail(ctx, request.Email)
	if err != nil {
		return nil, err
	}
	if patient == nil || !utils.CheckPasswordHash(request.Password, patient.Password) {
		uc.rejectLogin(requestID, constvars.RolePatient, request.Email)
		return nil, exceptions.ErrInvalidUsernameOrPassword(nil)
	}

	return uc.issueSession(ctx, constvars.RolePatient, patient.ID, patient.Email)
}

// LoginDoctor lets unapproved doctors in so they can see their application status.
func (uc *authUsecase) LoginDoctor(ctx context.Context, request *requests.Login) (*responses.Login, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("authUsecase.LoginDoctor called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	doctor, err := uc.DoctorRepository.FindByEmail(ctx, request.Email)
	if err != nil {
		return nil, err
	}
	if doctor == nil || !utils.CheckPasswordHash(request.Password, doctor.Password) {
		uc.rejectLogin(requestID, constvars.RoleDoctor, request.Email)
		return nil, exceptions.ErrInvalidUsernameOrPassword(nil)
	}

	return uc.issueSession(ctx, constvars.RoleDoctor, doctor.ID, doctor.Email)
}

func (uc *authUsecase) LoginAdmin(ctx context.Context, request *requests.Login) (*responses.Login, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("authUsecase.LoginAdmin called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	admin := uc.InternalConfig.Admin
	if admin.Email == "" || admin.PasswordHash == "" {
		return nil, exceptions.ErrAdminCredentialMisconfigured(nil)
	}
	if !strings.EqualFold(request.Email, admin.Email) || !utils.CheckPasswordHash(request.Password, admin.PasswordHash) {
		uc.rejectLogin(requestID, constvars.RoleAdmin, request.Email)
		return nil, exceptions.ErrInvalidUsernameOrPassword(nil)
	}

	return uc.issueSession(ctx, constvars.RoleAdmin, constvars.RoleAdmin, admin.Email)
}

func (uc *authUsecase) Logout(ctx context.Context, session *models.Session) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("authUsecase.Logout called",
		append([]zap.Field{zap.String(constvars.LoggingRequestIDKey, requestID)}, utils.SessionFields(session)...)...,
	)

	if session == nil {
		return exceptions.ErrMissingSession(nil)
	}
	return uc.SessionService.DeleteSession(ctx, session.SessionID)
}

func (uc *authUsecase) issueSession(ctx context.Context, role, subjectID, email string) (*responses.Login, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	session, err := uc.SessionService.CreateSession(ctx, role, subjectID, email)
	if err != nil {
		return nil, err
	}

	token, err := utils.GenerateSessionJWT(session.SessionID, uc.InternalConfig.JWT.Secret, session.ExpiresAt)
	if err != nil {
		uc.Log.Error("authUsecase.issueSession error signing token",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrTokenGenerate(err)
	}

	utils.LogBusinessEvent(uc.Log, "session_issued", requestID,
		zap.String(constvars.LoggingRoleKey, role),
		zap.String(constvars.LoggingSubjectIDKey, subjectID),
	)
	return &responses.Login{
		Token:     token,
		Role:      role,
		SubjectID: subjectID,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

func (uc *authUsecase) rejectLogin(requestID, role, email string) {
	utils.LogSecurityEvent(uc.Log, "login_failed", requestID, "medium",
		zap.String(constvars.LoggingRoleKey, role),
		zap.String(constvars.LoggingEmailKey, email),
	)
}
