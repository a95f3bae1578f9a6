package doctors

import (
	"context"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/dto/responses"
	"medibook-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

type doctorUsecase struct {
	DoctorRepository      contracts.DoctorRepository
	AppointmentRepository contracts.AppointmentRepository
	Log                   *zap.Logger
}

func NewDoctorUsecase(
	doctorRepository contracts.DoctorRepository,
	appointmentRepository contracts.AppointmentRepository,
	logger *zap.Logger,
) contracts.DoctorUsecase {
	return &doctorUsecase{
		DoctorRepository:      doctorRepository,
		AppointmentRepository: appointmentRepository,
		Log:                   logger,
	}
}

func (uc *doctorUsecase) ListPublicDoctors(ctx context.Context) ([]responses.PublicDoctor, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.ListPublicDoctors called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	doctors, err := uc.DoctorRepository.FindAll(ctx, contracts.DoctorFilter{ApprovedOnly: true})
	if err != nil {
		uc.Log.Error("doctorUsecase.ListPublicDoctors error fetching doctors",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	result := make([]responses.PublicDoctor, 0, len(doctors))
	for i := range doctors {
		if !doctors[i].Bookable() {
			continue
		}
		result = append(result, responses.NewPublicDoctor(&doctors[i]))
	}

	uc.Log.Info("doctorUsecase.ListPublicDoctors succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(result)),
	)
	return result, nil
}

func (uc *doctorUsecase) ListAllDoctors(ctx context.Context) ([]models.Doctor, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.ListAllDoctors called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	doctors, err := uc.DoctorRepository.FindAll(ctx, contracts.DoctorFilter{})
	if err != nil {
		uc.Log.Error("doctorUsecase.ListAllDoctors error fetching doctors",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	return doctors, nil
}

func (uc *doctorUsecase) GetProfile(ctx context.Context, session *models.Session) (*models.Doctor, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.GetProfile called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, session.SubjectID),
	)

	if !session.IsDoctor() {
		return nil, exceptions.ErrNotAuthorizedForDoctor(nil, session.SubjectID, session.Role, session.SubjectID)
	}

	doctor, err := uc.DoctorRepository.FindByID(ctx, session.SubjectID)
	if err != nil {
		uc.Log.Error("doctorUsecase.GetProfile error fetching doctor",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrDoctorNotFound(nil, session.SubjectID)
	}
	return doctor, nil
}

func (uc *doctorUsecase) UpdateProfile(ctx context.Context, session *models.Session, request *requests.UpdateDoctorProfile) (*models.Doctor, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.UpdateProfile called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, session.SubjectID),
	)

	if !session.IsDoctor() {
		return nil, exceptions.ErrNotAuthorizedForDoctor(nil, session.SubjectID, session.Role, session.SubjectID)
	}

	update := contracts.DoctorProfileUpdate{
		Fees:      request.Fees,
		About:     request.About,
		Available: request.Available,
	}
	if request.Address != nil {
		update.Address = &models.Address{Line1: request.Address.Line1, Line2: request.Address.Line2}
	}

	err := uc.DoctorRepository.UpdateProfile(ctx, session.SubjectID, update)
	if err != nil {
		uc.Log.Error("doctorUsecase.UpdateProfile error updating doctor",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	return uc.GetProfile(ctx, session)
}

// ChangeAvailability flips the available flag. Doctors may only toggle themselves.
func (uc *doctorUsecase) ChangeAvailability(ctx context.Context, session *models.Session, doctorID string) (*models.Doctor, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.ChangeAvailability called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	if !session.IsAdmin() && !(session.IsDoctor() && session.SubjectID == doctorID) {
		return nil, exceptions.ErrNotAuthorizedForDoctor(nil, session.SubjectID, session.Role, doctorID)
	}

	doctor, err := uc.DoctorRepository.FindByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrDoctorNotFound(nil, doctorID)
	}

	err = uc.DoctorRepository.SetAvailability(ctx, doctorID, !doctor.Available)
	if err != nil {
		uc.Log.Error("doctorUsecase.ChangeAvailability error updating doctor",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	doctor.Available = !doctor.Available

	uc.Log.Info("doctorUsecase.ChangeAvailability succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
		zap.Bool("available", doctor.Available),
	)
	return doctor, nil
}

// Dashboard counts earnings from appointments that are completed or paid.
func (uc *doctorUsecase) Dashboard(ctx context.Context, session *models.Session) (*responses.DoctorDashboard, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.Dashboard called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, session.SubjectID),
	)

	if !session.IsDoctor() {
		return nil, exceptions.ErrNotAuthorizedForDoctor(nil, session.SubjectID, session.Role, session.SubjectID)
	}

	appointments, err := uc.AppointmentRepository.FindByDoctorID(ctx, session.SubjectID)
	if err != nil {
		uc.Log.Error("doctorUsecase.Dashboard error fetching appointments",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	return BuildDoctorDashboard(appointments), nil
}

// BuildDoctorDashboard expects appointments newest first.
func BuildDoctorDashboard(appointments []models.Appointment) *responses.DoctorDashboard {
	dashboard := &responses.DoctorDashboard{
		Appointments:       len(appointments),
		LatestAppointments: make([]models.Appointment, 0, constvars.DashboardLatestLimit),
	}

	patients := make(map[string]struct{})
	for i := range appointments {
		if appointments[i].IsCompleted || appointments[i].Payment {
			dashboard.Earnings += appointments[i].Amount
		}
		patients[appointments[i].UserID] = struct{}{}
		if len(dashboard.LatestAppointments) < constvars.DashboardLatestLimit {
			dashboard.LatestAppointments = append(dashboard.LatestAppointments, appointments[i])
		}
	}
	dashboard.Patients = len(patients)

	return dashboard
}
