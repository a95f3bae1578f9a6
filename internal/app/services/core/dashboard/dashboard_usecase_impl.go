package dashboard

import (
	"context"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/dto/responses"

	"go.uber.org/zap"
)

const latestAppointmentsLimit = 5

type dashboardUsecase struct {
	DoctorRepository      contracts.DoctorRepository
	AppointmentRepository contracts.AppointmentRepository
	PatientRepository     contracts.PatientRepository
	Log                   *zap.Logger
}

func NewDashboardUsecase(
	doctorRepository contracts.DoctorRepository,
	appointmentRepository contracts.AppointmentRepository,
	patientRepository contracts.PatientRepository,
	logger *zap.Logger,
) contracts.DashboardUsecase {
	return &dashboardUsecase{
		DoctorRepository:      doctorRepository,
		AppointmentRepository: appointmentRepository,
		PatientRepository:     patientRepository,
		Log:                   logger,
	}
}

func (uc *dashboardUsecase) AdminDashboard(ctx context.Context) (*responses.AdminDashboard, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("dashboardUsecase.AdminDashboard called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	doctors, err := uc.DoctorRepository.Count(ctx)
	if err != nil {
		return nil, err
	}
	appointments, err := uc.AppointmentRepository.Count(ctx)
	if err != nil {
		return nil, err
	}
	patients, err := uc.PatientRepository.Count(ctx)
	if err != nil {
		return nil, err
	}
	latest, err := uc.AppointmentRepository.FindLatest(ctx, latestAppointmentsLimit)
	if err != nil {
		uc.Log.Error("dashboardUsecase.AdminDashboard error fetching latest appointments",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	return &responses.AdminDashboard{
		Doctors:            doctors,
		Appointments:       appointments,
		Patients:           patients,
		LatestAppointments: latest,
	}, nil
}
