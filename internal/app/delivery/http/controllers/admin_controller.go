package controllers

import (
	"context"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/utils"
	"net/http"

	"go.uber.org/zap"
)

type AdminController struct {
	Log                *zap.Logger
	DoctorUsecase      contracts.DoctorUsecase
	ApprovalUsecase    contracts.ApprovalUsecase
	AppointmentUsecase contracts.AppointmentUsecase
	DashboardUsecase   contracts.DashboardUsecase
}

func NewAdminController(
	logger *zap.Logger,
	doctorUsecase contracts.DoctorUsecase,
	approvalUsecase contracts.ApprovalUsecase,
	appointmentUsecase contracts.AppointmentUsecase,
	dashboardUsecase contracts.DashboardUsecase,
) *AdminController {
	return &AdminController{
		Log:                logger,
		DoctorUsecase:      doctorUsecase,
		ApprovalUsecase:    approvalUsecase,
		AppointmentUsecase: appointmentUsecase,
		DashboardUsecase:   dashboardUsecase,
	}
}

func (ctrl *AdminController) ListAllDoctors(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaultRequestTimeout)
	defer cancel()

	result, err := ctrl.DoctorUsecase.ListAllDoctors(ctx)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DoctorListSuccess, result)
}

func (ctrl *AdminController) ListPendingDoctors(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaultRequestTimeout)
	defer cancel()

	result, err := ctrl.ApprovalUsecase.ListPendingDoctors(ctx)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DoctorListSuccess, result)
}

// AddDoctor creates an already approved doctor.
func (ctrl *AdminController) AddDoctor(w http.ResponseWriter, r *http.Request) {
	request := new(requests.RegisterDoctor)
	if err := bindJSON(r, request, utils.SanitizeRegisterDoctorRequest); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaultRequestTimeout)
	defer cancel()

	doctorID, err := ctrl.ApprovalUsecase.AddDoctor(ctx, request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.DoctorCreatedSuccess, map[string]string{"doctor_id": doctorID})
}

func (ctrl *AdminController) ApproveDoctor(w http.ResponseWriter, r *http.Request) {
	ctrl.doctorAction(w, r, ctrl.ApprovalUsecase.ApproveDoctor, "doctor_approved", constvars.DoctorApprovedSuccess)
}

func (ctrl *AdminController) RejectDoctor(w http.ResponseWriter, r *http.Request) {
	ctrl.doctorAction(w, r, ctrl.ApprovalUsecase.RejectDoctor, "doctor_rejected", constvars.DoctorRejectedSuccess)
}

func (ctrl *AdminController) DeleteDoctor(w http.ResponseWriter, r *http.Request) {
	ctrl.doctorAction(w, r, ctrl.ApprovalUsecase.DeleteDoctor, "doctor_deleted", constvars.DoctorDeletedSuccess)
}

func (ctrl *AdminController) doctorAction(w http.ResponseWriter, r *http.Request, actionFn func(context.Context, string) error, event, successMessage string) {
	doctorID, err := urlParamID(r, constvars.URLParamDoctorID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaultRequestTimeout)
	defer cancel()

	if err := actionFn(ctx, doctorID); err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.LogBusinessEvent(ctrl.Log, event, utils.GetRequestID(r.Context()),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, successMessage, nil)
}

func (ctrl *AdminController) ListAllAppointments(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaultRequestTimeout)
	defer cancel()

	result, err := ctrl.AppointmentUsecase.ListAllAppointments(ctx)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AppointmentListSuccess, result)
}

func (ctrl *AdminController) PurgeAppointment(w http.ResponseWriter, r *http.Request) {
	session, err := requireSession(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	appointmentID, err := urlParamID(r, constvars.URLParamAppointmentID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaultRequestTimeout)
	defer cancel()

	if err := ctrl.AppointmentUsecase.PurgeAppointment(ctx, session, appointmentID); err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AppointmentPurgedSuccess, nil)
}

func (ctrl *AdminController) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaultRequestTimeout)
	defer cancel()

	result, err := ctrl.DashboardUsecase.AdminDashboard(ctx)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DashboardSuccess, result)
}
