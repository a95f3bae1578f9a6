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

type DoctorController struct {
	Log                *zap.Logger
	DoctorUsecase      contracts.DoctorUsecase
	ApprovalUsecase    contracts.ApprovalUsecase
	AppointmentUsecase contracts.AppointmentUsecase
}

func NewDoctorController(logger *zap.Logger, doctorUsecase contracts.DoctorUsecase, approvalUsecase contracts.ApprovalUsecase, appointmentUsecase contracts.AppointmentUsecase) *DoctorController {
	return &DoctorController{
		Log:                logger,
		DoctorUsecase:      doctorUsecase,
		ApprovalUsecase:    approvalUsecase,
		AppointmentUsecase: appointmentUsecase,
	}
}

func (ctrl *DoctorController) ListPublicDoctors(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaultRequestTimeout)
	defer cancel()

	result, err := ctrl.DoctorUsecase.ListPublicDoctors(ctx)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DoctorListSuccess, result)
}

// RegisterDoctor is the public self-registration; the doctor stays pending
// until an admin approves it.
func (ctrl *DoctorController) RegisterDoctor(w http.ResponseWriter, r *http.Request) {
	request := new(requests.RegisterDoctor)
	if err := bindJSON(r, request, utils.SanitizeRegisterDoctorRequest); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaultRequestTimeout)
	defer cancel()

	doctorID, err := ctrl.ApprovalUsecase.RegisterDoctor(ctx, request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.DoctorRegisterSuccess, map[string]string{"doctor_id": doctorID})
}

func (ctrl *DoctorController) GetProfile(w http.ResponseWriter, r *http.Request) {
	session, err := requireSession(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaultRequestTimeout)
	defer cancel()

	result, err := ctrl.DoctorUsecase.GetProfile(ctx, session)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DoctorProfileSuccess, result)
}

func (ctrl *DoctorController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	session, err := requireSession(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.UpdateDoctorProfile)
	if err := bindJSON[requests.UpdateDoctorProfile](r, request, nil); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaultRequestTimeout)
	defer cancel()

	result, err := ctrl.DoctorUsecase.UpdateProfile(ctx, session, request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DoctorProfileUpdatedSuccess, result)
}

func (ctrl *DoctorController) Dashboard(w http.ResponseWriter, r *http.Request) {
	session, err := requireSession(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaultRequestTimeout)
	defer cancel()

	result, err := ctrl.DoctorUsecase.Dashboard(ctx, session)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DashboardSuccess, result)
}

func (ctrl *DoctorController) ListDoctorAppointments(w http.ResponseWriter, r *http.Request) {
	session, err := requireSession(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaultRequestTimeout)
	defer cancel()

	result, err := ctrl.AppointmentUsecase.ListDoctorAppointments(ctx, session)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AppointmentListSuccess, result)
}

// ChangeAvailability toggles the bookable flag. Doctors may only toggle their
// own record, admins any record.
func (ctrl *DoctorController) ChangeAvailability(w http.ResponseWriter, r *http.Request) {
	session, err := requireSession(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	doctorID, err := urlParamID(r, constvars.URLParamDoctorID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaultRequestTimeout)
	defer cancel()

	result, err := ctrl.DoctorUsecase.ChangeAvailability(ctx, session, doctorID)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DoctorAvailabilityChangeSuccess, result)
}
