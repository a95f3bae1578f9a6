package approval

import (
	"context"
	"medibook-service/internal/app/config"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/exceptions"
	"medibook-service/internal/pkg/utils"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type approvalUsecase struct {
	DoctorRepository contracts.DoctorRepository
	Storage          contracts.Storage
	EventPublisher   contracts.EventPublisher
	InternalConfig   *config.InternalConfig
	BucketName       string
	Log              *zap.Logger
}

func NewApprovalUsecase(
	doctorRepository contracts.DoctorRepository,
	storage contracts.Storage,
	eventPublisher contracts.EventPublisher,
	internalConfig *config.InternalConfig,
	bucketName string,
	logger *zap.Logger,
) contracts.ApprovalUsecase {
	return &approvalUsecase{
		DoctorRepository: doctorRepository,
		Storage:          storage,
		EventPublisher:   eventPublisher,
		InternalConfig:   internalConfig,
		BucketName:       bucketName,
		Log:              logger,
	}
}

// RegisterDoctor records a self-registration that stays hidden until an admin approves it.
func (uc *approvalUsecase) RegisterDoctor(ctx context.Context, request *requests.RegisterDoctor) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("approvalUsecase.RegisterDoctor called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEmailKey, request.Email),
	)
	return uc.createDoctor(ctx, request, false)
}

func (uc *approvalUsecase) AddDoctor(ctx context.Context, request *requests.RegisterDoctor) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("approvalUsecase.AddDoctor called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEmailKey, request.Email),
	)
	return uc.createDoctor(ctx, request, true)
}

func (uc *approvalUsecase) createDoctor(ctx context.Context, request *requests.RegisterDoctor, approved bool) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	existing, err := uc.DoctorRepository.FindByEmail(ctx, request.Email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", exceptions.ErrEmailAlreadyExist(nil)
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return "", exceptions.ErrHashPassword(err)
	}

	imageUrl, err := uc.uploadImage(ctx, request.Image)
	if err != nil {
		uc.Log.Error("approvalUsecase.createDoctor error uploading doctor image",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return "", err
	}

	doctor := &models.Doctor{
		Name:       request.Name,
		Email:      request.Email,
		Password:   hashedPassword,
		Image:      imageUrl,
		Speciality: request.Speciality,
		Degree:     request.Degree,
		Experience: request.Experience,
		About:      request.About,
		Fees:       request.Fees,
		Address: models.Address{
			Line1: request.Address.Line1,
			Line2: request.Address.Line2,
		},
		Available:   true,
		IsApproved:  approved,
		SlotsBooked: models.SlotsBooked{},
		Date:        time.Now().UnixMilli(),
	}

	doctorID, err := uc.DoctorRepository.CreateDoctor(ctx, doctor)
	if err != nil {
		uc.Log.Error("approvalUsecase.createDoctor error creating doctor",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return "", err
	}

	uc.Log.Info("approvalUsecase.createDoctor succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
		zap.Bool("approved", approved),
	)
	return doctorID, nil
}

// uploadImage returns an empty url when no image was sent.
func (uc *approvalUsecase) uploadImage(ctx context.Context, encodedImage string) (string, error) {
	if encodedImage == "" {
		return "", nil
	}

	data, extension, err := utils.DecodeBase64Image(encodedImage)
	if err != nil {
		return "", exceptions.ErrDecodeImage(err)
	}
	if err := utils.ValidateImageSize(data, uc.InternalConfig.App.DoctorImageMaxUploadSizeInMB); err != nil {
		return "", exceptions.ErrInputValidation(err)
	}

	fileName := utils.GenerateFileName(constvars.DoctorImageObjectPrefix, uuid.NewString(), extension)
	return uc.Storage.UploadBase64Image(ctx, data, uc.BucketName, fileName, extension)
}

func (uc *approvalUsecase) ApproveDoctor(ctx context.Context, doctorID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("approvalUsecase.ApproveDoctor called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	found, err := uc.DoctorRepository.SetApproved(ctx, doctorID)
	if err != nil {
		return err
	}
	if !found {
		return exceptions.ErrDoctorNotFound(nil, doctorID)
	}

	event := &requests.DomainEvent{
		Type:       constvars.EventDoctorApproved,
		DoctorID:   doctorID,
		OccurredAt: time.Now().UTC(),
	}
	if err := uc.EventPublisher.Publish(ctx, event); err != nil {
		uc.Log.Warn("approvalUsecase.ApproveDoctor event dropped",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}
	return nil
}

// RejectDoctor discards a pending application. Approved doctors are removed with DeleteDoctor.
func (uc *approvalUsecase) RejectDoctor(ctx context.Context, doctorID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("approvalUsecase.RejectDoctor called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	doctor, err := uc.DoctorRepository.FindByID(ctx, doctorID)
	if err != nil {
		return err
	}
	if doctor == nil {
		return exceptions.ErrDoctorNotFound(nil, doctorID)
	}
	if doctor.IsApproved {
		return exceptions.ErrDoctorAlreadyApproved(nil, doctorID)
	}

	deleted, err := uc.DoctorRepository.DeletePending(ctx, doctorID)
	if err != nil {
		return err
	}
	if deleted {
		return nil
	}

	// Approved or removed since the read above.
	current, err := uc.DoctorRepository.FindByID(ctx, doctorID)
	if err != nil {
		return err
	}
	if current != nil && current.IsApproved {
		return exceptions.ErrDoctorAlreadyApproved(nil, doctorID)
	}
	return exceptions.ErrDoctorNotFound(nil, doctorID)
}

func (uc *approvalUsecase) DeleteDoctor(ctx context.Context, doctorID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("approvalUsecase.DeleteDoctor called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	deleted, err := uc.DoctorRepository.DeleteByID(ctx, doctorID)
	if err != nil {
		return err
	}
	if !deleted {
		return exceptions.ErrDoctorNotFound(nil, doctorID)
	}
	return nil
}

func (uc *approvalUsecase) ListPendingDoctors(ctx context.Context) ([]models.Doctor, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("approvalUsecase.ListPendingDoctors called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return uc.DoctorRepository.FindAll(ctx, contracts.DoctorFilter{PendingOnly: true})
}
