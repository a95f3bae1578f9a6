package contracts

import (
	"context"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/dto/responses"
)

type DoctorFilter struct {
	ApprovedOnly bool
	PendingOnly  bool
}

type DoctorProfileUpdate struct {
	Fees      *int64
	About     *string
	Address   *models.Address
	Available *bool
}

type DoctorRepository interface {
	CreateDoctor(ctx context.Context, doctor *models.Doctor) (string, error)
	FindByID(ctx context.Context, doctorID string) (*models.Doctor, error)
	FindByEmail(ctx context.Context, email string) (*models.Doctor, error)
	FindAll(ctx context.Context, filter DoctorFilter) ([]models.Doctor, error)
	// UpdateSlotsBooked writes the whole map only if the stored version still equals
	// expectedVersion, and bumps the version on success.
	UpdateSlotsBooked(ctx context.Context, doctorID string, slots models.SlotsBooked, expectedVersion int64) error
	SetApproved(ctx context.Context, doctorID string) (bool, error)
	SetAvailability(ctx context.Context, doctorID string, available bool) error
	UpdateProfile(ctx context.Context, doctorID string, update DoctorProfileUpdate) error
	DeleteByID(ctx context.Context, doctorID string) (bool, error)
	// DeletePending removes the doctor only while it is still unapproved.
	DeletePending(ctx context.Context, doctorID string) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type DoctorUsecase interface {
	ListPublicDoctors(ctx context.Context) ([]responses.PublicDoctor, error)
	ListAllDoctors(ctx context.Context) ([]models.Doctor, error)
	GetProfile(ctx context.Context, session *models.Session) (*models.Doctor, error)
	UpdateProfile(ctx context.Context, session *models.Session, request *requests.UpdateDoctorProfile) (*models.Doctor, error)
	ChangeAvailability(ctx context.Context, session *models.Session, doctorID string) (*models.Doctor, error)
	Dashboard(ctx context.Context, session *models.Session) (*responses.DoctorDashboard, error)
}
