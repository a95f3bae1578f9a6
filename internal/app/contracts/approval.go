package contracts

import (
	"context"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/dto/requests"
)

type ApprovalUsecase interface {
	RegisterDoctor(ctx context.Context, request *requests.RegisterDoctor) (string, error)
	AddDoctor(ctx context.Context, request *requests.RegisterDoctor) (string, error)
	ApproveDoctor(ctx context.Context, doctorID string) error
	RejectDoctor(ctx context.Context, doctorID string) error
	DeleteDoctor(ctx context.Context, doctorID string) error
	ListPendingDoctors(ctx context.Context) ([]models.Doctor, error)
}
