package contracts

import (
	"context"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/dto/responses"
)

type AuthUsecase interface {
	RegisterPatient(ctx context.Context, request *requests.RegisterPatient) (*responses.Login, error)
	LoginPatient(ctx context.Context, request *requests.Login) (*responses.Login, error)
	LoginDoctor(ctx context.Context, request *requests.Login) (*responses.Login, error)
	LoginAdmin(ctx context.Context, request *requests.Login) (*responses.Login, error)
	Logout(ctx context.Context, session *models.Session) error
}

type SessionService interface {
	CreateSession(ctx context.Context, role, subjectID, email string) (*models.Session, error)
	GetSession(ctx context.Context, sessionID string) (*models.Session, error)
	DeleteSession(ctx context.Context, sessionID string) error
}
