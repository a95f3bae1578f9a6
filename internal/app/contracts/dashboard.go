package contracts

import (
	"context"
	"medibook-service/internal/pkg/dto/responses"
)

type DashboardUsecase interface {
	AdminDashboard(ctx context.Context) (*responses.AdminDashboard, error)
}
