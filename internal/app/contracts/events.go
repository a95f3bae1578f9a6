package contracts

import (
	"context"
	"medibook-service/internal/pkg/dto/requests"
)

type EventPublisher interface {
	Publish(ctx context.Context, event *requests.DomainEvent) error
}
