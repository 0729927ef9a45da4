package services

import (
	"context"

	"github.com/rs/zerolog"
)

// Event routing keys published by the services.
const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
	EventMessageCreated = "message.created"
	EventOrderRequested = "order.requested"
)

// EventPublisher delivers domain events to interested consumers.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// publishEvent is best effort: a failed publish is logged and never fails the caller.
func publishEvent(ctx context.Context, publisher EventPublisher, routingKey string, payload any) {
	if publisher == nil {
		return
	}
	logger := zerolog.Ctx(ctx)
	if err := publisher.Publish(ctx, routingKey, payload); err != nil {
		logger.Warn().Err(err).Str("event", routingKey).Msg("failed to publish event")
		return
	}
	logger.Debug().Str("event", routingKey).Msg("published event")
}
