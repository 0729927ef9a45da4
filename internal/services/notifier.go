package services

import (
	"encoding/json"
	"fmt"

	"storefront/internal/models"

	"github.com/rs/zerolog"
)

// MessageNotifier turns message events into shop-owner notifications.
// For now a notification is a log line.
type MessageNotifier struct {
	logger zerolog.Logger
}

// NewMessageNotifier creates a new MessageNotifier.
func NewMessageNotifier(logger zerolog.Logger) *MessageNotifier {
	return &MessageNotifier{logger: logger}
}

// Handle processes one event body published under routingKey.
func (n *MessageNotifier) Handle(routingKey string, body []byte) error {
	if routingKey != EventMessageCreated {
		n.logger.Debug().Str("event", routingKey).Msg("ignoring event")
		return nil
	}

	var message models.Message
	if err := json.Unmarshal(body, &message); err != nil {
		return fmt.Errorf("failed to decode %s event: %w", routingKey, err)
	}
	if message.ID == "" {
		return fmt.Errorf("%s event without message id", routingKey)
	}

	n.logger.Info().
		Str("message_id", message.ID).
		Str("customer_name", message.CustomerName).
		Str("email", message.Email).
		Time("received_at", message.CreatedAt).
		Msg("new customer message")
	return nil
}
