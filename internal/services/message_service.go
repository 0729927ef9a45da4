package services

import (
	"context"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// MessageService handles contact form messages.
type MessageService struct {
	repo   repositories.MessageRepository
	events EventPublisher
}

// NewMessageService creates a new MessageService. events may be nil.
func NewMessageService(repo repositories.MessageRepository, events EventPublisher) *MessageService {
	return &MessageService{
		repo:   repo,
		events: events,
	}
}

// ListMessages retrieves all messages, newest first.
func (s *MessageService) ListMessages(ctx context.Context, cred repositories.Credential) ([]models.Message, error) {
	return s.repo.GetAll(ctx, cred)
}

// CreateMessage stores a contact form submission and notifies the shop owner.
func (s *MessageService) CreateMessage(ctx context.Context, input models.MessageInput) (*models.Message, error) {
	message, err := s.repo.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	publishEvent(ctx, s.events, EventMessageCreated, message)
	return message, nil
}

// DeleteMessage deletes a message by its ID.
func (s *MessageService) DeleteMessage(ctx context.Context, cred repositories.Credential, id string) error {
	return s.repo.Delete(ctx, cred, id)
}
