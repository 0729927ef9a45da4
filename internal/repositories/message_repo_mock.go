package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"storefront/internal/models"

	"github.com/google/uuid"
)

// MockMessageRepository is an in-memory implementation of MessageRepository.
// Anyone may submit a message; only authenticated callers may read or delete.
type MockMessageRepository struct {
	messages map[string]models.Message
	now      func() time.Time
	mu       sync.RWMutex
}

// NewMockMessageRepository creates a new instance of MockMessageRepository.
func NewMockMessageRepository() *MockMessageRepository {
	return &MockMessageRepository{
		messages: make(map[string]models.Message),
		now:      time.Now,
	}
}

// SetClock replaces the clock used to stamp createdAt.
func (r *MockMessageRepository) SetClock(now func() time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.now = now
}

// GetAll returns all messages, newest first.
func (r *MockMessageRepository) GetAll(_ context.Context, cred Credential) ([]models.Message, error) {
	if cred.Anonymous() {
		return nil, policyViolation("messages")
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	messageList := make([]models.Message, 0, len(r.messages))
	for _, m := range r.messages {
		messageList = append(messageList, m)
	}
	sort.SliceStable(messageList, func(i, j int) bool {
		return messageList[i].CreatedAt.After(messageList[j].CreatedAt)
	})
	return messageList, nil
}

// Create stores a new message.
func (r *MockMessageRepository) Create(_ context.Context, input models.MessageInput) (*models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	message := models.Message{
		ID:           uuid.New().String(),
		CustomerName: input.CustomerName,
		Email:        input.Email,
		Message:      input.Message,
		CreatedAt:    r.now(),
	}
	r.messages[message.ID] = message
	return &message, nil
}

// Delete removes a message by its ID.
func (r *MockMessageRepository) Delete(_ context.Context, cred Credential, id string) error {
	if cred.Anonymous() {
		return policyViolation("messages")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.messages, id)
	return nil
}
