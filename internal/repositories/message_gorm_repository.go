package repositories

import (
	"context"
	"fmt"

	"storefront/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMMessageRepository is a GORM implementation of MessageRepository.
type GORMMessageRepository struct {
	store scopedDB
}

// NewGORMMessageRepository creates a new instance of GORMMessageRepository.
func NewGORMMessageRepository(db *gorm.DB, rowLevelSecurity bool) *GORMMessageRepository {
	return &GORMMessageRepository{
		store: scopedDB{db: db, rowLevelSecurity: rowLevelSecurity},
	}
}

// GetAll retrieves messages, newest first.
func (r *GORMMessageRepository) GetAll(ctx context.Context, cred Credential) ([]models.Message, error) {
	var rows []MessageRow
	err := r.store.run(ctx, cred, func(tx *gorm.DB) error {
		return tx.Order(mustColumn(MessageFields, "createdAt") + " DESC").Find(&rows).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get all messages: %w", ClassifyError(err))
	}

	messages := make([]models.Message, 0, len(rows))
	for _, row := range rows {
		messages = append(messages, MessageFromRow(row))
	}
	return messages, nil
}

// Create stores a contact form submission. It always runs anonymously, and
// anonymous callers cannot read messages back, so id and createdAt are set here.
func (r *GORMMessageRepository) Create(ctx context.Context, input models.MessageInput) (*models.Message, error) {
	row := MessageToRow(models.Message{
		ID:           uuid.New().String(),
		CustomerName: input.CustomerName,
		Email:        input.Email,
		Message:      input.Message,
	})

	err := r.store.run(ctx, Credential{}, func(tx *gorm.DB) error {
		return tx.Create(&row).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create message: %w", ClassifyError(err))
	}
	message := MessageFromRow(row)
	return &message, nil
}

// Delete removes a message. Deleting a missing message is not an error.
func (r *GORMMessageRepository) Delete(ctx context.Context, cred Credential, id string) error {
	err := r.store.run(ctx, cred, func(tx *gorm.DB) error {
		return tx.Where("id = ?", id).Delete(&MessageRow{}).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete message: %w", ClassifyError(err))
	}
	return nil
}
