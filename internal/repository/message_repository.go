package repository

import (
	"context"

	"github.com/eventa/match-service/internal/db"
	"gorm.io/gorm"
)

// MessageRepository provides data access methods for the Message model.
type MessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new repository bound to the given DB connection.
func NewMessageRepository(database *gorm.DB) *MessageRepository {
	return &MessageRepository{db: database}
}

// CreateMessage appends a message to a chat.
func (r *MessageRepository) CreateMessage(ctx context.Context, msg *db.Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

// ListMessages returns the full history of a chat.
//
// Behavior:
//   - Ascending by created_at, with the auto-increment id as tie-break, so
//     the order is total and reproducible even when timestamps collide.
//   - Unpaginated: the whole history in one read.
func (r *MessageRepository) ListMessages(ctx context.Context, chatID string) ([]db.Message, error) {
	var messages []db.Message
	err := r.db.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// DeleteByChat removes every message belonging to the chat and reports how
// many were deleted. Deleting from an empty (or already-deleted) chat is a
// no-op success, which is what makes clear idempotent.
func (r *MessageRepository) DeleteByChat(ctx context.Context, chatID string) (int64, error) {
	res := r.db.WithContext(ctx).Where("chat_id = ?", chatID).Delete(&db.Message{})
	return res.RowsAffected, res.Error
}
