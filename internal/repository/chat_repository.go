package repository

import (
	"context"
	"time"

	"github.com/eventa/match-service/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ChatRepository provides data access methods for the Chat model and the
// per-user roster aggregation.
type ChatRepository struct {
	db *gorm.DB
}

// NewChatRepository creates a new repository bound to the given DB connection.
func NewChatRepository(database *gorm.DB) *ChatRepository {
	return &ChatRepository{db: database}
}

// ChatSummary is one roster row: a chat annotated with the partner's identity
// and the most recent message. LastMessage/LastMessageTime are nil for chats
// with no messages yet.
type ChatSummary struct {
	ChatID          string     `gorm:"column:chat_id" json:"chat_id"`
	EventID         string     `gorm:"column:event_id" json:"event_id,omitempty"`
	EventTitle      string     `gorm:"column:event_title" json:"event_title,omitempty"`
	ChatCreatedAt   time.Time  `gorm:"column:chat_created_at" json:"chat_created_at"`
	PartnerID       string     `gorm:"column:partner_id" json:"partner_id"`
	PartnerName     string     `gorm:"column:partner_name" json:"partner_name"`
	PartnerAvatar   string     `gorm:"column:partner_avatar" json:"partner_avatar,omitempty"`
	LastMessage     *string    `gorm:"column:last_message" json:"last_message"`
	LastMessageTime *time.Time `gorm:"column:last_message_time" json:"last_message_time"`
}

// ProvisionChat creates-or-returns the single chat for a canonical pair
// within an event scope.
//
// Behavior:
//   - userA/userB MUST already be in canonical order (db.CanonicalPair).
//   - Insert runs with ON CONFLICT DO NOTHING, so a concurrent provisioning
//     attempt (two reciprocal likes racing) or a pre-existing chat is not an
//     error; the surviving row is fetched and returned either way.
//   - Idempotent: calling it twice yields the same chat id.
//
// Example:
//
//	a, b := db.CanonicalPair(swiperID, targetID)
//	chat, err := repo.ProvisionChat(ctx, a, b, eventID)
func (r *ChatRepository) ProvisionChat(ctx context.Context, userA, userB, eventID string) (*db.Chat, error) {
	chat := db.Chat{
		UserA:   userA,
		UserB:   userB,
		EventID: eventID,
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&chat).Error; err != nil {
		return nil, err
	}

	// Re-fetch unconditionally: on conflict the insert assigns nothing, and
	// the winning row's id is the one every caller must observe.
	var existing db.Chat
	err := r.db.WithContext(ctx).
		Where("user_a = ? AND user_b = ? AND event_id = ?", userA, userB, eventID).
		First(&existing).Error
	if err != nil {
		return nil, err
	}
	return &existing, nil
}

// GetChat fetches a chat by id. Returns gorm.ErrRecordNotFound if absent.
func (r *ChatRepository) GetChat(ctx context.Context, chatID string) (*db.Chat, error) {
	var chat db.Chat
	if err := r.db.WithContext(ctx).First(&chat, "id = ?", chatID).Error; err != nil {
		return nil, err
	}
	return &chat, nil
}

// DeleteChat removes a chat and all of its messages as one transaction.
//
// Behavior:
//   - Returns gorm.ErrRecordNotFound if the chat does not exist.
//   - Messages are deleted first, then the chat row; both inside a single
//     transaction so no window exists where messages outlive the chat.
func (r *ChatRepository) DeleteChat(ctx context.Context, chatID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var chat db.Chat
		if err := tx.First(&chat, "id = ?", chatID).Error; err != nil {
			return err
		}
		if err := tx.Where("chat_id = ?", chatID).Delete(&db.Message{}).Error; err != nil {
			return err
		}
		return tx.Delete(&chat).Error
	})
}

// ListForUser returns the user's chats annotated with partner identity, event
// title and most recent message, ordered by effective activity time (latest
// message time, falling back to chat creation time) descending.
//
// Behavior:
//   - The partner is whichever stored slot does not equal userID.
//   - Last-message subqueries break timestamp ties on message id so the
//     reported "latest" message matches the list endpoint's ordering.
//   - Read-only projection; mutates nothing.
//
// Example:
//
//	repo.ListForUser(ctx, "u1")
func (r *ChatRepository) ListForUser(ctx context.Context, userID string) ([]ChatSummary, error) {
	var summaries []ChatSummary
	err := r.db.WithContext(ctx).
		Table("chats c").
		Select(`c.id AS chat_id,
			c.event_id AS event_id,
			c.created_at AS chat_created_at,
			COALESCE(e.title, '') AS event_title,
			CASE WHEN c.user_a = ? THEN c.user_b ELSE c.user_a END AS partner_id,
			CASE WHEN c.user_a = ? THEN COALESCE(ub.name, '') ELSE COALESCE(ua.name, '') END AS partner_name,
			CASE WHEN c.user_a = ? THEN COALESCE(ub.avatar_url, '') ELSE COALESCE(ua.avatar_url, '') END AS partner_avatar,
			(SELECT m.content FROM messages m
				WHERE m.chat_id = c.id
				ORDER BY m.created_at DESC, m.id DESC LIMIT 1) AS last_message,
			(SELECT m.created_at FROM messages m
				WHERE m.chat_id = c.id
				ORDER BY m.created_at DESC, m.id DESC LIMIT 1) AS last_message_time`,
			userID, userID, userID).
		Joins("LEFT JOIN users ua ON ua.id = c.user_a").
		Joins("LEFT JOIN users ub ON ub.id = c.user_b").
		Joins("LEFT JOIN events e ON e.id = c.event_id").
		Where("c.user_a = ? OR c.user_b = ?", userID, userID).
		Order(`COALESCE(
			(SELECT MAX(m2.created_at) FROM messages m2 WHERE m2.chat_id = c.id),
			c.created_at) DESC`).
		Find(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}
