package repository

import (
	"context"

	"github.com/eventa/match-service/internal/db"
	"gorm.io/gorm"
)

// EventRepository provides read access to events and their participants.
type EventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new repository bound to the given DB connection.
func NewEventRepository(database *gorm.DB) *EventRepository {
	return &EventRepository{db: database}
}

// GetEvent fetches an event by id. Returns gorm.ErrRecordNotFound if absent.
func (r *EventRepository) GetEvent(ctx context.Context, eventID string) (*db.Event, error) {
	var event db.Event
	if err := r.db.WithContext(ctx).First(&event, "id = ?", eventID).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// ListParticipants returns the users who joined the event, in join order.
func (r *EventRepository) ListParticipants(ctx context.Context, eventID string) ([]db.User, error) {
	var users []db.User
	err := r.db.WithContext(ctx).
		Table("users u").
		Select("u.*").
		Joins("INNER JOIN event_participants ep ON ep.user_id = u.id").
		Where("ep.event_id = ?", eventID).
		Order("ep.joined_at ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
