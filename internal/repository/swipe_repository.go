package repository

import (
	"context"

	"github.com/eventa/match-service/internal/db"
	"gorm.io/gorm"
)

// SwipeRepository provides data access methods for the Swipe model.
// It encapsulates all queries related to like/pass decisions between users.
type SwipeRepository struct {
	db *gorm.DB
}

// NewSwipeRepository creates a new repository bound to the given DB connection.
func NewSwipeRepository(database *gorm.DB) *SwipeRepository {
	return &SwipeRepository{db: database}
}

// CreateSwipe inserts a new swipe made by swiper -> target.
//
// Behavior:
//   - Swipes are insert-only; the unique index on
//     (swiper_id, target_id, event_id) rejects a second swipe on the same
//     directed pair in the same scope with gorm.ErrDuplicatedKey.
//   - The caller decides whether that conflict is an error (it is, for the
//     public swipe operation).
//
// Example:
//
//	repo.CreateSwipe(ctx, &db.Swipe{SwiperID: a, TargetID: b, Direction: db.DirectionLike})
func (r *SwipeRepository) CreateSwipe(ctx context.Context, swipe *db.Swipe) error {
	return r.db.WithContext(ctx).Create(swipe).Error
}

// HasLike checks whether swiper has recorded a "like" on target within the
// given event scope ("" = global scope).
//
// Behavior:
//   - O(1) lookup over the unique (swiper_id, target_id, event_id) index.
//   - Used for the reciprocity check after a new like is recorded.
//
// Example:
//
//	repo.HasLike(ctx, targetID, swiperID, eventID) // did the target like back?
func (r *SwipeRepository) HasLike(ctx context.Context, swiperID, targetID, eventID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("swipes s").
		Where("s.swiper_id = ? AND s.target_id = ? AND s.event_id = ? AND s.direction = ?",
			swiperID, targetID, eventID, db.DirectionLike).
		Count(&count).Error
	return count > 0, err
}

// CountLikesReceived returns how many users liked the given user, across all
// event scopes.
//
// Behavior:
//   - Counts only swipes with direction = like targeting the user.
//   - Excludes likers the user has explicitly passed on.
//   - Used in conjunction with the Redis counter (DB is fallback).
//
// Example:
//
//	repo.CountLikesReceived(ctx, userID) // -> 42
func (r *SwipeRepository) CountLikesReceived(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("swipes s").
		Where("s.target_id = ? AND s.direction = ?", userID, db.DirectionLike).
		Where(`
			NOT EXISTS (
				SELECT 1 FROM swipes s2
				WHERE s2.swiper_id = ?
				  AND s2.target_id = s.swiper_id
				  AND s2.direction = ?
			)`, userID, db.DirectionPass).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
