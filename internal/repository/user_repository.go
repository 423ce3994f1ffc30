package repository

import (
	"context"

	"github.com/eventa/match-service/internal/db"
	"gorm.io/gorm"
)

// defaultProfileLimit is the size of one swipe deck.
const defaultProfileLimit = 3

// ProfileFilter is the composed set of optional predicates for candidate
// discovery. Zero values mean "no filter" (except CurrentUserID, which is
// required and validated by the service).
type ProfileFilter struct {
	CurrentUserID string
	EventID       string
	Gender        string
	MinAge        int
	MaxAge        int
	Interests     []string
	Limit         int
}

// UserRepository provides read access to the user profiles owned by the
// account subsystem.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new repository bound to the given DB connection.
func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{db: database}
}

// GetUser fetches a user by id. Returns gorm.ErrRecordNotFound if absent.
func (r *UserRepository) GetUser(ctx context.Context, userID string) (*db.User, error) {
	var user db.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ListProfiles returns swipe candidates for the filter's current user.
//
// Behavior:
//   - Excludes the current user and anyone they already swiped on
//     (NOT EXISTS over the swipes table).
//   - Each optional predicate is applied as its own clause; no string
//     concatenation of SQL fragments.
//   - Interests are matched application-side by the service (JSON column).
//
// Example:
//
//	repo.ListProfiles(ctx, ProfileFilter{CurrentUserID: id, EventID: ev, Gender: "female"})
func (r *UserRepository) ListProfiles(ctx context.Context, filter ProfileFilter) ([]db.User, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultProfileLimit
	}

	query := r.db.WithContext(ctx).
		Table("users u").
		Select("DISTINCT u.*").
		Where("u.id <> ?", filter.CurrentUserID).
		Where(`
			NOT EXISTS (
				SELECT 1 FROM swipes s
				WHERE s.swiper_id = ?
				  AND s.target_id = u.id
			)`, filter.CurrentUserID).
		Limit(limit)

	if filter.EventID != "" {
		query = query.
			Joins("INNER JOIN event_participants ep ON ep.user_id = u.id").
			Where("ep.event_id = ?", filter.EventID)
	}
	if filter.Gender != "" && filter.Gender != "any" {
		query = query.Where("u.gender = ?", filter.Gender)
	}
	if filter.MinAge > 0 {
		query = query.Where("u.age >= ?", filter.MinAge)
	}
	if filter.MaxAge > 0 {
		query = query.Where("u.age <= ?", filter.MaxAge)
	}

	var users []db.User
	if err := query.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
