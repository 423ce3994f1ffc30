package db

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Swipe directions. A pass can never produce a match.
const (
	DirectionLike = "like"
	DirectionPass = "pass"
)

// User table. Owned by the account subsystem; the matching core only ever
// reads it (partner names/avatars, profile discovery).
type User struct {
	ID           string         `gorm:"type:char(36);primaryKey" json:"id"`
	Name         string         `gorm:"size:255;not null" json:"name"`
	Email        string         `gorm:"uniqueIndex;size:128;not null" json:"email"`
	PasswordHash string         `gorm:"size:255;not null" json:"-"`
	AvatarURL    string         `gorm:"size:500" json:"avatar_url,omitempty"`
	Gender       string         `gorm:"size:16" json:"gender,omitempty"`
	Age          int            `json:"age,omitempty"`
	Bio          string         `gorm:"type:text" json:"bio,omitempty"`
	Interests    datatypes.JSON `json:"interests,omitempty"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// Event scopes swipes and chats. Owned by the events subsystem.
type Event struct {
	ID           string    `gorm:"type:char(36);primaryKey" json:"id"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Category     string    `gorm:"size:100" json:"category,omitempty"`
	StartsAt     time.Time `json:"starts_at"`
	CoverVariant string    `gorm:"size:50;default:mint" json:"cover_variant,omitempty"`
	Description  string    `gorm:"type:text" json:"description,omitempty"`
	AuthorID     string    `gorm:"type:char(36);index" json:"author_id"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// EventParticipant links a user to an event they joined.
type EventParticipant struct {
	ID       string    `gorm:"type:char(36);primaryKey" json:"id"`
	EventID  string    `gorm:"type:char(36);not null;uniqueIndex:idx_event_user,priority:1" json:"event_id"`
	UserID   string    `gorm:"type:char(36);not null;uniqueIndex:idx_event_user,priority:2" json:"user_id"`
	JoinedAt time.Time `gorm:"autoCreateTime" json:"joined_at"`
}

func (p *EventParticipant) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Swipe represents a swiper's like/pass decision on a target, optionally
// scoped to an event.
//
// Unique index: (swiper_id, target_id, event_id)
//   - At most one swipe per directed pair per scope. EventID is stored as ''
//     for the global scope so the index is total; a nullable column would let
//     duplicate global swipes through (SQL NULLs never collide).
//
// Rows are created once and never updated.
type Swipe struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	SwiperID  string    `gorm:"type:char(36);not null;uniqueIndex:idx_swiper_target_event,priority:1" json:"swiper_id"`
	TargetID  string    `gorm:"type:char(36);not null;index;uniqueIndex:idx_swiper_target_event,priority:2" json:"target_id"`
	Direction string    `gorm:"size:10;not null" json:"direction"`
	EventID   string    `gorm:"type:char(36);not null;default:'';uniqueIndex:idx_swiper_target_event,priority:3" json:"event_id,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (s *Swipe) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// Chat is the single conversation for a matched pair within an event scope.
//
// UserA/UserB are stored in canonical order (UserA < UserB, see
// CanonicalPair) so the unique index on (user_a, user_b, event_id) is the
// source of truth for "one chat per pair per event" no matter which side
// triggered the match.
type Chat struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	UserA     string    `gorm:"type:char(36);not null;index;uniqueIndex:idx_pair_event,priority:1" json:"user_a"`
	UserB     string    `gorm:"type:char(36);not null;index;uniqueIndex:idx_pair_event,priority:2" json:"user_b"`
	EventID   string    `gorm:"type:char(36);not null;default:'';uniqueIndex:idx_pair_event,priority:3" json:"event_id,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (c *Chat) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// Message belongs to a chat and has no life of its own: clearing or deleting
// the chat removes it. The integer primary key doubles as the tie-break for
// total creation ordering when timestamps collide.
type Message struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ChatID    string    `gorm:"type:char(36);not null;index" json:"chat_id"`
	SenderID  string    `gorm:"type:char(36);not null" json:"sender_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
