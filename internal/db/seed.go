package db

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var seedInterests = []string{"music", "hiking", "board games", "food", "art", "running", "movies", "travel"}

// SeedTestData resets the database and populates it with demo users, events
// and swipe activity.
//
// Behavior:
//  1. Clears all tables owned by this service.
//  2. Creates 20 users with hashed passwords and randomized profiles.
//  3. Creates 3 events, each with a subset of users as participants.
//  4. Generates swipes per event with ~70% likes; every 3rd like gets a
//     reciprocal like, and mutual pairs get their chat plus a couple of
//     messages so the roster view has data.
//
// Compatible with both MySQL and SQLite.
func SeedTestData(db *gorm.DB) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	// --- Fresh start ---
	for _, table := range []string{"messages", "chats", "swipes", "event_participants", "events", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	if db.Dialector.Name() == "sqlite" {
		db.Exec("DELETE FROM sqlite_sequence WHERE name = 'messages'")
	}
	log.Println("Cleared existing data")

	// --- Seed Users ---
	var users []User
	for i := 1; i <= 20; i++ {
		hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		gender := "male"
		if i > 10 {
			gender = "female"
		}

		interests, _ := json.Marshal([]string{
			seedInterests[r.Intn(len(seedInterests))],
			seedInterests[r.Intn(len(seedInterests))],
		})

		user := User{
			Name:         fmt.Sprintf("user%d", i),
			Email:        fmt.Sprintf("user%d@example.com", i),
			PasswordHash: string(hash),
			Gender:       gender,
			Age:          20 + r.Intn(20),
			Interests:    interests,
		}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to seed user: %w", err)
		}
		users = append(users, user)
	}
	log.Println("Seeded 20 users.")

	// --- Seed Events + Participants ---
	var events []Event
	titles := []string{"Wine Tasting", "Rooftop Yoga", "Board Game Night"}
	for i, title := range titles {
		event := Event{
			Title:    title,
			Category: "social",
			StartsAt: time.Now().Add(time.Duration(24*(i+1)) * time.Hour),
			AuthorID: users[i].ID,
		}
		if err := db.Create(&event).Error; err != nil {
			return fmt.Errorf("failed to seed event: %w", err)
		}
		events = append(events, event)

		// every second user joins
		for j := i % 2; j < len(users); j += 2 {
			participant := EventParticipant{EventID: event.ID, UserID: users[j].ID}
			if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&participant).Error; err != nil {
				return fmt.Errorf("failed to seed participant: %w", err)
			}
		}
	}
	log.Printf("Seeded %d events.", len(events))

	// --- Seed Swipes, Chats, Messages ---
	counter := 0
	for _, event := range events {
		for i := 0; i < 30; i++ {
			swiper := users[r.Intn(len(users))]
			target := users[r.Intn(len(users))]
			if swiper.ID == target.ID {
				continue
			}

			direction := DirectionPass
			if r.Intn(100) < 70 {
				direction = DirectionLike
			}

			swipe := Swipe{
				SwiperID:  swiper.ID,
				TargetID:  target.ID,
				Direction: direction,
				EventID:   event.ID,
			}
			if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&swipe).Error; err != nil {
				return fmt.Errorf("failed to seed swipe: %w", err)
			}

			// guarantee mutual likes every 3rd like
			if direction == DirectionLike && counter%3 == 0 {
				recip := Swipe{
					SwiperID:  target.ID,
					TargetID:  swiper.ID,
					Direction: DirectionLike,
					EventID:   event.ID,
				}
				if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&recip).Error; err != nil {
					return fmt.Errorf("failed to seed reciprocal swipe: %w", err)
				}

				userA, userB := CanonicalPair(swiper.ID, target.ID)
				chat := Chat{UserA: userA, UserB: userB, EventID: event.ID}
				if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&chat).Error; err != nil {
					return fmt.Errorf("failed to seed chat: %w", err)
				}

				var existing Chat
				if err := db.Where("user_a = ? AND user_b = ? AND event_id = ?", userA, userB, event.ID).
					First(&existing).Error; err == nil {
					msgs := []Message{
						{ChatID: existing.ID, SenderID: swiper.ID, Content: "hey, nice to match!"},
						{ChatID: existing.ID, SenderID: target.ID, Content: "likewise, see you at " + event.Title + "?"},
					}
					if err := db.Create(&msgs).Error; err != nil {
						return fmt.Errorf("failed to seed messages: %w", err)
					}
				}
			}
			counter++
		}
	}
	log.Println("Seeded swipes, chats and messages.")

	return nil
}
