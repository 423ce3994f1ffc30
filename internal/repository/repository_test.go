package repository_test

import (
	"testing"
	"time"

	"github.com/eventa/match-service/internal/db"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setup in-memory DB
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		NowFunc:        func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := database.AutoMigrate(
		&db.User{}, &db.Event{}, &db.EventParticipant{},
		&db.Swipe{}, &db.Chat{}, &db.Message{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return database
}

func mustCreate(t *testing.T, gdb *gorm.DB, value any) {
	t.Helper()
	if err := gdb.Create(value).Error; err != nil {
		t.Fatalf("failed to create %T: %v", value, err)
	}
}
