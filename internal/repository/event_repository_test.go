package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/eventa/match-service/internal/db"
	"github.com/eventa/match-service/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestListParticipants(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	repo := repository.NewEventRepository(dbase)

	mustCreate(t, dbase, &db.User{ID: "u1", Name: "A", Email: "a@test.com", PasswordHash: "x"})
	mustCreate(t, dbase, &db.User{ID: "u2", Name: "B", Email: "b@test.com", PasswordHash: "x"})
	mustCreate(t, dbase, &db.User{ID: "u3", Name: "C", Email: "c@test.com", PasswordHash: "x"})
	mustCreate(t, dbase, &db.Event{ID: "e1", Title: "Yoga", AuthorID: "u1", StartsAt: time.Now()})

	base := time.Now().UTC().Truncate(time.Second)
	mustCreate(t, dbase, &db.EventParticipant{EventID: "e1", UserID: "u2", JoinedAt: base})
	mustCreate(t, dbase, &db.EventParticipant{EventID: "e1", UserID: "u1", JoinedAt: base.Add(time.Minute)})
	mustCreate(t, dbase, &db.EventParticipant{EventID: "e2", UserID: "u3", JoinedAt: base})

	users, err := repo.ListParticipants(ctx, "e1")
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "u2", users[0].ID) // join order
	assert.Equal(t, "u1", users[1].ID)
}

func TestGetEvent_NotFound(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	repo := repository.NewEventRepository(dbase)

	_, err := repo.GetEvent(ctx, "missing")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}
