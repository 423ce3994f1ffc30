package discovery_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/eventa/match-service/internal/app"
	"github.com/eventa/match-service/internal/cache"
	"github.com/eventa/match-service/internal/config"
	"github.com/eventa/match-service/internal/db"
	svcErr "github.com/eventa/match-service/internal/errors"
	"github.com/eventa/match-service/internal/repository"
	"github.com/eventa/match-service/internal/service/discovery"
)

func setupAppCtx(t *testing.T) *app.AppContext {
	t.Helper()

	dbName := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	dbase, err := gorm.Open(sqlite.Open(dbName), &gorm.Config{
		NowFunc:                func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	sqlDB, err := dbase.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, dbase.AutoMigrate(
		&db.User{}, &db.Event{}, &db.EventParticipant{},
		&db.Swipe{}, &db.Chat{}, &db.Message{},
	))

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(func() { mr.Close() })

	cfg := config.New()
	cfg.Redis.Addr = mr.Addr()

	redisCache := cache.NewRedisCache(cfg)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return app.New(dbase, redisCache, logger)
}

func TestProfiles_RequiresCurrentUser(t *testing.T) {
	ctx := context.Background()
	svc := discovery.NewService(setupAppCtx(t))

	_, err := svc.Profiles(ctx, repository.ProfileFilter{})
	assert.Equal(t, svcErr.CodeInvalidArgument, svcErr.CodeOf(err))
}

func TestProfiles_InterestFilter(t *testing.T) {
	ctx := context.Background()
	appCtx := setupAppCtx(t)
	svc := discovery.NewService(appCtx)

	users := []db.User{
		{ID: "me", Name: "Me", Email: "me@test.com", PasswordHash: "x"},
		{ID: "u1", Name: "A", Email: "a@test.com", PasswordHash: "x", Interests: datatypes.JSON(`["hiking","music"]`)},
		{ID: "u2", Name: "B", Email: "b@test.com", PasswordHash: "x", Interests: datatypes.JSON(`["food"]`)},
		{ID: "u3", Name: "C", Email: "c@test.com", PasswordHash: "x"},
	}
	for i := range users {
		require.NoError(t, appCtx.DB.Create(&users[i]).Error)
	}

	profiles, err := svc.Profiles(ctx, repository.ProfileFilter{
		CurrentUserID: "me",
		Interests:     []string{"music"},
		Limit:         10,
	})
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "u1", profiles[0].ID)
}

func TestParticipants(t *testing.T) {
	ctx := context.Background()
	appCtx := setupAppCtx(t)
	svc := discovery.NewService(appCtx)

	require.NoError(t, appCtx.DB.Create(&db.User{ID: "u1", Name: "A", Email: "a@test.com", PasswordHash: "x"}).Error)
	require.NoError(t, appCtx.DB.Create(&db.Event{ID: "e1", Title: "Yoga", AuthorID: "u1", StartsAt: time.Now()}).Error)
	require.NoError(t, appCtx.DB.Create(&db.EventParticipant{EventID: "e1", UserID: "u1"}).Error)

	participants, err := svc.Participants(ctx, "e1")
	require.NoError(t, err)
	require.Len(t, participants, 1)
	assert.Equal(t, "u1", participants[0].ID)

	_, err = svc.Participants(ctx, "missing")
	assert.Equal(t, svcErr.CodeNotFound, svcErr.CodeOf(err))
}
