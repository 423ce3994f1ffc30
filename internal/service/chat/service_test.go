package chat_test

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
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/eventa/match-service/internal/app"
	"github.com/eventa/match-service/internal/cache"
	"github.com/eventa/match-service/internal/config"
	"github.com/eventa/match-service/internal/db"
	svcErr "github.com/eventa/match-service/internal/errors"
	"github.com/eventa/match-service/internal/repository"
	"github.com/eventa/match-service/internal/service/chat"
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

// provisionChat is a shortcut for tests that need an existing chat.
func provisionChat(t *testing.T, appCtx *app.AppContext, userA, userB, eventID string) *db.Chat {
	t.Helper()
	a, b := db.CanonicalPair(userA, userB)
	chat, err := repository.NewChatRepository(appCtx.DB).ProvisionChat(context.Background(), a, b, eventID)
	require.NoError(t, err)
	return chat
}

func TestSend_Validation(t *testing.T) {
	ctx := context.Background()
	appCtx := setupAppCtx(t)
	svc := chat.NewService(appCtx)
	existing := provisionChat(t, appCtx, "u1", "u2", "e1")

	_, err := svc.Send(ctx, "", "u1", "hello")
	assert.Equal(t, svcErr.CodeInvalidArgument, svcErr.CodeOf(err))

	_, err = svc.Send(ctx, existing.ID, "", "hello")
	assert.Equal(t, svcErr.CodeInvalidArgument, svcErr.CodeOf(err))

	_, err = svc.Send(ctx, existing.ID, "u1", "   \t\n")
	assert.Equal(t, svcErr.CodeInvalidArgument, svcErr.CodeOf(err))
}

func TestSend_ChatNotFound(t *testing.T) {
	ctx := context.Background()
	svc := chat.NewService(setupAppCtx(t))

	_, err := svc.Send(ctx, "missing-chat", "u1", "hello")
	assert.Equal(t, svcErr.CodeNotFound, svcErr.CodeOf(err))
}

func TestSend_SenderMustBeParticipant(t *testing.T) {
	ctx := context.Background()
	appCtx := setupAppCtx(t)
	svc := chat.NewService(appCtx)
	existing := provisionChat(t, appCtx, "u1", "u2", "e1")

	_, err := svc.Send(ctx, existing.ID, "u9", "let me in")
	assert.Equal(t, svcErr.CodeInvalidArgument, svcErr.CodeOf(err))

	// both real participants can write
	_, err = svc.Send(ctx, existing.ID, "u1", "hi")
	require.NoError(t, err)
	_, err = svc.Send(ctx, existing.ID, "u2", "hello back")
	require.NoError(t, err)
}

func TestMessages_OrderedHistory(t *testing.T) {
	ctx := context.Background()
	appCtx := setupAppCtx(t)
	svc := chat.NewService(appCtx)
	existing := provisionChat(t, appCtx, "u1", "u2", "e1")

	for _, content := range []string{"one", "two", "three"} {
		_, err := svc.Send(ctx, existing.ID, "u1", content)
		require.NoError(t, err)
	}

	messages, err := svc.Messages(ctx, existing.ID)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, "one", messages[0].Content)
	assert.Equal(t, "two", messages[1].Content)
	assert.Equal(t, "three", messages[2].Content)
}

func TestMessages_ChatNotFound(t *testing.T) {
	ctx := context.Background()
	svc := chat.NewService(setupAppCtx(t))

	_, err := svc.Messages(ctx, "missing-chat")
	assert.Equal(t, svcErr.CodeNotFound, svcErr.CodeOf(err))
}

func TestClear_PreservesChat(t *testing.T) {
	ctx := context.Background()
	appCtx := setupAppCtx(t)
	svc := chat.NewService(appCtx)
	existing := provisionChat(t, appCtx, "u1", "u2", "e1")

	_, err := svc.Send(ctx, existing.ID, "u1", "a")
	require.NoError(t, err)
	_, err = svc.Send(ctx, existing.ID, "u2", "b")
	require.NoError(t, err)

	deleted, err := svc.Clear(ctx, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	messages, err := svc.Messages(ctx, existing.ID)
	require.NoError(t, err)
	assert.Empty(t, messages)

	// the chat itself survives and still shows up in the roster
	summaries, err := svc.Roster(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, existing.ID, summaries[0].ChatID)
	assert.Nil(t, summaries[0].LastMessage)

	// clearing again is a no-op success
	deleted, err = svc.Clear(ctx, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)
}

func TestDelete_RemovesChatAndMessages(t *testing.T) {
	ctx := context.Background()
	appCtx := setupAppCtx(t)
	svc := chat.NewService(appCtx)
	existing := provisionChat(t, appCtx, "u1", "u2", "e1")

	_, err := svc.Send(ctx, existing.ID, "u1", "bye")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, existing.ID))

	_, err = svc.Messages(ctx, existing.ID)
	assert.Equal(t, svcErr.CodeNotFound, svcErr.CodeOf(err))

	for _, userID := range []string{"u1", "u2"} {
		summaries, err := svc.Roster(ctx, userID)
		require.NoError(t, err)
		assert.Empty(t, summaries)
	}

	var msgCount int64
	require.NoError(t, appCtx.DB.Model(&db.Message{}).Count(&msgCount).Error)
	assert.Equal(t, int64(0), msgCount)

	err = svc.Delete(ctx, existing.ID)
	assert.Equal(t, svcErr.CodeNotFound, svcErr.CodeOf(err))
}

func TestRoster_Validation(t *testing.T) {
	ctx := context.Background()
	svc := chat.NewService(setupAppCtx(t))

	_, err := svc.Roster(ctx, "")
	assert.Equal(t, svcErr.CodeInvalidArgument, svcErr.CodeOf(err))
}

func TestClear_Validation(t *testing.T) {
	ctx := context.Background()
	svc := chat.NewService(setupAppCtx(t))

	_, err := svc.Clear(ctx, "")
	assert.Equal(t, svcErr.CodeInvalidArgument, svcErr.CodeOf(err))

	err = svc.Delete(ctx, "")
	assert.Equal(t, svcErr.CodeInvalidArgument, svcErr.CodeOf(err))
}
