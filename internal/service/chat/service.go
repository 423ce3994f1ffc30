package chat

import (
	"context"
	"strings"

	"github.com/eventa/match-service/internal/app"
	"github.com/eventa/match-service/internal/db"
	svcErr "github.com/eventa/match-service/internal/errors"
	"github.com/eventa/match-service/internal/repository"
)

// Service manages the lifecycle of a provisioned chat: appending and listing
// messages, clearing history, deleting the chat, and the per-user roster.
type Service struct {
	appCtx      *app.AppContext
	chatRepo    *repository.ChatRepository
	messageRepo *repository.MessageRepository
}

// NewService creates a new chat service with dependencies from AppContext.
func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:      appCtx,
		chatRepo:    repository.NewChatRepository(appCtx.DB),
		messageRepo: repository.NewMessageRepository(appCtx.DB),
	}
}

// Send appends a message to a chat.
//
// Behavior:
//   - Rejects missing ids and empty or whitespace-only content.
//   - NOT_FOUND when the chat does not exist.
//   - The sender must be one of the chat's two participants; this is a
//     logical rule, not a schema constraint.
func (s *Service) Send(ctx context.Context, chatID, senderID, content string) (*db.Message, error) {
	s.appCtx.Logger.Debug("Send called", "chat", chatID, "sender", senderID)

	if chatID == "" || senderID == "" {
		return nil, svcErr.InvalidArgument("chatId and senderId are required")
	}
	if strings.TrimSpace(content) == "" {
		return nil, svcErr.InvalidArgument("content must not be empty")
	}

	chat, err := s.chatRepo.GetChat(ctx, chatID)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	if senderID != chat.UserA && senderID != chat.UserB {
		return nil, svcErr.InvalidArgument("sender is not a participant of this chat")
	}

	msg := &db.Message{
		ChatID:   chatID,
		SenderID: senderID,
		Content:  content,
	}
	if err := s.messageRepo.CreateMessage(ctx, msg); err != nil {
		s.appCtx.Logger.Error("CreateMessage failed", "chat", chatID, "err", err)
		return nil, svcErr.Map(err)
	}
	return msg, nil
}

// Messages returns a chat's full history in total creation order
// (created_at ascending, message id as tie-break). NOT_FOUND when the chat
// does not exist.
func (s *Service) Messages(ctx context.Context, chatID string) ([]db.Message, error) {
	s.appCtx.Logger.Debug("Messages called", "chat", chatID)

	if chatID == "" {
		return nil, svcErr.InvalidArgument("chatId is required")
	}
	if _, err := s.chatRepo.GetChat(ctx, chatID); err != nil {
		return nil, svcErr.Map(err)
	}

	messages, err := s.messageRepo.ListMessages(ctx, chatID)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return messages, nil
}

// Clear deletes every message in the chat but keeps the chat row.
// Idempotent: clearing an empty chat, or one whose row is already gone,
// succeeds and reports zero deletions. That makes it the recovery path for
// the benign orphan state a half-finished delete can leave behind.
func (s *Service) Clear(ctx context.Context, chatID string) (int64, error) {
	s.appCtx.Logger.Debug("Clear called", "chat", chatID)

	if chatID == "" {
		return 0, svcErr.InvalidArgument("chatId is required")
	}

	deleted, err := s.messageRepo.DeleteByChat(ctx, chatID)
	if err != nil {
		s.appCtx.Logger.Error("DeleteByChat failed", "chat", chatID, "err", err)
		return 0, svcErr.Map(err)
	}
	return deleted, nil
}

// Delete removes the chat and all of its messages as one logical unit.
// NOT_FOUND when the chat does not exist.
func (s *Service) Delete(ctx context.Context, chatID string) error {
	s.appCtx.Logger.Debug("Delete called", "chat", chatID)

	if chatID == "" {
		return svcErr.InvalidArgument("chatId is required")
	}

	if err := s.chatRepo.DeleteChat(ctx, chatID); err != nil {
		return svcErr.Map(err)
	}

	s.appCtx.Logger.Info("chat deleted", "chat", chatID)
	return nil
}

// Roster returns the user's chats annotated with partner identity and most
// recent message, newest activity first. Read-only.
func (s *Service) Roster(ctx context.Context, userID string) ([]repository.ChatSummary, error) {
	s.appCtx.Logger.Debug("Roster called", "user", userID)

	if userID == "" {
		return nil, svcErr.InvalidArgument("userId is required")
	}

	summaries, err := s.chatRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return summaries, nil
}
