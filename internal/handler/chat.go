package handler

import (
	"net/http"

	"github.com/eventa/match-service/internal/db"
	"github.com/eventa/match-service/internal/repository"
	"github.com/eventa/match-service/internal/service/chat"
)

type ChatHandler struct {
	chatService *chat.Service
}

func NewChatHandler(chatService *chat.Service) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

type RosterResponse struct {
	Chats []repository.ChatSummary `json:"chats"`
}

type MessagesResponse struct {
	Messages []db.Message `json:"messages"`
}

type SendMessageRequest struct {
	ChatID   string `json:"chatId"`
	SenderID string `json:"senderId"`
	Content  string `json:"content"`
}

type ChatIDRequest struct {
	ChatID string `json:"chatId"`
}

type ConfirmationResponse struct {
	Message string `json:"message"`
	Deleted int64  `json:"deleted,omitempty"`
}

// Roster handles GET /api/chats?userId=.
func (h *ChatHandler) Roster(w http.ResponseWriter, r *http.Request) {
	chats, err := h.chatService.Roster(r.Context(), r.URL.Query().Get("userId"))
	if err != nil {
		writeError(w, err)
		return
	}
	if chats == nil {
		chats = []repository.ChatSummary{}
	}

	writeJSON(w, http.StatusOK, RosterResponse{Chats: chats})
}

// Messages handles GET /api/messages?chatId=.
func (h *ChatHandler) Messages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.chatService.Messages(r.Context(), r.URL.Query().Get("chatId"))
	if err != nil {
		writeError(w, err)
		return
	}
	if messages == nil {
		messages = []db.Message{}
	}

	writeJSON(w, http.StatusOK, MessagesResponse{Messages: messages})
}

// Send handles POST /api/messages.
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req SendMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	msg, err := h.chatService.Send(r.Context(), req.ChatID, req.SenderID, req.Content)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, msg)
}

// Clear handles POST /api/chats/clear.
func (h *ChatHandler) Clear(w http.ResponseWriter, r *http.Request) {
	var req ChatIDRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	deleted, err := h.chatService.Clear(r.Context(), req.ChatID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ConfirmationResponse{Message: "Chat cleared successfully", Deleted: deleted})
}

// Delete handles POST /api/chats/delete.
func (h *ChatHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req ChatIDRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.chatService.Delete(r.Context(), req.ChatID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ConfirmationResponse{Message: "Chat deleted successfully"})
}
