package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/eventa/match-service/internal/app"
	"github.com/eventa/match-service/internal/handler"
	"github.com/eventa/match-service/internal/service/chat"
	"github.com/eventa/match-service/internal/service/discovery"
	"github.com/eventa/match-service/internal/service/match"
)

// NewRouter wires services and handlers into the HTTP surface.
func NewRouter(appCtx *app.AppContext) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	swipeHandler := handler.NewSwipeHandler(match.NewService(appCtx))
	chatHandler := handler.NewChatHandler(chat.NewService(appCtx))
	discoveryHandler := handler.NewDiscoveryHandler(discovery.NewService(appCtx))

	r.Route("/api", func(r chi.Router) {
		r.Post("/swipe", swipeHandler.Record)
		r.Get("/likes/count", swipeHandler.LikesCount)

		r.Get("/chats", chatHandler.Roster)
		r.Post("/chats/clear", chatHandler.Clear)
		r.Post("/chats/delete", chatHandler.Delete)

		r.Get("/messages", chatHandler.Messages)
		r.Post("/messages", chatHandler.Send)

		r.Get("/profiles", discoveryHandler.Profiles)
		r.Get("/events/{eventID}/participants", discoveryHandler.Participants)
	})

	return r
}
