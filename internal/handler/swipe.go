package handler

import (
	"net/http"

	"github.com/eventa/match-service/internal/service/match"
)

type SwipeHandler struct {
	matchService *match.Service
}

func NewSwipeHandler(matchService *match.Service) *SwipeHandler {
	return &SwipeHandler{matchService: matchService}
}

type LikesCountResponse struct {
	Count int64 `json:"count"`
}

// Record handles POST /api/swipe.
func (h *SwipeHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req match.SwipeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.matchService.RecordSwipe(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// LikesCount handles GET /api/likes/count?userId=.
func (h *SwipeHandler) LikesCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.matchService.CountLikesReceived(r.Context(), r.URL.Query().Get("userId"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, LikesCountResponse{Count: count})
}
