package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/eventa/match-service/internal/db"
	"github.com/eventa/match-service/internal/repository"
	"github.com/eventa/match-service/internal/service/discovery"
)

type DiscoveryHandler struct {
	discoveryService *discovery.Service
}

func NewDiscoveryHandler(discoveryService *discovery.Service) *DiscoveryHandler {
	return &DiscoveryHandler{discoveryService: discoveryService}
}

type ProfilesResponse struct {
	Profiles []db.User `json:"profiles"`
}

type ParticipantsResponse struct {
	Participants []db.User `json:"participants"`
}

// Profiles handles GET /api/profiles with optional filters.
func (h *DiscoveryHandler) Profiles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := repository.ProfileFilter{
		CurrentUserID: q.Get("currentUserId"),
		EventID:       q.Get("eventId"),
		Gender:        q.Get("gender"),
		Interests:     q["interests"],
	}
	if v := q.Get("minAge"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.MinAge = n
		}
	}
	if v := q.Get("maxAge"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.MaxAge = n
		}
	}

	profiles, err := h.discoveryService.Profiles(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	if profiles == nil {
		profiles = []db.User{}
	}

	writeJSON(w, http.StatusOK, ProfilesResponse{Profiles: profiles})
}

// Participants handles GET /api/events/{eventID}/participants.
func (h *DiscoveryHandler) Participants(w http.ResponseWriter, r *http.Request) {
	participants, err := h.discoveryService.Participants(r.Context(), chi.URLParam(r, "eventID"))
	if err != nil {
		writeError(w, err)
		return
	}
	if participants == nil {
		participants = []db.User{}
	}

	writeJSON(w, http.StatusOK, ParticipantsResponse{Participants: participants})
}
