package discovery

import (
	"context"
	"encoding/json"

	"github.com/eventa/match-service/internal/app"
	"github.com/eventa/match-service/internal/db"
	svcErr "github.com/eventa/match-service/internal/errors"
	"github.com/eventa/match-service/internal/repository"
)

// Service produces swipe candidates and event participant listings. It is
// read-only glue around the user/event repositories; the matching core only
// consumes the identifiers it returns.
type Service struct {
	appCtx    *app.AppContext
	userRepo  *repository.UserRepository
	eventRepo *repository.EventRepository
}

// NewService creates a new discovery service with dependencies from AppContext.
func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:    appCtx,
		userRepo:  repository.NewUserRepository(appCtx.DB),
		eventRepo: repository.NewEventRepository(appCtx.DB),
	}
}

// Profiles returns swipe candidates for the filter's current user. The SQL
// predicates compose in the repository; interests are matched here because
// they live in a JSON column.
func (s *Service) Profiles(ctx context.Context, filter repository.ProfileFilter) ([]db.User, error) {
	s.appCtx.Logger.Debug("Profiles called", "user", filter.CurrentUserID, "event", filter.EventID)

	if filter.CurrentUserID == "" {
		return nil, svcErr.InvalidArgument("currentUserId is required")
	}

	users, err := s.userRepo.ListProfiles(ctx, filter)
	if err != nil {
		return nil, svcErr.Map(err)
	}

	if len(filter.Interests) > 0 {
		users = filterByInterests(users, filter.Interests)
	}
	return users, nil
}

// Participants lists the users who joined an event. NOT_FOUND when the event
// does not exist.
func (s *Service) Participants(ctx context.Context, eventID string) ([]db.User, error) {
	s.appCtx.Logger.Debug("Participants called", "event", eventID)

	if eventID == "" {
		return nil, svcErr.InvalidArgument("eventId is required")
	}
	if _, err := s.eventRepo.GetEvent(ctx, eventID); err != nil {
		return nil, svcErr.Map(err)
	}

	users, err := s.eventRepo.ListParticipants(ctx, eventID)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return users, nil
}

// filterByInterests keeps users sharing at least one of the wanted interests.
func filterByInterests(users []db.User, wanted []string) []db.User {
	var out []db.User
	for _, u := range users {
		if len(u.Interests) == 0 {
			continue
		}
		var interests []string
		if err := json.Unmarshal(u.Interests, &interests); err != nil {
			continue
		}
		for _, have := range interests {
			if containsString(wanted, have) {
				out = append(out, u)
				break
			}
		}
	}
	return out
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
