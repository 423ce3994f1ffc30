package match

import (
	"context"
	"errors"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/eventa/match-service/internal/app"
	"github.com/eventa/match-service/internal/db"
	svcErr "github.com/eventa/match-service/internal/errors"
	"github.com/eventa/match-service/internal/repository"
)

// SwipeRequest is one directional decision submitted by a client.
// EventID is optional; empty means the global scope.
type SwipeRequest struct {
	SwiperID  string `json:"swiperId"`
	TargetID  string `json:"targetId"`
	Direction string `json:"direction"`
	EventID   string `json:"eventId,omitempty"`
}

// SwipeResult reports the recorded swipe, whether it completed a mutual like,
// and the provisioned chat when it did. Match=true with a nil Chat means the
// mutual like is durable but provisioning hit an unexpected error; a later
// call converges on the same chat.
type SwipeResult struct {
	Swipe *db.Swipe `json:"swipe"`
	Match bool      `json:"match"`
	Chat  *db.Chat  `json:"chat,omitempty"`
}

// Service implements the swipe/match/provision flow: record the decision,
// detect reciprocity on likes, and provision the pair's chat exactly once.
type Service struct {
	appCtx    *app.AppContext
	swipeRepo *repository.SwipeRepository
	chatRepo  *repository.ChatRepository
}

// NewService creates a new match service with dependencies from AppContext.
func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:    appCtx,
		swipeRepo: repository.NewSwipeRepository(appCtx.DB),
		chatRepo:  repository.NewChatRepository(appCtx.DB),
	}
}

// RecordSwipe persists a swipe and runs the match flow.
//
// Behavior:
//  1. Validates the request (ids and direction present, no self-swipes).
//  2. Inserts the swipe; a duplicate (swiper, target, event) surfaces as
//     ALREADY_EXISTS and nothing further runs.
//  3. Likes bump the target's received-likes counter in Redis (best effort).
//  4. A pass never matches; the reciprocity lookup is skipped entirely.
//  5. On a reciprocal like the pair is canonicalized and the chat
//     provisioned idempotently. There is deliberately no transaction around
//     record -> check -> provision: two racing reciprocal likes may both see
//     mutual=true, and both converge on the same chat because provisioning
//     tolerates the uniqueness conflict.
//  6. If provisioning fails for any other reason the match is still
//     reported, with a nil chat.
//
// Example:
//
//	svc.RecordSwipe(ctx, match.SwipeRequest{SwiperID: "u1", TargetID: "u2", Direction: "like", EventID: "e1"})
func (s *Service) RecordSwipe(ctx context.Context, req SwipeRequest) (*SwipeResult, error) {
	s.appCtx.Logger.Debug(
		"RecordSwipe called",
		"swiper", req.SwiperID,
		"target", req.TargetID,
		"direction", req.Direction,
		"event", req.EventID,
	)

	if req.SwiperID == "" || req.TargetID == "" || req.Direction == "" {
		return nil, svcErr.InvalidArgument("swiperId, targetId and direction are required")
	}
	if req.Direction != db.DirectionLike && req.Direction != db.DirectionPass {
		return nil, svcErr.InvalidArgument("direction must be 'like' or 'pass'")
	}
	if req.SwiperID == req.TargetID {
		return nil, svcErr.InvalidArgument("cannot swipe on yourself")
	}

	swipe := &db.Swipe{
		SwiperID:  req.SwiperID,
		TargetID:  req.TargetID,
		Direction: req.Direction,
		EventID:   req.EventID,
	}
	if err := s.swipeRepo.CreateSwipe(ctx, swipe); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, svcErr.Wrap(svcErr.CodeAlreadyExists, "already swiped", err)
		}
		s.appCtx.Logger.Error("CreateSwipe failed", "err", err)
		return nil, svcErr.Map(err)
	}

	result := &SwipeResult{Swipe: swipe, Match: false}

	if req.Direction == db.DirectionPass {
		return result, nil
	}

	// update cache: one more like received by the target
	key := s.appCtx.RedisCache.KeyForLikeCount(req.TargetID)
	_, _ = s.appCtx.RedisCache.Incr(ctx, key)
	_ = s.appCtx.RedisCache.Client.Expire(ctx, key, time.Hour).Err()

	mutual, err := s.swipeRepo.HasLike(ctx, req.TargetID, req.SwiperID, req.EventID)
	if err != nil {
		s.appCtx.Logger.Error("HasLike failed", "err", err)
		return nil, svcErr.Map(err)
	}
	if !mutual {
		return result, nil
	}
	result.Match = true

	userA, userB := db.CanonicalPair(req.SwiperID, req.TargetID)
	chat, err := s.chatRepo.ProvisionChat(ctx, userA, userB, req.EventID)
	if err != nil {
		// Both like rows are durable; report the match and let a later call
		// or the symmetric swipe re-provision the chat.
		s.appCtx.Logger.Warn("ProvisionChat failed after mutual like",
			"user_a", userA, "user_b", userB, "event", req.EventID, "err", err)
		return result, nil
	}
	result.Chat = chat

	s.appCtx.Logger.Info("mutual like matched",
		"user_a", userA, "user_b", userB, "event", req.EventID, "chat", chat.ID)

	return result, nil
}

// CountLikesReceived returns how many users liked the given user.
// Cache-first strategy:
//  1. Attempts to read from Redis (likes:count:userID).
//  2. If cache miss or parse error, falls back to DB.
//  3. On DB fetch, updates Redis with a 1h TTL.
//
// Example:
//
//	svc.CountLikesReceived(ctx, "u1")
func (s *Service) CountLikesReceived(ctx context.Context, userID string) (int64, error) {
	s.appCtx.Logger.Debug("CountLikesReceived called", "user", userID)

	if userID == "" {
		return 0, svcErr.InvalidArgument("userId is required")
	}

	key := s.appCtx.RedisCache.KeyForLikeCount(userID)

	// try cache first
	if cached, _ := s.appCtx.RedisCache.Get(ctx, key); cached != "" {
		if n, err := strconv.ParseInt(cached, 10, 64); err == nil {
			// refresh TTL since this user is active
			_ = s.appCtx.RedisCache.Client.Expire(ctx, key, time.Hour).Err()
			return n, nil
		}
	}

	// fallback: DB
	count, err := s.swipeRepo.CountLikesReceived(ctx, userID)
	if err != nil {
		return 0, svcErr.Map(err)
	}

	// set + TTL refresh
	_ = s.appCtx.RedisCache.Set(ctx, key, strconv.FormatInt(count, 10), time.Hour)

	return count, nil
}
