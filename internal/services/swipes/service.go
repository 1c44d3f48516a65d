package swipes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dextiii09/pingnewapp/internal/domain/enums"
	"github.com/dextiii09/pingnewapp/internal/domain/model"
	pgrepo "github.com/dextiii09/pingnewapp/internal/repo/postgres"
)

var (
	ErrValidation       = errors.New("validation error")
	ErrSelfSwipe        = errors.New("self swipe")
	ErrInvalidDirection = errors.New("invalid swipe direction")
	ErrTargetNotFound   = errors.New("target not found")
)

// TooFastError reports a rate-limited swipe together with the wait hint.
type TooFastError struct {
	RetryAfterSec int64
}

func (e TooFastError) Error() string {
	return fmt.Sprintf("too fast, retry after %d seconds", e.RetryAfterSec)
}

type SwipeStore interface {
	Append(ctx context.Context, actorID, targetID string, direction enums.SwipeDirection, now time.Time) (model.Swipe, error)
	HasPositiveFrom(ctx context.Context, actorID, targetID string) (bool, error)
}

type ReceivedSwipeStore interface {
	Append(ctx context.Context, targetID, fromID string, direction enums.SwipeDirection, now time.Time) error
}

type MatchStore interface {
	Upsert(ctx context.Context, userA, userB string, now time.Time) (model.Match, error)
}

type ProfileStore interface {
	Get(ctx context.Context, userID string) (model.User, error)
	BumpMatchScore(ctx context.Context, userID string, delta, defaultScore int) error
}

type LikesCache interface {
	InvalidateUnseenCount(ctx context.Context, userID string) error
}

type RateLimiter interface {
	AllowSwipe(ctx context.Context, userID string) (int64, bool, error)
}

type Config struct {
	MatchScoreNudge   int
	DefaultMatchScore int
}

type SwipeResult struct {
	IsMatch bool
	Match   *model.Match
	// MatchedWith carries the other party's profile snapshot when a
	// match was produced.
	MatchedWith *model.User
}

type Service struct {
	swipeStore    SwipeStore
	receivedStore ReceivedSwipeStore
	matchStore    MatchStore
	profiles      ProfileStore
	likesCache    LikesCache
	rateLimiter   RateLimiter
	cfg           Config
	log           *zap.Logger
	now           func() time.Time
}

type Dependencies struct {
	SwipeStore    SwipeStore
	ReceivedStore ReceivedSwipeStore
	MatchStore    MatchStore
	Profiles      ProfileStore
	LikesCache    LikesCache
	RateLimiter   RateLimiter
	Logger        *zap.Logger
}

func NewService(deps Dependencies, cfg Config) *Service {
	if cfg.MatchScoreNudge <= 0 {
		cfg.MatchScoreNudge = 1
	}
	if cfg.DefaultMatchScore <= 0 {
		cfg.DefaultMatchScore = 70
	}
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Service{
		swipeStore:    deps.SwipeStore,
		receivedStore: deps.ReceivedStore,
		matchStore:    deps.MatchStore,
		profiles:      deps.Profiles,
		likesCache:    deps.LikesCache,
		rateLimiter:   deps.RateLimiter,
		cfg:           cfg,
		log:           log,
		now:           time.Now,
	}
}

// Swipe records the actor's decision and reports whether it completed a
// mutual match. The swipe ledger write is the source of truth: the
// mirror record and score nudge are best-effort side effects that never
// fail the call once the ledger write has succeeded.
func (s *Service) Swipe(ctx context.Context, actorID, targetID string, direction enums.SwipeDirection) (SwipeResult, error) {
	actorID = strings.TrimSpace(actorID)
	targetID = strings.TrimSpace(targetID)
	if actorID == "" || targetID == "" {
		return SwipeResult{}, ErrValidation
	}
	if actorID == targetID {
		return SwipeResult{}, ErrSelfSwipe
	}
	switch direction {
	case enums.SwipePass, enums.SwipeLike, enums.SwipeSuperLike:
	default:
		return SwipeResult{}, ErrInvalidDirection
	}
	if s.swipeStore == nil || s.receivedStore == nil || s.matchStore == nil || s.profiles == nil {
		return SwipeResult{}, fmt.Errorf("swipe dependencies are not configured")
	}

	if direction.Positive() && s.rateLimiter != nil {
		retryAfter, allowed, err := s.rateLimiter.AllowSwipe(ctx, actorID)
		if err != nil {
			return SwipeResult{}, fmt.Errorf("apply swipe rate limiter: %w", err)
		}
		if !allowed {
			return SwipeResult{}, TooFastError{RetryAfterSec: retryAfter}
		}
	}

	target, err := s.profiles.Get(ctx, targetID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrUserNotFound) {
			return SwipeResult{}, ErrTargetNotFound
		}
		return SwipeResult{}, fmt.Errorf("load target: %w", err)
	}

	now := s.now().UTC()
	if _, err := s.swipeStore.Append(ctx, actorID, targetID, direction, now); err != nil {
		return SwipeResult{}, fmt.Errorf("append swipe: %w", err)
	}

	if direction == enums.SwipePass {
		return SwipeResult{IsMatch: false}, nil
	}

	s.mirrorReceivedSwipe(ctx, targetID, actorID, direction, now)

	reciprocated, err := s.swipeStore.HasPositiveFrom(ctx, targetID, actorID)
	if err != nil {
		return SwipeResult{}, fmt.Errorf("check reciprocity: %w", err)
	}
	if !reciprocated {
		return SwipeResult{IsMatch: false}, nil
	}

	match, err := s.matchStore.Upsert(ctx, actorID, targetID, now)
	if err != nil {
		return SwipeResult{}, fmt.Errorf("upsert match: %w", err)
	}

	s.nudgeMatchScores(ctx, actorID, targetID)

	return SwipeResult{
		IsMatch:     true,
		Match:       &match,
		MatchedWith: &target,
	}, nil
}

// mirrorReceivedSwipe writes the "who liked you" record under the
// target. A failure only degrades that feature, so it is logged and
// swallowed; the primary swipe has already been recorded.
func (s *Service) mirrorReceivedSwipe(ctx context.Context, targetID, fromID string, direction enums.SwipeDirection, now time.Time) {
	if err := s.receivedStore.Append(ctx, targetID, fromID, direction, now); err != nil {
		s.log.Warn("received swipe mirror write failed",
			zap.String("target_id", targetID),
			zap.String("from_id", fromID),
			zap.Error(err))
		return
	}

	if s.likesCache == nil {
		return
	}
	if err := s.likesCache.InvalidateUnseenCount(ctx, targetID); err != nil {
		s.log.Warn("unseen likes cache invalidation failed",
			zap.String("target_id", targetID),
			zap.Error(err))
	}
}

func (s *Service) nudgeMatchScores(ctx context.Context, actorID, targetID string) {
	for _, userID := range []string{actorID, targetID} {
		if err := s.profiles.BumpMatchScore(ctx, userID, s.cfg.MatchScoreNudge, s.cfg.DefaultMatchScore); err != nil {
			s.log.Warn("match score nudge failed",
				zap.String("user_id", userID),
				zap.Error(err))
		}
	}
}
