package matches

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dextiii09/pingnewapp/internal/domain/model"
	pgrepo "github.com/dextiii09/pingnewapp/internal/repo/postgres"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("match not found")
)

const defaultListLimit = 100

type MatchStore interface {
	Upsert(ctx context.Context, userA, userB string, now time.Time) (model.Match, error)
	ListForUser(ctx context.Context, userID string, limit int) ([]pgrepo.MatchWithProfileRecord, error)
}

type SwipeStore interface {
	HasPositiveFrom(ctx context.Context, actorID, targetID string) (bool, error)
}

// Entry is one row of a user's match list with the counterpart snapshot.
type Entry struct {
	MatchID          string
	OtherUserID      string
	OtherDisplayName string
	OtherLocation    string
	LastMessage      string
	LastActive       time.Time
	CreatedAt        time.Time
}

type Service struct {
	matchStore MatchStore
	swipeStore SwipeStore
	now        func() time.Time
}

type Dependencies struct {
	MatchStore MatchStore
	SwipeStore SwipeStore
}

func NewService(deps Dependencies) *Service {
	return &Service{
		matchStore: deps.MatchStore,
		swipeStore: deps.SwipeStore,
		now:        time.Now,
	}
}

func (s *Service) List(ctx context.Context, userID string) ([]Entry, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrValidation
	}
	if s.matchStore == nil {
		return nil, fmt.Errorf("match store is nil")
	}

	records, err := s.matchStore.ListForUser(ctx, userID, defaultListLimit)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	out := make([]Entry, 0, len(records))
	for _, rec := range records {
		out = append(out, Entry{
			MatchID:          rec.ID,
			OtherUserID:      rec.OtherUserID,
			OtherDisplayName: rec.OtherDisplayName,
			OtherLocation:    rec.OtherLocation,
			LastMessage:      rec.LastMessage,
			LastActive:       rec.LastActive,
			CreatedAt:        rec.CreatedAt,
		})
	}
	return out, nil
}

// Repair rebuilds a match record from the two swipe ledgers. The match
// record is only a cache of the ledgers, so a lost row can always be
// reconstructed as long as both sides still prove mutual interest.
func (s *Service) Repair(ctx context.Context, userA, userB string) (model.Match, error) {
	userA = strings.TrimSpace(userA)
	userB = strings.TrimSpace(userB)
	if userA == "" || userB == "" || userA == userB {
		return model.Match{}, ErrValidation
	}
	if s.matchStore == nil || s.swipeStore == nil {
		return model.Match{}, fmt.Errorf("match dependencies are not configured")
	}

	aLikesB, err := s.swipeStore.HasPositiveFrom(ctx, userA, userB)
	if err != nil {
		return model.Match{}, fmt.Errorf("read ledger %s: %w", userA, err)
	}
	bLikesA, err := s.swipeStore.HasPositiveFrom(ctx, userB, userA)
	if err != nil {
		return model.Match{}, fmt.Errorf("read ledger %s: %w", userB, err)
	}
	if !aLikesB || !bLikesA {
		return model.Match{}, ErrNotFound
	}

	match, err := s.matchStore.Upsert(ctx, userA, userB, s.now().UTC())
	if err != nil {
		return model.Match{}, fmt.Errorf("upsert repaired match: %w", err)
	}
	return match, nil
}
