package matches

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dextiii09/pingnewapp/internal/domain/model"
	"github.com/dextiii09/pingnewapp/internal/domain/rules"
	pgrepo "github.com/dextiii09/pingnewapp/internal/repo/postgres"
)

type stubMatchStore struct {
	records []pgrepo.MatchWithProfileRecord
	matches map[string]model.Match
}

func (s *stubMatchStore) Upsert(_ context.Context, userA, userB string, now time.Time) (model.Match, error) {
	if s.matches == nil {
		s.matches = make(map[string]model.Match)
	}

	id := rules.MatchID(userA, userB)
	if existing, ok := s.matches[id]; ok {
		existing.LastActive = now
		s.matches[id] = existing
		return existing, nil
	}

	a, b := rules.SortPair(userA, userB)
	match := model.Match{ID: id, UserA: a, UserB: b, LastActive: now, CreatedAt: now}
	s.matches[id] = match
	return match, nil
}

func (s *stubMatchStore) ListForUser(_ context.Context, _ string, _ int) ([]pgrepo.MatchWithProfileRecord, error) {
	return s.records, nil
}

type stubSwipeStore struct {
	positive map[string]bool
}

func (s *stubSwipeStore) HasPositiveFrom(_ context.Context, actorID, targetID string) (bool, error) {
	return s.positive[actorID+">"+targetID], nil
}

func TestListMapsRecords(t *testing.T) {
	store := &stubMatchStore{records: []pgrepo.MatchWithProfileRecord{
		{ID: "a_b", OtherUserID: "b", OtherDisplayName: "Brand B", LastMessage: "hi"},
	}}
	svc := NewService(Dependencies{MatchStore: store, SwipeStore: &stubSwipeStore{}})

	entries, err := svc.List(context.Background(), "a")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 1 || entries[0].MatchID != "a_b" || entries[0].OtherUserID != "b" {
		t.Fatalf("unexpected entries %#v", entries)
	}
}

func TestRepairRecreatesMatchFromLedgers(t *testing.T) {
	matchStore := &stubMatchStore{}
	swipeStore := &stubSwipeStore{positive: map[string]bool{
		"u1>u2": true,
		"u2>u1": true,
	}}
	svc := NewService(Dependencies{MatchStore: matchStore, SwipeStore: swipeStore})

	match, err := svc.Repair(context.Background(), "u2", "u1")
	if err != nil {
		t.Fatalf("repair: %v", err)
	}
	if match.ID != rules.MatchID("u1", "u2") {
		t.Fatalf("unexpected match id %s", match.ID)
	}
}

func TestRepairWithoutMutualLikes(t *testing.T) {
	swipeStore := &stubSwipeStore{positive: map[string]bool{"u1>u2": true}}
	svc := NewService(Dependencies{MatchStore: &stubMatchStore{}, SwipeStore: swipeStore})

	if _, err := svc.Repair(context.Background(), "u1", "u2"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRepairRejectsSamePair(t *testing.T) {
	svc := NewService(Dependencies{MatchStore: &stubMatchStore{}, SwipeStore: &stubSwipeStore{}})

	if _, err := svc.Repair(context.Background(), "u1", "u1"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
