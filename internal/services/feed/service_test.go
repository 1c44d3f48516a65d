package feed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dextiii09/pingnewapp/internal/domain/enums"
	"github.com/dextiii09/pingnewapp/internal/domain/model"
	pgrepo "github.com/dextiii09/pingnewapp/internal/repo/postgres"
)

type stubProfileStore struct {
	users      map[string]model.User
	candidates []model.User
	seeds      []model.User

	seedCalls     int
	seedExcluded  []string
	candidatesErr error
}

func (s *stubProfileStore) Get(_ context.Context, userID string) (model.User, error) {
	user, ok := s.users[userID]
	if !ok {
		return model.User{}, pgrepo.ErrUserNotFound
	}
	return user, nil
}

func (s *stubProfileStore) ListCandidates(_ context.Context, _ enums.Role, _ string, _ int) ([]model.User, error) {
	if s.candidatesErr != nil {
		return nil, s.candidatesErr
	}
	return append([]model.User(nil), s.candidates...), nil
}

func (s *stubProfileStore) ListSeeds(_ context.Context, _ enums.Role, excludeIDs []string, _ int) ([]model.User, error) {
	s.seedCalls++
	s.seedExcluded = append([]string(nil), excludeIDs...)

	excluded := make(map[string]struct{}, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = struct{}{}
	}

	out := make([]model.User, 0, len(s.seeds))
	for _, seed := range s.seeds {
		if _, ok := excluded[seed.ID]; ok {
			continue
		}
		out = append(out, seed)
	}
	return out, nil
}

type stubReceivedStore struct {
	superLikers []string
}

func (s *stubReceivedStore) ListUnseenSuperLikers(_ context.Context, _ string) ([]string, error) {
	return append([]string(nil), s.superLikers...), nil
}

func scorePtr(v int) *int { return &v }

func activeUser(id string, role enums.Role, score *int) model.User {
	return model.User{
		ID:          id,
		DisplayName: "user " + id,
		Role:        role,
		Status:      enums.UserStatusActive,
		MatchScore:  score,
		CreatedAt:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func newTestService(profiles *stubProfileStore, received *stubReceivedStore) *Service {
	return NewService(Dependencies{Profiles: profiles, Received: received}, Config{
		SuperLikeBoost:    20,
		DefaultMatchScore: 70,
		MinPoolSize:       3,
		SeedPoolSize:      10,
		MaxFeedSize:       100,
	})
}

func TestGetRejectsEmptyViewer(t *testing.T) {
	svc := newTestService(&stubProfileStore{}, &stubReceivedStore{})

	if _, err := svc.Get(context.Background(), "  ", false); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestGetRejectsInactiveViewer(t *testing.T) {
	viewer := activeUser("creator-1", enums.RoleCreator, nil)
	viewer.Status = enums.UserStatusBanned

	profiles := &stubProfileStore{users: map[string]model.User{viewer.ID: viewer}}
	svc := newTestService(profiles, &stubReceivedStore{})

	if _, err := svc.Get(context.Background(), viewer.ID, false); !errors.Is(err, ErrViewerInactive) {
		t.Fatalf("expected ErrViewerInactive, got %v", err)
	}
}

func TestGetPutsSuperlikersFirst(t *testing.T) {
	viewer := activeUser("creator-1", enums.RoleCreator, nil)
	profiles := &stubProfileStore{
		users: map[string]model.User{viewer.ID: viewer},
		candidates: []model.User{
			activeUser("brand-1", enums.RoleBrand, scorePtr(90)),
			activeUser("brand-2", enums.RoleBrand, scorePtr(60)),
			activeUser("brand-3", enums.RoleBrand, nil),
		},
	}
	received := &stubReceivedStore{superLikers: []string{"brand-2"}}

	svc := newTestService(profiles, received)
	feed, err := svc.Get(context.Background(), viewer.ID, false)
	if err != nil {
		t.Fatalf("get feed: %v", err)
	}

	if len(feed) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(feed))
	}
	if feed[0].User.ID != "brand-2" || !feed[0].Priority {
		t.Fatalf("expected brand-2 first with priority, got %s priority=%v", feed[0].User.ID, feed[0].Priority)
	}
	if feed[0].EffectiveScore != 80 {
		t.Fatalf("expected boosted score 80, got %d", feed[0].EffectiveScore)
	}
	if feed[1].User.ID != "brand-1" || feed[2].User.ID != "brand-3" {
		t.Fatalf("expected store order among non-priority candidates, got %s then %s", feed[1].User.ID, feed[2].User.ID)
	}
}

func TestGetBoostModeSortsByEffectiveScore(t *testing.T) {
	viewer := activeUser("creator-1", enums.RoleCreator, nil)
	profiles := &stubProfileStore{
		users: map[string]model.User{viewer.ID: viewer},
		candidates: []model.User{
			activeUser("brand-1", enums.RoleBrand, scorePtr(95)),
			activeUser("brand-2", enums.RoleBrand, scorePtr(60)),
			activeUser("brand-3", enums.RoleBrand, nil),
		},
	}
	received := &stubReceivedStore{superLikers: []string{"brand-2"}}

	svc := newTestService(profiles, received)
	feed, err := svc.Get(context.Background(), viewer.ID, true)
	if err != nil {
		t.Fatalf("get feed: %v", err)
	}

	got := []string{feed[0].User.ID, feed[1].User.ID, feed[2].User.ID}
	want := []string{"brand-1", "brand-2", "brand-3"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected boost order: got %v want %v", got, want)
		}
	}
}

func TestGetTopsUpFromSeedsWithoutDuplicates(t *testing.T) {
	viewer := activeUser("brand-1", enums.RoleBrand, nil)
	real := activeUser("creator-1", enums.RoleCreator, scorePtr(50))
	profiles := &stubProfileStore{
		users:      map[string]model.User{viewer.ID: viewer},
		candidates: []model.User{real},
		seeds: []model.User{
			activeUser("creator-1", enums.RoleCreator, nil),
			activeUser("seed-1", enums.RoleCreator, nil),
			activeUser("seed-2", enums.RoleCreator, nil),
		},
	}

	svc := newTestService(profiles, &stubReceivedStore{})
	feed, err := svc.Get(context.Background(), viewer.ID, false)
	if err != nil {
		t.Fatalf("get feed: %v", err)
	}

	if profiles.seedCalls != 1 {
		t.Fatalf("expected one seed lookup, got %d", profiles.seedCalls)
	}
	seen := make(map[string]struct{}, len(feed))
	for _, c := range feed {
		if _, dup := seen[c.User.ID]; dup {
			t.Fatalf("duplicate candidate id %s", c.User.ID)
		}
		seen[c.User.ID] = struct{}{}
	}
	if len(feed) != 3 {
		t.Fatalf("expected pool topped up to 3, got %d", len(feed))
	}
}

func TestGetSkipsSeedsWhenPoolLargeEnough(t *testing.T) {
	viewer := activeUser("brand-1", enums.RoleBrand, nil)
	profiles := &stubProfileStore{
		users: map[string]model.User{viewer.ID: viewer},
		candidates: []model.User{
			activeUser("creator-1", enums.RoleCreator, nil),
			activeUser("creator-2", enums.RoleCreator, nil),
			activeUser("creator-3", enums.RoleCreator, nil),
		},
		seeds: []model.User{activeUser("seed-1", enums.RoleCreator, nil)},
	}

	svc := newTestService(profiles, &stubReceivedStore{})
	if _, err := svc.Get(context.Background(), viewer.ID, false); err != nil {
		t.Fatalf("get feed: %v", err)
	}
	if profiles.seedCalls != 0 {
		t.Fatalf("expected no seed lookup, got %d", profiles.seedCalls)
	}
}

func TestGetEmptyPoolReturnsEmptySlice(t *testing.T) {
	viewer := activeUser("creator-1", enums.RoleCreator, nil)
	profiles := &stubProfileStore{users: map[string]model.User{viewer.ID: viewer}}

	svc := newTestService(profiles, &stubReceivedStore{})
	feed, err := svc.Get(context.Background(), viewer.ID, false)
	if err != nil {
		t.Fatalf("get feed: %v", err)
	}
	if feed == nil || len(feed) != 0 {
		t.Fatalf("expected empty non-nil feed, got %#v", feed)
	}
}
