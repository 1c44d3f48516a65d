package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/dextiii09/pingnewapp/internal/domain/enums"
	"github.com/dextiii09/pingnewapp/internal/domain/model"
	"github.com/dextiii09/pingnewapp/internal/domain/rules"
	redrepo "github.com/dextiii09/pingnewapp/internal/repo/redis"
	authsvc "github.com/dextiii09/pingnewapp/internal/services/auth"
	ratesvc "github.com/dextiii09/pingnewapp/internal/services/rate"
	swipesvc "github.com/dextiii09/pingnewapp/internal/services/swipes"
)

type handlerSwipeStore struct{}

func (s *handlerSwipeStore) Append(_ context.Context, actorID, targetID string, direction enums.SwipeDirection, now time.Time) (model.Swipe, error) {
	return model.Swipe{ActorID: actorID, TargetID: targetID, Direction: direction, CreatedAt: now}, nil
}

func (s *handlerSwipeStore) HasPositiveFrom(_ context.Context, _, _ string) (bool, error) {
	return false, nil
}

type handlerReceivedStore struct{}

func (s *handlerReceivedStore) Append(_ context.Context, _, _ string, _ enums.SwipeDirection, _ time.Time) error {
	return nil
}

type handlerMatchStore struct{}

func (s *handlerMatchStore) Upsert(_ context.Context, userA, userB string, now time.Time) (model.Match, error) {
	lo, hi := rules.SortPair(userA, userB)
	return model.Match{ID: rules.MatchID(userA, userB), UserA: lo, UserB: hi, LastActive: now, CreatedAt: now}, nil
}

type handlerProfileStore struct{}

func (s *handlerProfileStore) Get(_ context.Context, userID string) (model.User, error) {
	return model.User{ID: userID, DisplayName: "target", Role: enums.RoleBrand, Status: enums.UserStatusActive}, nil
}

func (s *handlerProfileStore) BumpMatchScore(_ context.Context, _ string, _, _ int) error {
	return nil
}

func TestSwipeHandlerReturnsTooFastOnThirdLikeBurst(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	redisClient := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer func() { _ = redisClient.Close() }()

	rateLimiter := ratesvc.NewLimiter(redrepo.NewRateRepo(redisClient), 2, 12)

	svc := swipesvc.NewService(swipesvc.Dependencies{
		SwipeStore:    &handlerSwipeStore{},
		ReceivedStore: &handlerReceivedStore{},
		MatchStore:    &handlerMatchStore{},
		Profiles:      &handlerProfileStore{},
		RateLimiter:   rateLimiter,
	}, swipesvc.Config{})

	h := NewSwipeHandler(svc)

	for i := 0; i < 2; i++ {
		resp := performSwipeRequest(t, h, "target-"+string(rune('a'+i)), "LIKE")
		if resp.Code != http.StatusOK {
			t.Fatalf("unexpected status on like %d: got %d want %d", i, resp.Code, http.StatusOK)
		}
	}

	resp := performSwipeRequest(t, h, "target-c", "LIKE")
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("unexpected status on third like: got %d want %d", resp.Code, http.StatusTooManyRequests)
	}

	var payload struct {
		Code          string `json:"code"`
		Message       string `json:"message"`
		RetryAfterSec int64  `json:"retry_after_sec"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if payload.Code != "TOO_FAST" {
		t.Fatalf("unexpected error code: got %q want %q", payload.Code, "TOO_FAST")
	}
	if payload.RetryAfterSec <= 0 {
		t.Fatalf("expected positive retry_after_sec, got %d", payload.RetryAfterSec)
	}
}

func TestSwipeHandlerRejectsSelfSwipe(t *testing.T) {
	svc := swipesvc.NewService(swipesvc.Dependencies{
		SwipeStore:    &handlerSwipeStore{},
		ReceivedStore: &handlerReceivedStore{},
		MatchStore:    &handlerMatchStore{},
		Profiles:      &handlerProfileStore{},
	}, swipesvc.Config{})

	h := NewSwipeHandler(svc)

	resp := performSwipeRequest(t, h, "user-101", "LIKE")
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got %d want %d", resp.Code, http.StatusBadRequest)
	}

	var payload struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Code != "SELF_SWIPE" {
		t.Fatalf("unexpected error code: %q", payload.Code)
	}
}

func performSwipeRequest(t *testing.T, h *SwipeHandler, targetID, direction string) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(map[string]any{
		"target_id": targetID,
		"direction": direction,
	})
	if err != nil {
		t.Fatalf("marshal request body: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/swipes", bytes.NewReader(body))
	req = req.WithContext(authsvc.WithIdentity(context.Background(), authsvc.Identity{
		UserID: "user-101",
		Role:   "CREATOR",
	}))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}
