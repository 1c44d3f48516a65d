package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const unseenCountPrefix = "likes:unseen:"

// LikesCacheRepo caches the unseen-likes badge count so every feed
// poll does not hit the ledger.
type LikesCacheRepo struct {
	client *goredis.Client
}

func NewLikesCacheRepo(client *goredis.Client) *LikesCacheRepo {
	return &LikesCacheRepo{client: client}
}

func (r *LikesCacheRepo) GetUnseenCount(ctx context.Context, userID string) (int, bool, error) {
	if r.client == nil {
		return 0, false, fmt.Errorf("redis client is nil")
	}
	if userID == "" {
		return 0, false, fmt.Errorf("invalid user id")
	}

	count, err := r.client.Get(ctx, unseenCountPrefix+userID).Int()
	if err == goredis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get unseen count: %w", err)
	}

	return count, true, nil
}

func (r *LikesCacheRepo) SetUnseenCount(ctx context.Context, userID string, count int, ttl time.Duration) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if userID == "" || ttl <= 0 {
		return fmt.Errorf("invalid unseen count payload")
	}

	if err := r.client.Set(ctx, unseenCountPrefix+userID, count, ttl).Err(); err != nil {
		return fmt.Errorf("set unseen count: %w", err)
	}

	return nil
}

func (r *LikesCacheRepo) InvalidateUnseenCount(ctx context.Context, userID string) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if userID == "" {
		return fmt.Errorf("invalid user id")
	}

	if err := r.client.Del(ctx, unseenCountPrefix+userID).Err(); err != nil {
		return fmt.Errorf("invalidate unseen count: %w", err)
	}

	return nil
}
