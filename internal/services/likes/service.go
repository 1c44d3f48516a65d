package likes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dextiii09/pingnewapp/internal/domain/enums"
	pgrepo "github.com/dextiii09/pingnewapp/internal/repo/postgres"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("received swipe not found")
)

type LedgerStore interface {
	CountUnseen(ctx context.Context, targetID string) (int, error)
	MarkSeen(ctx context.Context, targetID, fromID string) (bool, error)
	ListIncoming(ctx context.Context, targetID string, limit int) ([]pgrepo.IncomingLikeRecord, error)
}

type CountCache interface {
	GetUnseenCount(ctx context.Context, userID string) (int, bool, error)
	SetUnseenCount(ctx context.Context, userID string, count int, ttl time.Duration) error
	InvalidateUnseenCount(ctx context.Context, userID string) error
}

type Config struct {
	UnseenCountTTL time.Duration
	IncomingLimit  int
}

// IncomingLike is one entry of the "who liked you" list.
type IncomingLike struct {
	FromID      string
	DisplayName string
	Location    string
	SuperLike   bool
	Seen        bool
	CreatedAt   time.Time
}

type Service struct {
	ledger LedgerStore
	cache  CountCache
	cfg    Config
	log    *zap.Logger
}

type Dependencies struct {
	Ledger LedgerStore
	Cache  CountCache
	Logger *zap.Logger
}

func NewService(deps Dependencies, cfg Config) *Service {
	if cfg.UnseenCountTTL <= 0 {
		cfg.UnseenCountTTL = 30 * time.Second
	}
	if cfg.IncomingLimit <= 0 {
		cfg.IncomingLimit = 50
	}
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Service{
		ledger: deps.Ledger,
		cache:  deps.Cache,
		cfg:    cfg,
		log:    log,
	}
}

// UnseenCount returns the unread-likes badge value. Cache problems fall
// back to the ledger count.
func (s *Service) UnseenCount(ctx context.Context, userID string) (int, error) {
	if strings.TrimSpace(userID) == "" {
		return 0, ErrValidation
	}
	if s.ledger == nil {
		return 0, fmt.Errorf("likes ledger is nil")
	}

	if s.cache != nil {
		count, found, err := s.cache.GetUnseenCount(ctx, userID)
		if err != nil {
			s.log.Warn("unseen count cache read failed", zap.String("user_id", userID), zap.Error(err))
		} else if found {
			return count, nil
		}
	}

	count, err := s.ledger.CountUnseen(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("count unseen likes: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetUnseenCount(ctx, userID, count, s.cfg.UnseenCountTTL); err != nil {
			s.log.Warn("unseen count cache write failed", zap.String("user_id", userID), zap.Error(err))
		}
	}

	return count, nil
}

// MarkSeen flips one incoming like to seen and drops the cached badge
// value so the next read recomputes it.
func (s *Service) MarkSeen(ctx context.Context, userID, fromID string) error {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(fromID) == "" {
		return ErrValidation
	}
	if s.ledger == nil {
		return fmt.Errorf("likes ledger is nil")
	}

	updated, err := s.ledger.MarkSeen(ctx, userID, fromID)
	if err != nil {
		return fmt.Errorf("mark received swipe seen: %w", err)
	}
	if !updated {
		return ErrNotFound
	}

	if s.cache != nil {
		if err := s.cache.InvalidateUnseenCount(ctx, userID); err != nil {
			s.log.Warn("unseen count cache invalidation failed", zap.String("user_id", userID), zap.Error(err))
		}
	}

	return nil
}

func (s *Service) Incoming(ctx context.Context, userID string, limit int) ([]IncomingLike, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrValidation
	}
	if s.ledger == nil {
		return nil, fmt.Errorf("likes ledger is nil")
	}
	if limit <= 0 || limit > s.cfg.IncomingLimit {
		limit = s.cfg.IncomingLimit
	}

	records, err := s.ledger.ListIncoming(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list incoming likes: %w", err)
	}

	out := make([]IncomingLike, 0, len(records))
	for _, rec := range records {
		out = append(out, IncomingLike{
			FromID:      rec.FromID,
			DisplayName: rec.DisplayName,
			Location:    rec.Location,
			SuperLike:   rec.Direction == enums.SwipeSuperLike,
			Seen:        rec.Seen,
			CreatedAt:   rec.CreatedAt,
		})
	}
	return out, nil
}
