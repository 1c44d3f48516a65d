package feed

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dextiii09/pingnewapp/internal/domain/enums"
	"github.com/dextiii09/pingnewapp/internal/domain/model"
	"github.com/dextiii09/pingnewapp/internal/domain/rules"
	pgrepo "github.com/dextiii09/pingnewapp/internal/repo/postgres"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrViewerInactive   = errors.New("viewer is not active")
)

type ProfileStore interface {
	Get(ctx context.Context, userID string) (model.User, error)
	ListCandidates(ctx context.Context, role enums.Role, excludeID string, limit int) ([]model.User, error)
	ListSeeds(ctx context.Context, role enums.Role, excludeIDs []string, limit int) ([]model.User, error)
}

type ReceivedSwipeStore interface {
	ListUnseenSuperLikers(ctx context.Context, targetID string) ([]string, error)
}

type Config struct {
	SuperLikeBoost    int
	DefaultMatchScore int
	MinPoolSize       int
	SeedPoolSize      int
	MaxFeedSize       int
}

// Candidate is one ranked feed entry. Priority marks candidates carrying
// an unseen superlike toward the viewer.
type Candidate struct {
	User           model.User
	EffectiveScore int
	Priority       bool
}

type Service struct {
	profiles ProfileStore
	received ReceivedSwipeStore
	cfg      Config
}

type Dependencies struct {
	Profiles ProfileStore
	Received ReceivedSwipeStore
}

func NewService(deps Dependencies, cfg Config) *Service {
	if cfg.SuperLikeBoost <= 0 {
		cfg.SuperLikeBoost = rules.SuperLikeBoost
	}
	if cfg.DefaultMatchScore <= 0 {
		cfg.DefaultMatchScore = rules.DefaultMatchScore
	}
	if cfg.MinPoolSize <= 0 {
		cfg.MinPoolSize = 3
	}
	if cfg.SeedPoolSize <= 0 {
		cfg.SeedPoolSize = 10
	}
	if cfg.MaxFeedSize <= 0 {
		cfg.MaxFeedSize = 100
	}

	return &Service{
		profiles: deps.Profiles,
		received: deps.Received,
		cfg:      cfg,
	}
}

// Get builds the viewer's ranked discovery feed. It only reads: unseen
// flags on received swipes are never touched here.
func (s *Service) Get(ctx context.Context, viewerID string, boostMode bool) ([]Candidate, error) {
	if strings.TrimSpace(viewerID) == "" {
		return nil, ErrNotAuthenticated
	}
	if s.profiles == nil || s.received == nil {
		return nil, fmt.Errorf("feed dependencies are not configured")
	}

	viewer, err := s.profiles.Get(ctx, viewerID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrUserNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, fmt.Errorf("load viewer: %w", err)
	}
	if viewer.Status != enums.UserStatusActive {
		return nil, ErrViewerInactive
	}

	candidateRole := viewer.Role.Opposite()
	pool, err := s.profiles.ListCandidates(ctx, candidateRole, viewerID, s.cfg.MaxFeedSize)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}

	pool, err = s.topUpFromSeeds(ctx, candidateRole, viewerID, pool)
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		return []Candidate{}, nil
	}

	superLikers, err := s.received.ListUnseenSuperLikers(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("list unseen superlikers: %w", err)
	}
	prioritySet := make(map[string]struct{}, len(superLikers))
	for _, id := range superLikers {
		prioritySet[id] = struct{}{}
	}

	ranked := make([]Candidate, 0, len(pool))
	for _, user := range pool {
		_, priority := prioritySet[user.ID]
		ranked = append(ranked, Candidate{
			User:           user,
			EffectiveScore: rules.EffectiveScore(user.MatchScore, s.cfg.DefaultMatchScore, s.cfg.SuperLikeBoost, priority),
			Priority:       priority,
		})
	}

	if boostMode {
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].EffectiveScore > ranked[j].EffectiveScore
		})
		return ranked, nil
	}

	// Priority candidates first, store order preserved inside each group.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Priority && !ranked[j].Priority
	})
	return ranked, nil
}

func (s *Service) topUpFromSeeds(ctx context.Context, role enums.Role, viewerID string, pool []model.User) ([]model.User, error) {
	if len(pool) >= s.cfg.MinPoolSize {
		return pool, nil
	}

	exclude := make([]string, 0, len(pool)+1)
	exclude = append(exclude, viewerID)
	for _, user := range pool {
		exclude = append(exclude, user.ID)
	}

	seeds, err := s.profiles.ListSeeds(ctx, role, exclude, s.cfg.SeedPoolSize)
	if err != nil {
		return nil, fmt.Errorf("list seed pool: %w", err)
	}

	return append(pool, seeds...), nil
}
