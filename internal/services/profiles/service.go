package profiles

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dextiii09/pingnewapp/internal/domain/model"
	"github.com/dextiii09/pingnewapp/internal/repo/postgres"
)

var (
	ErrValidation   = errors.New("validation error")
	ErrUserNotFound = errors.New("user not found")
)

const (
	maxDisplayNameLen = 80
	maxLocationLen    = 120
	maxTags           = 20
)

type ProfileStore interface {
	Get(ctx context.Context, userID string) (model.User, error)
	UpdatePartial(ctx context.Context, userID string, patch postgres.UserPatch) (model.User, error)
}

type Service struct {
	store ProfileStore
}

type UpdateInput struct {
	DisplayName *string
	Location    *string
	Tags        []string
	MatchScore  *int
}

func NewService(store ProfileStore) *Service {
	return &Service{store: store}
}

func (s *Service) Get(ctx context.Context, userID string) (model.User, error) {
	if strings.TrimSpace(userID) == "" {
		return model.User{}, fmt.Errorf("invalid user id: %w", ErrValidation)
	}
	if s.store == nil {
		return model.User{}, fmt.Errorf("profile store is nil")
	}

	user, err := s.store.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, postgres.ErrUserNotFound) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, fmt.Errorf("get profile: %w", err)
	}

	return user, nil
}

func (s *Service) Update(ctx context.Context, userID string, in UpdateInput) (model.User, error) {
	if strings.TrimSpace(userID) == "" {
		return model.User{}, fmt.Errorf("invalid user id: %w", ErrValidation)
	}
	if s.store == nil {
		return model.User{}, fmt.Errorf("profile store is nil")
	}

	patch, err := normalizePatch(in)
	if err != nil {
		return model.User{}, err
	}

	user, err := s.store.UpdatePartial(ctx, userID, patch)
	if err != nil {
		if errors.Is(err, postgres.ErrUserNotFound) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, fmt.Errorf("update profile: %w", err)
	}

	return user, nil
}

func normalizePatch(in UpdateInput) (postgres.UserPatch, error) {
	patch := postgres.UserPatch{MatchScore: in.MatchScore}

	if in.DisplayName != nil {
		name := strings.TrimSpace(*in.DisplayName)
		if name == "" {
			return postgres.UserPatch{}, fmt.Errorf("display_name is empty: %w", ErrValidation)
		}
		if len(name) > maxDisplayNameLen {
			return postgres.UserPatch{}, fmt.Errorf("display_name is too long: %w", ErrValidation)
		}
		patch.DisplayName = &name
	}

	if in.Location != nil {
		location := strings.TrimSpace(*in.Location)
		if len(location) > maxLocationLen {
			return postgres.UserPatch{}, fmt.Errorf("location is too long: %w", ErrValidation)
		}
		patch.Location = &location
	}

	if in.Tags != nil {
		tags, err := normalizeTags(in.Tags)
		if err != nil {
			return postgres.UserPatch{}, err
		}
		patch.Tags = tags
	}

	if in.MatchScore != nil && (*in.MatchScore < 0 || *in.MatchScore > 100) {
		return postgres.UserPatch{}, fmt.Errorf("match_score out of range: %w", ErrValidation)
	}

	return patch, nil
}

func normalizeTags(values []string) ([]string, error) {
	result := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		normalized := strings.ToLower(strings.TrimSpace(value))
		if normalized == "" {
			return nil, fmt.Errorf("empty tag: %w", ErrValidation)
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		result = append(result, normalized)
	}

	if len(result) > maxTags {
		return nil, fmt.Errorf("too many tags: %w", ErrValidation)
	}
	return result, nil
}
