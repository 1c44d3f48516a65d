package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dextiii09/pingnewapp/internal/domain/enums"
	"github.com/dextiii09/pingnewapp/internal/domain/model"
	pgrepo "github.com/dextiii09/pingnewapp/internal/repo/postgres"
)

var (
	ErrValidation    = errors.New("validation error")
	ErrMatchNotFound = errors.New("match not found")
	ErrNotMember     = errors.New("sender is not a match member")
)

const (
	maxMessageLen   = 4000
	defaultListSize = 200
)

type MessageStore interface {
	Append(ctx context.Context, tx pgx.Tx, msg model.Message) (model.Message, error)
	ListByMatch(ctx context.Context, matchID string, limit int) ([]model.Message, error)
}

type MatchStore interface {
	Get(ctx context.Context, matchID string) (model.Match, error)
	UpdateLastMessage(ctx context.Context, tx pgx.Tx, matchID, text string, now time.Time) error
}

type TxRunner func(ctx context.Context, fn func(context.Context, pgx.Tx) error) error

type Service struct {
	messages MessageStore
	matches  MatchStore
	runTx    TxRunner
	now      func() time.Time
}

type Dependencies struct {
	Pool     *pgxpool.Pool
	Messages MessageStore
	Matches  MatchStore
	// RunTx overrides the pool-backed transaction runner in tests.
	RunTx TxRunner
}

func NewService(deps Dependencies) *Service {
	runTx := deps.RunTx
	if runTx == nil {
		pool := deps.Pool
		runTx = func(ctx context.Context, fn func(context.Context, pgx.Tx) error) error {
			return pgrepo.WithTx(ctx, pool, fn)
		}
	}

	return &Service{
		messages: deps.Messages,
		matches:  deps.Matches,
		runTx:    runTx,
		now:      time.Now,
	}
}

// Send appends a text message and refreshes the match's last-message
// preview in one transaction.
func (s *Service) Send(ctx context.Context, matchID, senderID, text string) (model.Message, error) {
	matchID = strings.TrimSpace(matchID)
	senderID = strings.TrimSpace(senderID)
	text = strings.TrimSpace(text)
	if matchID == "" || senderID == "" || text == "" {
		return model.Message{}, ErrValidation
	}
	if len(text) > maxMessageLen {
		return model.Message{}, fmt.Errorf("message is too long: %w", ErrValidation)
	}
	if s.messages == nil || s.matches == nil {
		return model.Message{}, fmt.Errorf("chat dependencies are not configured")
	}

	match, err := s.matches.Get(ctx, matchID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrMatchNotFound) {
			return model.Message{}, ErrMatchNotFound
		}
		return model.Message{}, fmt.Errorf("load match: %w", err)
	}
	if !match.HasMember(senderID) {
		return model.Message{}, ErrNotMember
	}

	now := s.now().UTC()
	var stored model.Message
	if err := s.runTx(ctx, func(txCtx context.Context, tx pgx.Tx) error {
		msg, err := s.messages.Append(txCtx, tx, model.Message{
			ID:        uuid.NewString(),
			MatchID:   matchID,
			SenderID:  senderID,
			Kind:      enums.MessageKindText,
			Body:      text,
			CreatedAt: now,
		})
		if err != nil {
			return err
		}
		stored = msg
		return s.matches.UpdateLastMessage(txCtx, tx, matchID, text, now)
	}); err != nil {
		return model.Message{}, fmt.Errorf("send message: %w", err)
	}

	return stored, nil
}

func (s *Service) List(ctx context.Context, matchID, userID string) ([]model.Message, error) {
	matchID = strings.TrimSpace(matchID)
	userID = strings.TrimSpace(userID)
	if matchID == "" || userID == "" {
		return nil, ErrValidation
	}
	if s.messages == nil || s.matches == nil {
		return nil, fmt.Errorf("chat dependencies are not configured")
	}

	match, err := s.matches.Get(ctx, matchID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("load match: %w", err)
	}
	if !match.HasMember(userID) {
		return nil, ErrNotMember
	}

	messages, err := s.messages.ListByMatch(ctx, matchID, defaultListSize)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return messages, nil
}
