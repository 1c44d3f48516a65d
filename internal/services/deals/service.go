package deals

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
	"github.com/dextiii09/pingnewapp/internal/domain/rules"
	pgrepo "github.com/dextiii09/pingnewapp/internal/repo/postgres"
)

var (
	ErrValidation             = errors.New("validation error")
	ErrMatchNotFound          = errors.New("match not found")
	ErrNotMember              = errors.New("user is not a match member")
	ErrProposalNotFound       = errors.New("proposal not found")
	ErrProposalNotPending     = errors.New("proposal is not pending")
	ErrOwnProposal            = errors.New("cannot respond to own proposal")
	ErrProposalLocked         = errors.New("deal is past negotiation")
	ErrInvalidStageTransition = errors.New("invalid stage transition")
	ErrInvalidDecision        = errors.New("invalid decision")
)

const maxTitleLen = 200

type ProposalStore interface {
	Create(ctx context.Context, tx pgx.Tx, p model.Proposal) (model.Proposal, error)
	Get(ctx context.Context, matchID, proposalID string) (model.Proposal, error)
	GetForUpdate(ctx context.Context, tx pgx.Tx, matchID, proposalID string) (model.Proposal, error)
	UpdateStatus(ctx context.Context, tx pgx.Tx, proposalID string, status enums.ProposalStatus, decidedAt time.Time) error
	SupersedePending(ctx context.Context, tx pgx.Tx, matchID string, now time.Time) (int, error)
	ListByMatch(ctx context.Context, matchID string) ([]model.Proposal, error)
}

type DealStateStore interface {
	Get(ctx context.Context, matchID string) (model.DealState, error)
	GetForUpdate(ctx context.Context, tx pgx.Tx, matchID string) (enums.DealStage, error)
	Set(ctx context.Context, tx pgx.Tx, matchID string, stage enums.DealStage, now time.Time) error
}

type MessageStore interface {
	Append(ctx context.Context, tx pgx.Tx, msg model.Message) (model.Message, error)
}

type MatchStore interface {
	Get(ctx context.Context, matchID string) (model.Match, error)
	UpdateLastMessage(ctx context.Context, tx pgx.Tx, matchID, text string, now time.Time) error
}

type TxRunner func(ctx context.Context, fn func(context.Context, pgx.Tx) error) error

type Service struct {
	proposals ProposalStore
	states    DealStateStore
	messages  MessageStore
	matches   MatchStore
	runTx     TxRunner
	now       func() time.Time
}

type Dependencies struct {
	Pool      *pgxpool.Pool
	Proposals ProposalStore
	States    DealStateStore
	Messages  MessageStore
	Matches   MatchStore
	// RunTx overrides the pool-backed transaction runner in tests.
	RunTx TxRunner
}

// View is the negotiation snapshot a chat screen renders: the current
// stage plus the still-actionable proposal, if any.
type View struct {
	MatchID        string
	Stage          enums.DealStage
	ActiveProposal *model.Proposal
	History        []model.Proposal
}

type AdvanceResult struct {
	Stage enums.DealStage
	// Noop reports a retry that found the stage already reached.
	Noop bool
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
		proposals: deps.Proposals,
		states:    deps.States,
		messages:  deps.Messages,
		matches:   deps.Matches,
		runTx:     runTx,
		now:       time.Now,
	}
}

// CreateProposal writes a new offer into the match's thread. A prior
// still-pending proposal is auto-declined and flagged superseded, which
// is what moves the stage to NEGOTIATION instead of PROPOSAL_SENT. The
// proposal row, its chat message and the stage row commit together.
func (s *Service) CreateProposal(ctx context.Context, matchID, authorID, title string, priceCents int64, deadline time.Time) (model.Proposal, error) {
	matchID = strings.TrimSpace(matchID)
	authorID = strings.TrimSpace(authorID)
	title = strings.TrimSpace(title)
	if matchID == "" || authorID == "" {
		return model.Proposal{}, ErrValidation
	}
	if title == "" || len(title) > maxTitleLen {
		return model.Proposal{}, fmt.Errorf("invalid title: %w", ErrValidation)
	}
	if priceCents <= 0 {
		return model.Proposal{}, fmt.Errorf("invalid price: %w", ErrValidation)
	}
	if deadline.IsZero() {
		return model.Proposal{}, fmt.Errorf("deadline is required: %w", ErrValidation)
	}
	if err := s.ready(); err != nil {
		return model.Proposal{}, err
	}

	if _, err := s.requireMember(ctx, matchID, authorID); err != nil {
		return model.Proposal{}, err
	}

	now := s.now().UTC()
	var created model.Proposal
	if err := s.runTx(ctx, func(txCtx context.Context, tx pgx.Tx) error {
		stage, err := s.states.GetForUpdate(txCtx, tx, matchID)
		if err != nil {
			return err
		}
		if !rules.CanCreateProposal(stage) {
			return ErrProposalLocked
		}

		if _, err := s.proposals.SupersedePending(txCtx, tx, matchID, now); err != nil {
			return err
		}

		proposal, err := s.proposals.Create(txCtx, tx, model.Proposal{
			ID:         uuid.NewString(),
			MatchID:    matchID,
			AuthorID:   authorID,
			Title:      title,
			PriceCents: priceCents,
			Deadline:   deadline.UTC(),
			Status:     enums.ProposalPending,
			CreatedAt:  now,
		})
		if err != nil {
			return err
		}
		created = proposal

		preview := "Proposal: " + title
		if _, err := s.messages.Append(txCtx, tx, model.Message{
			ID:         uuid.NewString(),
			MatchID:    matchID,
			SenderID:   authorID,
			Kind:       enums.MessageKindProposal,
			Body:       preview,
			ProposalID: &proposal.ID,
			CreatedAt:  now,
		}); err != nil {
			return err
		}
		if err := s.matches.UpdateLastMessage(txCtx, tx, matchID, preview, now); err != nil {
			return err
		}

		return s.states.Set(txCtx, tx, matchID, rules.StageAfterProposal(stage), now)
	}); err != nil {
		if errors.Is(err, ErrProposalLocked) {
			return model.Proposal{}, err
		}
		return model.Proposal{}, fmt.Errorf("create proposal: %w", err)
	}

	return created, nil
}

// Respond settles a pending proposal. Acceptance moves the deal to
// AGREED; a decline reopens the match at NONE while the proposal stays
// in history with status DECLINED.
func (s *Service) Respond(ctx context.Context, matchID, proposalID, responderID string, decision enums.ProposalStatus) (enums.DealStage, error) {
	matchID = strings.TrimSpace(matchID)
	proposalID = strings.TrimSpace(proposalID)
	responderID = strings.TrimSpace(responderID)
	if matchID == "" || proposalID == "" || responderID == "" {
		return "", ErrValidation
	}
	if decision != enums.ProposalAccepted && decision != enums.ProposalDeclined {
		return "", ErrInvalidDecision
	}
	if err := s.ready(); err != nil {
		return "", err
	}

	if _, err := s.requireMember(ctx, matchID, responderID); err != nil {
		return "", err
	}

	now := s.now().UTC()
	var stage enums.DealStage
	if err := s.runTx(ctx, func(txCtx context.Context, tx pgx.Tx) error {
		proposal, err := s.proposals.GetForUpdate(txCtx, tx, matchID, proposalID)
		if err != nil {
			if errors.Is(err, pgrepo.ErrProposalNotFound) {
				return ErrProposalNotFound
			}
			return err
		}
		if proposal.Status != enums.ProposalPending {
			return ErrProposalNotPending
		}
		if proposal.AuthorID == responderID {
			return ErrOwnProposal
		}

		if err := s.proposals.UpdateStatus(txCtx, tx, proposalID, decision, now); err != nil {
			return err
		}

		stage = enums.StageNone
		if decision == enums.ProposalAccepted {
			stage = enums.StageAgreed
		}
		return s.states.Set(txCtx, tx, matchID, stage, now)
	}); err != nil {
		switch {
		case errors.Is(err, ErrProposalNotFound), errors.Is(err, ErrProposalNotPending), errors.Is(err, ErrOwnProposal):
			return "", err
		}
		return "", fmt.Errorf("respond to proposal: %w", err)
	}

	return stage, nil
}

func (s *Service) FundEscrow(ctx context.Context, matchID, userID string) (AdvanceResult, error) {
	return s.advance(ctx, matchID, userID, enums.StageEscrowFunded)
}

func (s *Service) SubmitWork(ctx context.Context, matchID, userID string) (AdvanceResult, error) {
	return s.advance(ctx, matchID, userID, enums.StageWorkSubmitted)
}

func (s *Service) ReleaseFunds(ctx context.Context, matchID, userID string) (AdvanceResult, error) {
	return s.advance(ctx, matchID, userID, enums.StageCompleted)
}

// advance performs one manual stage step. Re-invoking at the reached
// stage is a successful no-op so retries after ambiguous failures never
// error; anything else out of order fails without mutating state.
func (s *Service) advance(ctx context.Context, matchID, userID string, target enums.DealStage) (AdvanceResult, error) {
	matchID = strings.TrimSpace(matchID)
	userID = strings.TrimSpace(userID)
	if matchID == "" || userID == "" {
		return AdvanceResult{}, ErrValidation
	}
	if err := s.ready(); err != nil {
		return AdvanceResult{}, err
	}

	if _, err := s.requireMember(ctx, matchID, userID); err != nil {
		return AdvanceResult{}, err
	}

	now := s.now().UTC()
	result := AdvanceResult{}
	if err := s.runTx(ctx, func(txCtx context.Context, tx pgx.Tx) error {
		stage, err := s.states.GetForUpdate(txCtx, tx, matchID)
		if err != nil {
			return err
		}

		ok, noop := rules.CanAdvance(stage, target)
		if !ok {
			return ErrInvalidStageTransition
		}
		if noop {
			result = AdvanceResult{Stage: stage, Noop: true}
			return nil
		}

		if err := s.states.Set(txCtx, tx, matchID, target, now); err != nil {
			return err
		}
		result = AdvanceResult{Stage: target}
		return nil
	}); err != nil {
		if errors.Is(err, ErrInvalidStageTransition) {
			return AdvanceResult{}, err
		}
		return AdvanceResult{}, fmt.Errorf("advance deal stage: %w", err)
	}

	return result, nil
}

// Get returns the negotiation view. A missing stage row is repaired by
// rederiving the stage from proposal history, so the persisted row can
// never drift from the ledger for readers.
func (s *Service) Get(ctx context.Context, matchID, userID string) (View, error) {
	matchID = strings.TrimSpace(matchID)
	userID = strings.TrimSpace(userID)
	if matchID == "" || userID == "" {
		return View{}, ErrValidation
	}
	if err := s.ready(); err != nil {
		return View{}, err
	}

	if _, err := s.requireMember(ctx, matchID, userID); err != nil {
		return View{}, err
	}

	history, err := s.proposals.ListByMatch(ctx, matchID)
	if err != nil {
		return View{}, fmt.Errorf("list proposals: %w", err)
	}

	stage := enums.StageNone
	state, err := s.states.Get(ctx, matchID)
	switch {
	case err == nil:
		stage = state.Stage
	case errors.Is(err, pgrepo.ErrDealStateNotFound):
		stage = rules.DeriveStage(history, enums.StageNone)
	default:
		return View{}, fmt.Errorf("load deal state: %w", err)
	}

	view := View{MatchID: matchID, Stage: stage, History: history}
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Status == enums.ProposalPending {
			proposal := history[i]
			view.ActiveProposal = &proposal
			break
		}
	}
	return view, nil
}

func (s *Service) ready() error {
	if s.proposals == nil || s.states == nil || s.messages == nil || s.matches == nil {
		return fmt.Errorf("deal dependencies are not configured")
	}
	return nil
}

func (s *Service) requireMember(ctx context.Context, matchID, userID string) (model.Match, error) {
	match, err := s.matches.Get(ctx, matchID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrMatchNotFound) {
			return model.Match{}, ErrMatchNotFound
		}
		return model.Match{}, fmt.Errorf("load match: %w", err)
	}
	if !match.HasMember(userID) {
		return model.Match{}, ErrNotMember
	}
	return match, nil
}
