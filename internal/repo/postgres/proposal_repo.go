package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dextiii09/pingnewapp/internal/domain/enums"
	"github.com/dextiii09/pingnewapp/internal/domain/model"
)

var ErrProposalNotFound = errors.New("proposal not found")

type ProposalRepo struct {
	pool *pgxpool.Pool
}

func NewProposalRepo(pool *pgxpool.Pool) *ProposalRepo {
	return &ProposalRepo{pool: pool}
}

const proposalColumns = `
	id,
	match_id,
	author_id,
	title,
	price_cents,
	deadline,
	status,
	superseded,
	created_at,
	decided_at
`

func scanProposal(row pgx.Row) (model.Proposal, error) {
	var p model.Proposal
	err := row.Scan(
		&p.ID,
		&p.MatchID,
		&p.AuthorID,
		&p.Title,
		&p.PriceCents,
		&p.Deadline,
		&p.Status,
		&p.Superseded,
		&p.CreatedAt,
		&p.DecidedAt,
	)
	return p, err
}

func (r *ProposalRepo) Create(ctx context.Context, tx pgx.Tx, p model.Proposal) (model.Proposal, error) {
	if strings.TrimSpace(p.ID) == "" || strings.TrimSpace(p.MatchID) == "" || strings.TrimSpace(p.AuthorID) == "" {
		return model.Proposal{}, fmt.Errorf("invalid proposal payload")
	}
	if tx == nil {
		return model.Proposal{}, fmt.Errorf("transaction is required")
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	rec, err := scanProposal(tx.QueryRow(ctx, `
INSERT INTO proposals (
	id,
	match_id,
	author_id,
	title,
	price_cents,
	deadline,
	status,
	superseded,
	created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE, $8)
RETURNING `+proposalColumns,
		p.ID, p.MatchID, p.AuthorID, p.Title, p.PriceCents, p.Deadline.UTC(), enums.ProposalPending, p.CreatedAt.UTC()))
	if err != nil {
		return model.Proposal{}, fmt.Errorf("create proposal: %w", err)
	}

	return rec, nil
}

func (r *ProposalRepo) Get(ctx context.Context, matchID, proposalID string) (model.Proposal, error) {
	if strings.TrimSpace(matchID) == "" || strings.TrimSpace(proposalID) == "" {
		return model.Proposal{}, fmt.Errorf("invalid proposal lookup payload")
	}
	if r.pool == nil {
		return model.Proposal{}, ErrProposalNotFound
	}

	rec, err := scanProposal(r.pool.QueryRow(ctx, `
SELECT `+proposalColumns+`
FROM proposals
WHERE id = $1 AND match_id = $2
LIMIT 1
`, proposalID, matchID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Proposal{}, ErrProposalNotFound
		}
		return model.Proposal{}, fmt.Errorf("get proposal: %w", err)
	}

	return rec, nil
}

// GetForUpdate locks the proposal row for the decision write.
func (r *ProposalRepo) GetForUpdate(ctx context.Context, tx pgx.Tx, matchID, proposalID string) (model.Proposal, error) {
	if strings.TrimSpace(matchID) == "" || strings.TrimSpace(proposalID) == "" {
		return model.Proposal{}, fmt.Errorf("invalid proposal lookup payload")
	}
	if tx == nil {
		return model.Proposal{}, fmt.Errorf("transaction is required")
	}

	rec, err := scanProposal(tx.QueryRow(ctx, `
SELECT `+proposalColumns+`
FROM proposals
WHERE id = $1 AND match_id = $2
FOR UPDATE
`, proposalID, matchID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Proposal{}, ErrProposalNotFound
		}
		return model.Proposal{}, fmt.Errorf("get proposal for update: %w", err)
	}

	return rec, nil
}

func (r *ProposalRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, proposalID string, status enums.ProposalStatus, decidedAt time.Time) error {
	if strings.TrimSpace(proposalID) == "" {
		return fmt.Errorf("invalid proposal id")
	}
	if tx == nil {
		return fmt.Errorf("transaction is required")
	}

	result, err := tx.Exec(ctx, `
UPDATE proposals
SET status = $2, decided_at = $3
WHERE id = $1
`, proposalID, status, decidedAt.UTC())
	if err != nil {
		return fmt.Errorf("update proposal status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrProposalNotFound
	}

	return nil
}

// SupersedePending auto-declines every still-pending proposal of a
// match when a counter-offer replaces it. Returns how many were closed.
func (r *ProposalRepo) SupersedePending(ctx context.Context, tx pgx.Tx, matchID string, now time.Time) (int, error) {
	if strings.TrimSpace(matchID) == "" {
		return 0, fmt.Errorf("invalid match id")
	}
	if tx == nil {
		return 0, fmt.Errorf("transaction is required")
	}

	result, err := tx.Exec(ctx, `
UPDATE proposals
SET status = $2, superseded = TRUE, decided_at = $3
WHERE match_id = $1 AND status = $4
`, matchID, enums.ProposalDeclined, now.UTC(), enums.ProposalPending)
	if err != nil {
		return 0, fmt.Errorf("supersede pending proposals: %w", err)
	}

	return int(result.RowsAffected()), nil
}

// ListByMatch returns the full proposal history in creation order, the
// input for stage derivation and repair.
func (r *ProposalRepo) ListByMatch(ctx context.Context, matchID string) ([]model.Proposal, error) {
	if strings.TrimSpace(matchID) == "" {
		return nil, fmt.Errorf("invalid match id")
	}
	if r.pool == nil {
		return []model.Proposal{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT `+proposalColumns+`
FROM proposals
WHERE match_id = $1
ORDER BY created_at ASC, id ASC
`, matchID)
	if err != nil {
		return nil, fmt.Errorf("list proposals: %w", err)
	}
	defer rows.Close()

	items := make([]model.Proposal, 0, 8)
	for rows.Next() {
		rec, err := scanProposal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan proposal: %w", err)
		}
		items = append(items, rec)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate proposals: %w", rows.Err())
	}

	return items, nil
}
