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

var ErrDealStateNotFound = errors.New("deal state not found")

type DealStateRepo struct {
	pool *pgxpool.Pool
}

func NewDealStateRepo(pool *pgxpool.Pool) *DealStateRepo {
	return &DealStateRepo{pool: pool}
}

func (r *DealStateRepo) Get(ctx context.Context, matchID string) (model.DealState, error) {
	if strings.TrimSpace(matchID) == "" {
		return model.DealState{}, fmt.Errorf("invalid match id")
	}
	if r.pool == nil {
		return model.DealState{}, ErrDealStateNotFound
	}

	var state model.DealState
	err := r.pool.QueryRow(ctx, `
SELECT match_id, stage, updated_at
FROM deal_states
WHERE match_id = $1
LIMIT 1
`, matchID).Scan(&state.MatchID, &state.Stage, &state.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.DealState{}, ErrDealStateNotFound
		}
		return model.DealState{}, fmt.Errorf("get deal state: %w", err)
	}

	return state, nil
}

// GetForUpdate locks the stage row for a transition check. A match
// with no row yet reads as NONE.
func (r *DealStateRepo) GetForUpdate(ctx context.Context, tx pgx.Tx, matchID string) (enums.DealStage, error) {
	if strings.TrimSpace(matchID) == "" {
		return "", fmt.Errorf("invalid match id")
	}
	if tx == nil {
		return "", fmt.Errorf("transaction is required")
	}

	var stage enums.DealStage
	err := tx.QueryRow(ctx, `
SELECT stage
FROM deal_states
WHERE match_id = $1
FOR UPDATE
`, matchID).Scan(&stage)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return enums.StageNone, nil
		}
		return "", fmt.Errorf("get deal state for update: %w", err)
	}

	return stage, nil
}

func (r *DealStateRepo) Set(ctx context.Context, tx pgx.Tx, matchID string, stage enums.DealStage, now time.Time) error {
	if strings.TrimSpace(matchID) == "" || stage == "" {
		return fmt.Errorf("invalid deal state payload")
	}
	if tx == nil {
		return fmt.Errorf("transaction is required")
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	if _, err := tx.Exec(ctx, `
INSERT INTO deal_states (
	match_id,
	stage,
	updated_at
) VALUES ($1, $2, $3)
ON CONFLICT (match_id) DO UPDATE SET
	stage = EXCLUDED.stage,
	updated_at = EXCLUDED.updated_at
`, matchID, stage, now.UTC()); err != nil {
		return fmt.Errorf("set deal state: %w", err)
	}

	return nil
}
