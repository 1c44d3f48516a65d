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

type SwipeRepo struct {
	pool *pgxpool.Pool
}

func NewSwipeRepo(pool *pgxpool.Pool) *SwipeRepo {
	return &SwipeRepo{pool: pool}
}

// Append writes one outgoing swipe. The ledger is append-only; the
// serial id together with created_at preserves submission order per
// actor.
func (r *SwipeRepo) Append(ctx context.Context, actorID, targetID string, direction enums.SwipeDirection, now time.Time) (model.Swipe, error) {
	if strings.TrimSpace(actorID) == "" || strings.TrimSpace(targetID) == "" {
		return model.Swipe{}, fmt.Errorf("invalid swipe payload")
	}
	if r.pool == nil {
		return model.Swipe{}, fmt.Errorf("postgres pool is nil")
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	var rec model.Swipe
	err := r.pool.QueryRow(ctx, `
INSERT INTO swipes (
	actor_id,
	target_id,
	direction,
	created_at
) VALUES ($1, $2, $3, $4)
RETURNING id, actor_id, target_id, direction, created_at
`, actorID, targetID, direction, now.UTC()).Scan(
		&rec.ID,
		&rec.ActorID,
		&rec.TargetID,
		&rec.Direction,
		&rec.CreatedAt,
	)
	if err != nil {
		return model.Swipe{}, fmt.Errorf("append swipe: %w", err)
	}

	return rec, nil
}

// HasPositiveFrom reports whether actor has an outgoing LIKE or
// SUPERLIKE targeting target. This is the reciprocity probe.
func (r *SwipeRepo) HasPositiveFrom(ctx context.Context, actorID, targetID string) (bool, error) {
	if strings.TrimSpace(actorID) == "" || strings.TrimSpace(targetID) == "" {
		return false, fmt.Errorf("invalid reciprocity lookup payload")
	}
	if r.pool == nil {
		return false, nil
	}

	var one int
	err := r.pool.QueryRow(ctx, `
SELECT 1
FROM swipes
WHERE
	actor_id = $1
	AND target_id = $2
	AND direction IN ($3, $4)
LIMIT 1
`, actorID, targetID, enums.SwipeLike, enums.SwipeSuperLike).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("lookup reciprocal swipe: %w", err)
	}

	return true, nil
}
