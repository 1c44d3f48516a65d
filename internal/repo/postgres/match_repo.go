package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dextiii09/pingnewapp/internal/domain/model"
	"github.com/dextiii09/pingnewapp/internal/domain/rules"
)

var ErrMatchNotFound = errors.New("match not found")

type MatchRepo struct {
	pool *pgxpool.Pool
}

func NewMatchRepo(pool *pgxpool.Pool) *MatchRepo {
	return &MatchRepo{pool: pool}
}

// MatchWithProfileRecord is a match flattened with the other party's
// profile snapshot for list responses.
type MatchWithProfileRecord struct {
	ID               string
	OtherUserID      string
	OtherDisplayName string
	OtherLocation    string
	LastMessage      string
	LastActive       time.Time
	CreatedAt        time.Time
}

// Upsert creates the match under its deterministic id, or refreshes
// last_active when it already exists. Two users completing the match
// concurrently converge on the same row; last writer wins.
func (r *MatchRepo) Upsert(ctx context.Context, userA, userB string, now time.Time) (model.Match, error) {
	if strings.TrimSpace(userA) == "" || strings.TrimSpace(userB) == "" || userA == userB {
		return model.Match{}, fmt.Errorf("invalid match payload")
	}
	if r.pool == nil {
		return model.Match{}, fmt.Errorf("postgres pool is nil")
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	lo, hi := rules.SortPair(userA, userB)
	var m model.Match
	err := r.pool.QueryRow(ctx, `
INSERT INTO matches (
	id,
	user_a,
	user_b,
	last_message,
	last_active,
	created_at
) VALUES ($1, $2, $3, '', $4, $4)
ON CONFLICT (id) DO UPDATE SET
	last_active = EXCLUDED.last_active
RETURNING id, user_a, user_b, last_message, last_active, created_at
`, rules.MatchID(userA, userB), lo, hi, now.UTC()).Scan(
		&m.ID,
		&m.UserA,
		&m.UserB,
		&m.LastMessage,
		&m.LastActive,
		&m.CreatedAt,
	)
	if err != nil {
		return model.Match{}, fmt.Errorf("upsert match: %w", err)
	}

	return m, nil
}

func (r *MatchRepo) Get(ctx context.Context, matchID string) (model.Match, error) {
	if strings.TrimSpace(matchID) == "" {
		return model.Match{}, fmt.Errorf("invalid match id")
	}
	if r.pool == nil {
		return model.Match{}, ErrMatchNotFound
	}

	var m model.Match
	err := r.pool.QueryRow(ctx, `
SELECT id, user_a, user_b, last_message, last_active, created_at
FROM matches
WHERE id = $1
LIMIT 1
`, matchID).Scan(
		&m.ID,
		&m.UserA,
		&m.UserB,
		&m.LastMessage,
		&m.LastActive,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Match{}, ErrMatchNotFound
		}
		return model.Match{}, fmt.Errorf("get match: %w", err)
	}

	return m, nil
}

func (r *MatchRepo) ListForUser(ctx context.Context, userID string, limit int) ([]MatchWithProfileRecord, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("invalid user id")
	}
	if limit <= 0 {
		limit = 100
	}
	if r.pool == nil {
		return []MatchWithProfileRecord{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT
	m.id,
	CASE WHEN m.user_a = $1 THEN m.user_b ELSE m.user_a END AS other_user_id,
	COALESCE(u.display_name, ''),
	COALESCE(u.location, ''),
	m.last_message,
	m.last_active,
	m.created_at
FROM matches m
JOIN users u ON u.id = CASE WHEN m.user_a = $1 THEN m.user_b ELSE m.user_a END
WHERE m.user_a = $1 OR m.user_b = $1
ORDER BY m.last_active DESC, m.id DESC
LIMIT $2
`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	defer rows.Close()

	items := make([]MatchWithProfileRecord, 0, limit)
	for rows.Next() {
		var item MatchWithProfileRecord
		if err := rows.Scan(
			&item.ID,
			&item.OtherUserID,
			&item.OtherDisplayName,
			&item.OtherLocation,
			&item.LastMessage,
			&item.LastActive,
			&item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		items = append(items, item)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate matches: %w", rows.Err())
	}

	return items, nil
}

func (r *MatchRepo) UpdateLastMessage(ctx context.Context, tx pgx.Tx, matchID, text string, now time.Time) error {
	if strings.TrimSpace(matchID) == "" {
		return fmt.Errorf("invalid match id")
	}
	if tx == nil {
		return fmt.Errorf("transaction is required")
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	result, err := tx.Exec(ctx, `
UPDATE matches
SET last_message = $2, last_active = $3
WHERE id = $1
`, matchID, text, now.UTC())
	if err != nil {
		return fmt.Errorf("update match last message: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrMatchNotFound
	}

	return nil
}
