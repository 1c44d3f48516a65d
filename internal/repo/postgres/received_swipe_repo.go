package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dextiii09/pingnewapp/internal/domain/enums"
)

type ReceivedSwipeRepo struct {
	pool *pgxpool.Pool
}

func NewReceivedSwipeRepo(pool *pgxpool.Pool) *ReceivedSwipeRepo {
	return &ReceivedSwipeRepo{pool: pool}
}

// IncomingLikeRecord is a received swipe joined with the liker profile.
type IncomingLikeRecord struct {
	FromID      string
	DisplayName string
	Location    string
	Direction   enums.SwipeDirection
	Seen        bool
	CreatedAt   time.Time
}

// Append mirrors a positive swipe under the target's identity. Repeat
// swipes from the same user refresh the existing row instead of
// stacking duplicates in the "likes you" list.
func (r *ReceivedSwipeRepo) Append(ctx context.Context, targetID, fromID string, direction enums.SwipeDirection, now time.Time) error {
	if strings.TrimSpace(targetID) == "" || strings.TrimSpace(fromID) == "" {
		return fmt.Errorf("invalid received swipe payload")
	}
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	if _, err := r.pool.Exec(ctx, `
INSERT INTO received_swipes (
	target_id,
	from_id,
	direction,
	seen,
	created_at
) VALUES ($1, $2, $3, FALSE, $4)
ON CONFLICT (target_id, from_id) DO UPDATE SET
	direction = EXCLUDED.direction,
	seen = FALSE,
	created_at = EXCLUDED.created_at
`, targetID, fromID, direction, now.UTC()); err != nil {
		return fmt.Errorf("append received swipe: %w", err)
	}

	return nil
}

// ListUnseenSuperLikers returns ids of users whose superlike on the
// target has not been seen yet. Feeds the priority boost.
func (r *ReceivedSwipeRepo) ListUnseenSuperLikers(ctx context.Context, targetID string) ([]string, error) {
	if strings.TrimSpace(targetID) == "" {
		return nil, fmt.Errorf("invalid target id")
	}
	if r.pool == nil {
		return []string{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT from_id
FROM received_swipes
WHERE
	target_id = $1
	AND direction = $2
	AND seen = FALSE
`, targetID, enums.SwipeSuperLike)
	if err != nil {
		return nil, fmt.Errorf("list unseen superlikers: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0, 8)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan superliker id: %w", err)
		}
		ids = append(ids, id)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate superlikers: %w", rows.Err())
	}

	return ids, nil
}

func (r *ReceivedSwipeRepo) CountUnseen(ctx context.Context, targetID string) (int, error) {
	if strings.TrimSpace(targetID) == "" {
		return 0, fmt.Errorf("invalid target id")
	}
	if r.pool == nil {
		return 0, nil
	}

	var count int
	if err := r.pool.QueryRow(ctx, `
SELECT COUNT(*)
FROM received_swipes
WHERE target_id = $1 AND seen = FALSE
`, targetID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count unseen received swipes: %w", err)
	}

	return count, nil
}

// MarkSeen flips the seen flag for one liker. Reported separately from
// reads so a feed fetch never mutates seen state.
func (r *ReceivedSwipeRepo) MarkSeen(ctx context.Context, targetID, fromID string) (bool, error) {
	if strings.TrimSpace(targetID) == "" || strings.TrimSpace(fromID) == "" {
		return false, fmt.Errorf("invalid mark seen payload")
	}
	if r.pool == nil {
		return false, fmt.Errorf("postgres pool is nil")
	}

	result, err := r.pool.Exec(ctx, `
UPDATE received_swipes
SET seen = TRUE
WHERE target_id = $1 AND from_id = $2 AND seen = FALSE
`, targetID, fromID)
	if err != nil {
		return false, fmt.Errorf("mark received swipe seen: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *ReceivedSwipeRepo) ListIncoming(ctx context.Context, targetID string, limit int) ([]IncomingLikeRecord, error) {
	if strings.TrimSpace(targetID) == "" {
		return nil, fmt.Errorf("invalid target id")
	}
	if limit <= 0 {
		limit = 50
	}
	if r.pool == nil {
		return []IncomingLikeRecord{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT
	rs.from_id,
	COALESCE(u.display_name, ''),
	COALESCE(u.location, ''),
	rs.direction,
	rs.seen,
	rs.created_at
FROM received_swipes rs
JOIN users u ON u.id = rs.from_id
WHERE
	rs.target_id = $1
	AND u.status = $2
ORDER BY rs.created_at DESC, rs.from_id DESC
LIMIT $3
`, targetID, enums.UserStatusActive, limit)
	if err != nil {
		return nil, fmt.Errorf("list incoming likes: %w", err)
	}
	defer rows.Close()

	items := make([]IncomingLikeRecord, 0, limit)
	for rows.Next() {
		var rec IncomingLikeRecord
		if err := rows.Scan(
			&rec.FromID,
			&rec.DisplayName,
			&rec.Location,
			&rec.Direction,
			&rec.Seen,
			&rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan incoming like: %w", err)
		}
		items = append(items, rec)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate incoming likes: %w", rows.Err())
	}

	return items, nil
}
