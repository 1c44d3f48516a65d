package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dextiii09/pingnewapp/internal/domain/enums"
	"github.com/dextiii09/pingnewapp/internal/domain/model"
)

type MessageRepo struct {
	pool *pgxpool.Pool
}

func NewMessageRepo(pool *pgxpool.Pool) *MessageRepo {
	return &MessageRepo{pool: pool}
}

// Append writes one message inside the caller's transaction so thread
// writes and the match preview update commit together.
func (r *MessageRepo) Append(ctx context.Context, tx pgx.Tx, msg model.Message) (model.Message, error) {
	if strings.TrimSpace(msg.ID) == "" || strings.TrimSpace(msg.MatchID) == "" || strings.TrimSpace(msg.SenderID) == "" {
		return model.Message{}, fmt.Errorf("invalid message payload")
	}
	if tx == nil {
		return model.Message{}, fmt.Errorf("transaction is required")
	}
	if msg.Kind == "" {
		msg.Kind = enums.MessageKindText
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}

	var rec model.Message
	err := tx.QueryRow(ctx, `
INSERT INTO messages (
	id,
	match_id,
	sender_id,
	kind,
	body,
	proposal_id,
	created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, match_id, sender_id, kind, body, proposal_id, created_at
`, msg.ID, msg.MatchID, msg.SenderID, msg.Kind, msg.Body, msg.ProposalID, msg.CreatedAt.UTC()).Scan(
		&rec.ID,
		&rec.MatchID,
		&rec.SenderID,
		&rec.Kind,
		&rec.Body,
		&rec.ProposalID,
		&rec.CreatedAt,
	)
	if err != nil {
		return model.Message{}, fmt.Errorf("append message: %w", err)
	}

	return rec, nil
}

// ListByMatch returns the thread in send order.
func (r *MessageRepo) ListByMatch(ctx context.Context, matchID string, limit int) ([]model.Message, error) {
	if strings.TrimSpace(matchID) == "" {
		return nil, fmt.Errorf("invalid match id")
	}
	if limit <= 0 {
		limit = 200
	}
	if r.pool == nil {
		return []model.Message{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, match_id, sender_id, kind, body, proposal_id, created_at
FROM messages
WHERE match_id = $1
ORDER BY created_at ASC, id ASC
LIMIT $2
`, matchID, limit)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	items := make([]model.Message, 0, limit)
	for rows.Next() {
		var rec model.Message
		if err := rows.Scan(
			&rec.ID,
			&rec.MatchID,
			&rec.SenderID,
			&rec.Kind,
			&rec.Body,
			&rec.ProposalID,
			&rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		items = append(items, rec)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate messages: %w", rows.Err())
	}

	return items, nil
}
