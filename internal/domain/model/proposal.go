package model

import (
	"time"

	"github.com/dextiii09/pingnewapp/internal/domain/enums"
)

type Proposal struct {
	ID         string               `json:"id"`
	MatchID    string               `json:"match_id"`
	AuthorID   string               `json:"author_id"`
	Title      string               `json:"title"`
	PriceCents int64                `json:"price_cents"`
	Deadline   time.Time            `json:"deadline"`
	Status     enums.ProposalStatus `json:"status"`
	// Superseded marks a proposal that was auto-declined because a
	// counter-offer replaced it while it was still pending.
	Superseded bool       `json:"superseded"`
	CreatedAt  time.Time  `json:"created_at"`
	DecidedAt  *time.Time `json:"decided_at,omitempty"`
}

type DealState struct {
	MatchID   string          `json:"match_id"`
	Stage     enums.DealStage `json:"stage"`
	UpdatedAt time.Time       `json:"updated_at"`
}
