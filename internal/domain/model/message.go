package model

import (
	"time"

	"github.com/dextiii09/pingnewapp/internal/domain/enums"
)

type Message struct {
	ID         string            `json:"id"`
	MatchID    string            `json:"match_id"`
	SenderID   string            `json:"sender_id"`
	Kind       enums.MessageKind `json:"kind"`
	Body       string            `json:"body"`
	ProposalID *string           `json:"proposal_id,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}
