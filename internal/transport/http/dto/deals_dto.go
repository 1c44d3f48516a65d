package dto

import "time"

type CreateProposalRequest struct {
	Title      string    `json:"title"`
	PriceCents int64     `json:"price_cents"`
	Deadline   time.Time `json:"deadline"`
}

type RespondProposalRequest struct {
	Decision string `json:"decision"`
}

type ProposalPayload struct {
	ID         string     `json:"id"`
	AuthorID   string     `json:"author_id"`
	Title      string     `json:"title"`
	PriceCents int64      `json:"price_cents"`
	Deadline   time.Time  `json:"deadline"`
	Status     string     `json:"status"`
	Superseded bool       `json:"superseded"`
	CreatedAt  time.Time  `json:"created_at"`
	DecidedAt  *time.Time `json:"decided_at,omitempty"`
}

type DealViewResponse struct {
	MatchID        string            `json:"match_id"`
	Stage          string            `json:"stage"`
	ActiveProposal *ProposalPayload  `json:"active_proposal,omitempty"`
	History        []ProposalPayload `json:"history"`
}

type StageResponse struct {
	Stage string `json:"stage"`
	Noop  bool   `json:"noop,omitempty"`
}
