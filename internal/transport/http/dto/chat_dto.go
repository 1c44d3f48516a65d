package dto

import "time"

type SendMessageRequest struct {
	Text string `json:"text"`
}

type MessagePayload struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	Kind       string    `json:"kind"`
	Body       string    `json:"body"`
	ProposalID *string   `json:"proposal_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type MessagesResponse struct {
	Messages []MessagePayload `json:"messages"`
}
