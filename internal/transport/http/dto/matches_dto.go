package dto

import "time"

type MatchEntry struct {
	MatchID          string    `json:"match_id"`
	OtherUserID      string    `json:"other_user_id"`
	OtherDisplayName string    `json:"other_display_name"`
	OtherLocation    string    `json:"other_location,omitempty"`
	LastMessage      string    `json:"last_message"`
	LastActive       time.Time `json:"last_active"`
	CreatedAt        time.Time `json:"created_at"`
}

type MatchesResponse struct {
	Matches []MatchEntry `json:"matches"`
}

type RepairMatchRequest struct {
	OtherUserID string `json:"other_user_id"`
}
