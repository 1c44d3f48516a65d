package dto

import "time"

type SwipeRequest struct {
	TargetID  string `json:"target_id"`
	Direction string `json:"direction"`
}

type MatchPayload struct {
	ID          string    `json:"id"`
	Users       []string  `json:"users"`
	LastMessage string    `json:"last_message"`
	LastActive  time.Time `json:"last_active"`
}

type MatchedUserPayload struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
	Location    string `json:"location,omitempty"`
}

type SwipeResponse struct {
	IsMatch     bool                `json:"is_match"`
	Match       *MatchPayload       `json:"match,omitempty"`
	MatchedWith *MatchedUserPayload `json:"matched_with,omitempty"`
}
