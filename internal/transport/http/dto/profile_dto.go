package dto

import "time"

type ProfileResponse struct {
	ID           string    `json:"id"`
	DisplayName  string    `json:"display_name"`
	Role         string    `json:"role"`
	Status       string    `json:"status"`
	Verification string    `json:"verification"`
	MatchScore   *int      `json:"match_score,omitempty"`
	Tags         []string  `json:"tags,omitempty"`
	Location     string    `json:"location,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type UpdateProfileRequest struct {
	DisplayName *string  `json:"display_name,omitempty"`
	Location    *string  `json:"location,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	MatchScore  *int     `json:"match_score,omitempty"`
}
