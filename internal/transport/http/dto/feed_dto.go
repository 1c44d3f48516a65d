package dto

type FeedCandidate struct {
	UserID         string   `json:"user_id"`
	DisplayName    string   `json:"display_name"`
	Role           string   `json:"role"`
	Location       string   `json:"location,omitempty"`
	Tags           []string `json:"tags,omitempty"`
	EffectiveScore int      `json:"effective_score"`
	Priority       bool     `json:"priority"`
}

type FeedResponse struct {
	Candidates []FeedCandidate `json:"candidates"`
}
