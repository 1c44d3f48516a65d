package model

import (
	"time"

	"github.com/dextiii09/pingnewapp/internal/domain/enums"
)

type User struct {
	ID           string                   `json:"id"`
	DisplayName  string                   `json:"display_name"`
	Role         enums.Role               `json:"role"`
	Status       enums.UserStatus         `json:"status"`
	Verification enums.VerificationStatus `json:"verification"`
	MatchScore   *int                     `json:"match_score,omitempty"`
	Tags         []string                 `json:"tags"`
	Location     string                   `json:"location"`
	IsSeed       bool                     `json:"is_seed"`
	CreatedAt    time.Time                `json:"created_at"`
}
