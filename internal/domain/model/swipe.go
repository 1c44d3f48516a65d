package model

import (
	"time"

	"github.com/dextiii09/pingnewapp/internal/domain/enums"
)

type Swipe struct {
	ID        int64                `json:"id"`
	ActorID   string               `json:"actor_id"`
	TargetID  string               `json:"target_id"`
	Direction enums.SwipeDirection `json:"direction"`
	CreatedAt time.Time            `json:"created_at"`
}

// ReceivedSwipe mirrors a positive swipe under the target's identity.
type ReceivedSwipe struct {
	TargetID  string               `json:"target_id"`
	FromID    string               `json:"from_id"`
	Direction enums.SwipeDirection `json:"direction"`
	Seen      bool                 `json:"seen"`
	CreatedAt time.Time            `json:"created_at"`
}
