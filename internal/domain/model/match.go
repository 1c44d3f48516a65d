package model

import "time"

type Match struct {
	ID          string    `json:"id"`
	UserA       string    `json:"user_a"`
	UserB       string    `json:"user_b"`
	LastMessage string    `json:"last_message"`
	LastActive  time.Time `json:"last_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// OtherUser picks the counterpart for a member of the match.
func (m Match) OtherUser(userID string) string {
	if m.UserA == userID {
		return m.UserB
	}
	return m.UserA
}

func (m Match) HasMember(userID string) bool {
	return m.UserA == userID || m.UserB == userID
}
