package dto

import "time"

type IncomingLike struct {
	FromID      string    `json:"from_id"`
	DisplayName string    `json:"display_name"`
	Location    string    `json:"location,omitempty"`
	SuperLike   bool      `json:"super_like"`
	Seen        bool      `json:"seen"`
	CreatedAt   time.Time `json:"created_at"`
}

type IncomingLikesResponse struct {
	Likes []IncomingLike `json:"likes"`
}

type UnseenCountResponse struct {
	Count int `json:"count"`
}

type MarkSeenRequest struct {
	FromID string `json:"from_id"`
}

type OKResponse struct {
	OK bool `json:"ok"`
}
