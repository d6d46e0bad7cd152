package tweet

import "time"

// Type discriminates top-level tweets from replies in the original data
// model; replies carry their own aggregate but share the enum.
type Type string

const (
	TypeTweet Type = "tweet"
	TypeReply Type = "reply"
)

type Tweet struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Content   string    `json:"content"`
	Type      Type      `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// WithMeta is a tweet joined with per-requester like information.
type WithMeta struct {
	Tweet
	LikeCount        int  `json:"likeCount"`
	LikedByRequester bool `json:"likedByCurrentUser"`
}
