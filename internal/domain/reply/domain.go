package reply

import "time"

type Reply struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	TweetID   string    `json:"tweetId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
