package like

import "time"

type Like struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	TweetID   string    `json:"tweetId"`
	CreatedAt time.Time `json:"createdAt"`
}
