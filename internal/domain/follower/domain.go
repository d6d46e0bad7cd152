package follower

import "time"

// Follower is a directed follow edge: FollowerID follows UserID.
type Follower struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	FollowerID string    `json:"followerId"`
	CreatedAt  time.Time `json:"createdAt"`
}
