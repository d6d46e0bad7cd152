package like

import "context"

type Repo interface {
	// Create reports domain.ErrConflict when the (user, tweet) pair is
	// already liked.
	Create(ctx context.Context, l *Like) error
	// DeleteForOwner reports domain.ErrNotFound when the like does not
	// exist or belongs to someone else.
	DeleteForOwner(ctx context.Context, id, ownerID string) (*Like, error)
	CountByTweet(ctx context.Context, tweetID string) (int, error)
}
