package follower

import "context"

type Repo interface {
	// Create reports domain.ErrConflict for a duplicate ordered pair.
	Create(ctx context.Context, f *Follower) error
	// DeleteForFollower removes an edge owned by followerID; a missing or
	// foreign edge is domain.ErrNotFound.
	DeleteForFollower(ctx context.Context, id, followerID string) error
	// ListByUser returns every edge the user participates in, on either
	// side.
	ListByUser(ctx context.Context, userID string) ([]*Follower, error)
}
