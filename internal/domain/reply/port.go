package reply

import "context"

type Repo interface {
	Create(ctx context.Context, r *Reply) error
	ListByOwner(ctx context.Context, ownerID string) ([]*Reply, error)
	// Owner-scoped operations report domain.ErrNotFound uniformly for
	// missing and foreign replies.
	GetForOwner(ctx context.Context, id, ownerID string) (*Reply, error)
	UpdateContentForOwner(ctx context.Context, id, ownerID, content string) (*Reply, error)
	DeleteForOwner(ctx context.Context, id, ownerID string) error
}
