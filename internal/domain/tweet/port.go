package tweet

import "context"

type Repo interface {
	Create(ctx context.Context, t *Tweet) error
	// GetByID is owner-agnostic; used for existence checks (likes, replies).
	GetByID(ctx context.Context, id string) (*Tweet, error)
	// GetForOwner scopes the lookup to id+owner in a single query so a
	// foreign tweet and a missing tweet are indistinguishable.
	GetForOwner(ctx context.Context, id, ownerID string) (*WithMeta, error)
	// List returns all tweets with like counts relative to requesterID.
	List(ctx context.Context, requesterID string, typ Type) ([]*WithMeta, error)
	// ListFeed returns tweets authored by userID or by anyone userID
	// follows, newest first.
	ListFeed(ctx context.Context, userID string, limit int) ([]*WithMeta, error)
	// UpdateContentForOwner and DeleteForOwner report domain.ErrNotFound
	// when no row matches the id+owner pair.
	UpdateContentForOwner(ctx context.Context, id, ownerID, content string) (*Tweet, error)
	DeleteForOwner(ctx context.Context, id, ownerID string) error
}
