// Package follower implements the follow graph. An edge is created by its
// follower side and can only be removed by that same side.
package follower

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/growtweet/growtweet/internal/domain"
	"github.com/growtweet/growtweet/internal/domain/follower"
	"github.com/growtweet/growtweet/internal/domain/user"
)

var ErrActorMismatch = errors.New("actor does not match requested follower")

// ErrSelfFollow rejects an edge from a user to themselves.
var ErrSelfFollow = errors.New("cannot follow yourself")

var ErrUserNotFound = errors.New("user not found")

type Usecase struct {
	followers follower.Repo
	users     user.Repo
	now       func() time.Time
}

func NewUsecase(followers follower.Repo, users user.Repo) *Usecase {
	return &Usecase{
		followers: followers,
		users:     users,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Follow creates the edge actorID -> userID. The body may carry the
// follower id; it must match the actor. The target user must exist.
func (u *Usecase) Follow(ctx context.Context, actorID, followerID, userID string) (*follower.Follower, error) {
	if followerID != "" && followerID != actorID {
		return nil, ErrActorMismatch
	}
	if userID == actorID {
		return nil, ErrSelfFollow
	}

	if _, err := u.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("check user: %w", err)
	}

	f := &follower.Follower{
		ID:         uuid.NewString(),
		UserID:     userID,
		FollowerID: actorID,
		CreatedAt:  u.now(),
	}
	if err := u.followers.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// Unfollow removes an edge owned by actorID as its follower side.
func (u *Usecase) Unfollow(ctx context.Context, id, actorID string) error {
	return u.followers.DeleteForFollower(ctx, id, actorID)
}

// List returns every edge the actor participates in, both directions.
func (u *Usecase) List(ctx context.Context, actorID string) ([]*follower.Follower, error) {
	return u.followers.ListByUser(ctx, actorID)
}
