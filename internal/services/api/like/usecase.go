// Package like implements the like resource. A like always belongs to the
// authenticated actor; the tweet it targets must exist, and the (actor,
// tweet) pair is unique.
package like

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/growtweet/growtweet/internal/domain"
	"github.com/growtweet/growtweet/internal/domain/like"
	"github.com/growtweet/growtweet/internal/domain/tweet"
)

var ErrActorMismatch = errors.New("actor does not match requested owner")

// ErrTweetNotFound distinguishes a missing like target from a missing
// like record.
var ErrTweetNotFound = errors.New("tweet not found")

type Usecase struct {
	likes  like.Repo
	tweets tweet.Repo
	now    func() time.Time
}

func NewUsecase(likes like.Repo, tweets tweet.Repo) *Usecase {
	return &Usecase{
		likes:  likes,
		tweets: tweets,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Create likes a tweet on behalf of actorID. The target is checked first
// so a like of a nonexistent tweet reads as a missing tweet, not a
// storage error.
func (u *Usecase) Create(ctx context.Context, actorID, ownerID, tweetID string) (*like.Like, error) {
	if ownerID != "" && ownerID != actorID {
		return nil, ErrActorMismatch
	}

	if _, err := u.tweets.GetByID(ctx, tweetID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrTweetNotFound
		}
		return nil, fmt.Errorf("check tweet: %w", err)
	}

	l := &like.Like{
		ID:        uuid.NewString(),
		UserID:    actorID,
		TweetID:   tweetID,
		CreatedAt: u.now(),
	}
	if err := u.likes.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// Delete removes a like owned by actorID and returns the removed record.
func (u *Usecase) Delete(ctx context.Context, id, actorID string) (*like.Like, error) {
	return u.likes.DeleteForOwner(ctx, id, actorID)
}
