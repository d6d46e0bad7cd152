// Package reply implements the reply resource: owner-scoped CRUD attached
// to an existing tweet.
package reply

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/growtweet/growtweet/internal/domain"
	"github.com/growtweet/growtweet/internal/domain/reply"
	"github.com/growtweet/growtweet/internal/domain/tweet"
)

var ErrActorMismatch = errors.New("actor does not match requested owner")

var ErrEmptyContent = errors.New("content must not be empty")

var ErrTweetNotFound = errors.New("tweet not found")

type Usecase struct {
	replies reply.Repo
	tweets  tweet.Repo
	now     func() time.Time
}

func NewUsecase(replies reply.Repo, tweets tweet.Repo) *Usecase {
	return &Usecase{
		replies: replies,
		tweets:  tweets,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (u *Usecase) Create(ctx context.Context, actorID, ownerID, tweetID, content string) (*reply.Reply, error) {
	if ownerID != "" && ownerID != actorID {
		return nil, ErrActorMismatch
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	if _, err := u.tweets.GetByID(ctx, tweetID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrTweetNotFound
		}
		return nil, fmt.Errorf("check tweet: %w", err)
	}

	now := u.now()
	rep := &reply.Reply{
		ID:        uuid.NewString(),
		UserID:    actorID,
		TweetID:   tweetID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.replies.Create(ctx, rep); err != nil {
		return nil, fmt.Errorf("create reply: %w", err)
	}
	return rep, nil
}

// List returns the actor's own replies.
func (u *Usecase) List(ctx context.Context, actorID string) ([]*reply.Reply, error) {
	return u.replies.ListByOwner(ctx, actorID)
}

func (u *Usecase) Get(ctx context.Context, id, actorID string) (*reply.Reply, error) {
	return u.replies.GetForOwner(ctx, id, actorID)
}

func (u *Usecase) UpdateContent(ctx context.Context, id, actorID, content string) (*reply.Reply, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	return u.replies.UpdateContentForOwner(ctx, id, actorID, content)
}

func (u *Usecase) Delete(ctx context.Context, id, actorID string) error {
	return u.replies.DeleteForOwner(ctx, id, actorID)
}
