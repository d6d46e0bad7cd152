// Package tweet implements the tweet resource: creation and deletion run
// inside a transaction that also enqueues the fan-out event, so the event
// stream never drifts from the table.
package tweet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	domoutbox "github.com/growtweet/growtweet/internal/domain/outbox"
	"github.com/growtweet/growtweet/internal/domain/tweet"
	ob "github.com/growtweet/growtweet/internal/outbox"
	"github.com/growtweet/growtweet/internal/repository/postgres"
)

// ErrActorMismatch means the request body named an owner other than the
// authenticated actor.
var ErrActorMismatch = errors.New("actor does not match requested owner")

// ErrEmptyContent rejects blank tweet bodies before they reach storage.
var ErrEmptyContent = errors.New("content must not be empty")

const (
	defaultFeedLimit = 50
	maxFeedLimit     = 200
)

type Usecase struct {
	tweets     tweet.Repo
	outbox     domoutbox.Repository
	transactor postgres.Transactor
	now        func() time.Time
}

func NewUsecase(tweets tweet.Repo, outbox domoutbox.Repository, tr postgres.Transactor) *Usecase {
	return &Usecase{
		tweets:     tweets,
		outbox:     outbox,
		transactor: tr,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Create stores a tweet owned by actorID. ownerID comes from the request
// body; when present it must match the actor, otherwise the write is
// refused before touching storage.
func (u *Usecase) Create(ctx context.Context, actorID, ownerID, content string, typ tweet.Type) (*tweet.Tweet, error) {
	if ownerID != "" && ownerID != actorID {
		return nil, ErrActorMismatch
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	if typ == "" {
		typ = tweet.TypeTweet
	}

	now := u.now()
	t := &tweet.Tweet{
		ID:        uuid.NewString(),
		UserID:    actorID,
		Content:   content,
		Type:      typ,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := u.transactor.WithTx(ctx, func(ctx context.Context) error {
		if err := u.tweets.Create(ctx, t); err != nil {
			return fmt.Errorf("create tweet: %w", err)
		}
		return u.enqueue(ctx, domoutbox.KindTweetCreated, t.ID, actorID, now)
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// List returns every tweet of the given type with like counts computed
// relative to the requester.
func (u *Usecase) List(ctx context.Context, requesterID string, typ tweet.Type) ([]*tweet.WithMeta, error) {
	if typ == "" {
		typ = tweet.TypeTweet
	}
	return u.tweets.List(ctx, requesterID, typ)
}

// Get resolves a tweet for its owner; foreign and missing tweets both
// surface as domain.ErrNotFound.
func (u *Usecase) Get(ctx context.Context, id, ownerID string) (*tweet.WithMeta, error) {
	return u.tweets.GetForOwner(ctx, id, ownerID)
}

// Feed returns the actor's own tweets plus tweets of everyone they
// follow, newest first. A non-positive limit falls back to the default.
func (u *Usecase) Feed(ctx context.Context, userID string, limit int) ([]*tweet.WithMeta, error) {
	if limit <= 0 {
		limit = defaultFeedLimit
	}
	if limit > maxFeedLimit {
		limit = maxFeedLimit
	}
	return u.tweets.ListFeed(ctx, userID, limit)
}

func (u *Usecase) UpdateContent(ctx context.Context, id, ownerID, content string) (*tweet.Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	return u.tweets.UpdateContentForOwner(ctx, id, ownerID, content)
}

// Delete removes an owned tweet and enqueues the deletion event in the
// same transaction.
func (u *Usecase) Delete(ctx context.Context, id, ownerID string) error {
	return u.transactor.WithTx(ctx, func(ctx context.Context) error {
		if err := u.tweets.DeleteForOwner(ctx, id, ownerID); err != nil {
			return err
		}
		return u.enqueue(ctx, domoutbox.KindTweetDeleted, id, ownerID, u.now())
	})
}

func (u *Usecase) enqueue(ctx context.Context, kind domoutbox.Kind, tweetID, userID string, at time.Time) error {
	data, err := json.Marshal(ob.TweetEventPayload{TweetID: tweetID, UserID: userID, At: at})
	if err != nil {
		return fmt.Errorf("marshal outbox payload: %w", err)
	}
	key := fmt.Sprintf("%d:%s", kind, tweetID)
	if err := u.outbox.Enqueue(ctx, key, kind, data); err != nil {
		return fmt.Errorf("enqueue outbox: %w", err)
	}
	return nil
}
