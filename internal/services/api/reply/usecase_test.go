package reply

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/growtweet/growtweet/internal/domain"
	domreply "github.com/growtweet/growtweet/internal/domain/reply"
	domtweet "github.com/growtweet/growtweet/internal/domain/tweet"
)

type fakeReplyRepo struct {
	byID map[string]*domreply.Reply
}

func newFakeReplyRepo() *fakeReplyRepo {
	return &fakeReplyRepo{byID: map[string]*domreply.Reply{}}
}

func (f *fakeReplyRepo) Create(ctx context.Context, r *domreply.Reply) error {
	f.byID[r.ID] = r
	return nil
}

func (f *fakeReplyRepo) ListByOwner(ctx context.Context, ownerID string) ([]*domreply.Reply, error) {
	var out []*domreply.Reply
	for _, r := range f.byID {
		if r.UserID == ownerID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReplyRepo) GetForOwner(ctx context.Context, id, ownerID string) (*domreply.Reply, error) {
	r, ok := f.byID[id]
	if !ok || r.UserID != ownerID {
		return nil, domain.ErrNotFound
	}
	return r, nil
}

func (f *fakeReplyRepo) UpdateContentForOwner(ctx context.Context, id, ownerID, content string) (*domreply.Reply, error) {
	r, ok := f.byID[id]
	if !ok || r.UserID != ownerID {
		return nil, domain.ErrNotFound
	}
	r.Content = content
	return r, nil
}

func (f *fakeReplyRepo) DeleteForOwner(ctx context.Context, id, ownerID string) error {
	r, ok := f.byID[id]
	if !ok || r.UserID != ownerID {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeTweetGetter struct {
	domtweet.Repo
	existing map[string]bool
}

func (f *fakeTweetGetter) GetByID(ctx context.Context, id string) (*domtweet.Tweet, error) {
	if !f.existing[id] {
		return nil, domain.ErrNotFound
	}
	return &domtweet.Tweet{ID: id}, nil
}

func newTestUsecase() (*Usecase, *fakeReplyRepo) {
	replies := newFakeReplyRepo()
	tweets := &fakeTweetGetter{existing: map[string]bool{"t-1": true}}
	return NewUsecase(replies, tweets), replies
}

func TestCreate_Success(t *testing.T) {
	uc, replies := newTestUsecase()

	rep, err := uc.Create(context.Background(), "u-1", "", "t-1", "nice tweet")
	require.NoError(t, err)
	require.Equal(t, "u-1", rep.UserID)
	require.Equal(t, "t-1", rep.TweetID)
	require.Len(t, replies.byID, 1)
}

func TestCreate_ForeignOwnerRefused(t *testing.T) {
	uc, _ := newTestUsecase()

	_, err := uc.Create(context.Background(), "u-1", "u-2", "t-1", "x")
	require.ErrorIs(t, err, ErrActorMismatch)
}

func TestCreate_UnknownTweet(t *testing.T) {
	uc, _ := newTestUsecase()

	_, err := uc.Create(context.Background(), "u-1", "", "t-missing", "x")
	require.ErrorIs(t, err, ErrTweetNotFound)
}

func TestCreate_EmptyContent(t *testing.T) {
	uc, _ := newTestUsecase()

	_, err := uc.Create(context.Background(), "u-1", "", "t-1", "  ")
	require.ErrorIs(t, err, ErrEmptyContent)
}

func TestUpdate_ForeignReplyReadsAsMissing(t *testing.T) {
	uc, replies := newTestUsecase()
	replies.byID["r-1"] = &domreply.Reply{ID: "r-1", UserID: "u-2", TweetID: "t-1", Content: "x"}

	_, err := uc.UpdateContent(context.Background(), "r-1", "u-1", "changed")
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.Equal(t, "x", replies.byID["r-1"].Content)
}

func TestDelete_ForeignReplyReadsAsMissing(t *testing.T) {
	uc, replies := newTestUsecase()
	replies.byID["r-1"] = &domreply.Reply{ID: "r-1", UserID: "u-2", TweetID: "t-1"}

	require.ErrorIs(t, uc.Delete(context.Background(), "r-1", "u-1"), domain.ErrNotFound)
	require.Contains(t, replies.byID, "r-1")
}
