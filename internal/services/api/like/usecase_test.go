package like

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/growtweet/growtweet/internal/domain"
	domlike "github.com/growtweet/growtweet/internal/domain/like"
	domtweet "github.com/growtweet/growtweet/internal/domain/tweet"
)

type fakeLikeRepo struct {
	byID map[string]*domlike.Like
}

func newFakeLikeRepo() *fakeLikeRepo {
	return &fakeLikeRepo{byID: map[string]*domlike.Like{}}
}

func (f *fakeLikeRepo) Create(ctx context.Context, l *domlike.Like) error {
	for _, existing := range f.byID {
		if existing.UserID == l.UserID && existing.TweetID == l.TweetID {
			return domain.ErrConflict
		}
	}
	f.byID[l.ID] = l
	return nil
}

func (f *fakeLikeRepo) DeleteForOwner(ctx context.Context, id, ownerID string) (*domlike.Like, error) {
	l, ok := f.byID[id]
	if !ok || l.UserID != ownerID {
		return nil, domain.ErrNotFound
	}
	delete(f.byID, id)
	return l, nil
}

func (f *fakeLikeRepo) CountByTweet(ctx context.Context, tweetID string) (int, error) {
	n := 0
	for _, l := range f.byID {
		if l.TweetID == tweetID {
			n++
		}
	}
	return n, nil
}

type fakeTweetGetter struct {
	domtweet.Repo
	existing map[string]bool
}

func (f *fakeTweetGetter) GetByID(ctx context.Context, id string) (*domtweet.Tweet, error) {
	if !f.existing[id] {
		return nil, domain.ErrNotFound
	}
	return &domtweet.Tweet{ID: id, UserID: "author"}, nil
}

func newTestUsecase() (*Usecase, *fakeLikeRepo) {
	likes := newFakeLikeRepo()
	tweets := &fakeTweetGetter{existing: map[string]bool{"t-1": true}}
	return NewUsecase(likes, tweets), likes
}

func TestCreate_Success(t *testing.T) {
	uc, likes := newTestUsecase()

	l, err := uc.Create(context.Background(), "u-1", "", "t-1")
	require.NoError(t, err)
	require.Equal(t, "u-1", l.UserID)
	require.Equal(t, "t-1", l.TweetID)
	require.Len(t, likes.byID, 1)
}

func TestCreate_ForeignOwnerRefused(t *testing.T) {
	uc, likes := newTestUsecase()

	_, err := uc.Create(context.Background(), "u-1", "u-2", "t-1")
	require.ErrorIs(t, err, ErrActorMismatch)
	require.Empty(t, likes.byID)
}

func TestCreate_UnknownTweet(t *testing.T) {
	uc, _ := newTestUsecase()

	_, err := uc.Create(context.Background(), "u-1", "", "t-missing")
	require.ErrorIs(t, err, ErrTweetNotFound)
}

func TestCreate_Duplicate(t *testing.T) {
	uc, _ := newTestUsecase()

	_, err := uc.Create(context.Background(), "u-1", "", "t-1")
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), "u-1", "", "t-1")
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestDelete_ForeignLikeReadsAsMissing(t *testing.T) {
	uc, likes := newTestUsecase()
	likes.byID["l-1"] = &domlike.Like{ID: "l-1", UserID: "u-2", TweetID: "t-1"}

	_, err := uc.Delete(context.Background(), "l-1", "u-1")
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.Contains(t, likes.byID, "l-1")
}

func TestDelete_ReturnsRemovedLike(t *testing.T) {
	uc, likes := newTestUsecase()
	likes.byID["l-1"] = &domlike.Like{ID: "l-1", UserID: "u-1", TweetID: "t-1"}

	l, err := uc.Delete(context.Background(), "l-1", "u-1")
	require.NoError(t, err)
	require.Equal(t, "l-1", l.ID)
	require.Empty(t, likes.byID)
}
