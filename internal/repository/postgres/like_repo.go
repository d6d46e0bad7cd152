package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/growtweet/growtweet/internal/domain"
	"github.com/growtweet/growtweet/internal/domain/like"
)

var _ like.Repo = (*LikeRepo)(nil)

type LikeRepo struct {
	db *DB
}

func NewLikeRepo(db *DB) *LikeRepo { return &LikeRepo{db: db} }

const (
	qLikeInsert = `
INSERT INTO likes (id, user_id, tweet_id)
VALUES ($1, $2, $3)
RETURNING id, user_id, tweet_id, created_at;`

	qLikeDeleteForOwner = `
DELETE FROM likes
WHERE id = $1 AND user_id = $2
RETURNING id, user_id, tweet_id, created_at;`

	qLikeCountByTweet = `
SELECT COUNT(*) FROM likes WHERE tweet_id = $1;`
)

func (r *LikeRepo) Create(ctx context.Context, l *like.Like) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	row := r.db.Pool.QueryRow(ctx, qLikeInsert, l.ID, l.UserID, l.TweetID)
	if err := row.Scan(&l.ID, &l.UserID, &l.TweetID, &l.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("like insert: %w", err)
	}
	return nil
}

func (r *LikeRepo) DeleteForOwner(ctx context.Context, id, ownerID string) (*like.Like, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var l like.Like
	row := r.db.Pool.QueryRow(ctx, qLikeDeleteForOwner, id, ownerID)
	if err := row.Scan(&l.ID, &l.UserID, &l.TweetID, &l.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("like delete: %w", err)
	}
	return &l, nil
}

func (r *LikeRepo) CountByTweet(ctx context.Context, tweetID string) (int, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var n int
	if err := r.db.Pool.QueryRow(ctx, qLikeCountByTweet, tweetID).Scan(&n); err != nil {
		return 0, fmt.Errorf("like count: %w", err)
	}
	return n, nil
}
