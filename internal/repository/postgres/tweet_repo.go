package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/growtweet/growtweet/internal/domain"
	"github.com/growtweet/growtweet/internal/domain/tweet"
)

var _ tweet.Repo = (*TweetRepo)(nil)

type TweetRepo struct {
	db *DB
}

func NewTweetRepo(db *DB) *TweetRepo { return &TweetRepo{db: db} }

const (
	qTweetInsert = `
INSERT INTO tweets (id, user_id, content, type)
VALUES ($1, $2, $3, $4)
RETURNING id, user_id, content, type, created_at, updated_at;`

	qTweetByID = `
SELECT id, user_id, content, type, created_at, updated_at
FROM tweets
WHERE id = $1;`

	// Owner-scoped single query: a foreign tweet and a missing tweet both
	// produce zero rows, so callers cannot tell them apart.
	qTweetForOwner = `
SELECT t.id, t.user_id, t.content, t.type, t.created_at, t.updated_at,
       COUNT(l.id)                          AS like_count,
       COALESCE(BOOL_OR(l.user_id = $2), FALSE) AS liked_by_requester
FROM tweets t
LEFT JOIN likes l ON l.tweet_id = t.id
WHERE t.id = $1 AND t.user_id = $2
GROUP BY t.id;`

	qTweetList = `
SELECT t.id, t.user_id, t.content, t.type, t.created_at, t.updated_at,
       COUNT(l.id)                          AS like_count,
       COALESCE(BOOL_OR(l.user_id = $1), FALSE) AS liked_by_requester
FROM tweets t
LEFT JOIN likes l ON l.tweet_id = t.id
WHERE ($2 = '' OR t.type = $2)
GROUP BY t.id
ORDER BY t.created_at DESC;`

	qTweetFeed = `
SELECT t.id, t.user_id, t.content, t.type, t.created_at, t.updated_at,
       COUNT(l.id)                          AS like_count,
       COALESCE(BOOL_OR(l.user_id = $1), FALSE) AS liked_by_requester
FROM tweets t
LEFT JOIN likes l ON l.tweet_id = t.id
WHERE t.user_id = $1
   OR t.user_id IN (SELECT user_id FROM followers WHERE follower_id = $1)
GROUP BY t.id
ORDER BY t.created_at DESC
LIMIT $2;`

	qTweetUpdateForOwner = `
UPDATE tweets
SET content = $3, updated_at = NOW()
WHERE id = $1 AND user_id = $2
RETURNING id, user_id, content, type, created_at, updated_at;`

	qTweetDeleteForOwner = `
DELETE FROM tweets WHERE id = $1 AND user_id = $2;`
)

func (r *TweetRepo) Create(ctx context.Context, t *tweet.Tweet) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	eq := r.db.execQueryer(ctx)
	row := eq.QueryRow(ctx, qTweetInsert, t.ID, t.UserID, t.Content, t.Type)
	if err := scanTweet(row, t); err != nil {
		return fmt.Errorf("tweet insert: %w", err)
	}
	return nil
}

func (r *TweetRepo) GetByID(ctx context.Context, id string) (*tweet.Tweet, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var t tweet.Tweet
	if err := scanTweet(r.db.Pool.QueryRow(ctx, qTweetByID, id), &t); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("tweet by id: %w", err)
	}
	return &t, nil
}

func (r *TweetRepo) GetForOwner(ctx context.Context, id, ownerID string) (*tweet.WithMeta, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var m tweet.WithMeta
	if err := scanTweetMeta(r.db.Pool.QueryRow(ctx, qTweetForOwner, id, ownerID), &m); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("tweet for owner: %w", err)
	}
	return &m, nil
}

func (r *TweetRepo) List(ctx context.Context, requesterID string, typ tweet.Type) ([]*tweet.WithMeta, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Pool.Query(ctx, qTweetList, requesterID, string(typ))
	if err != nil {
		return nil, fmt.Errorf("tweet list: %w", err)
	}
	return collectTweetMeta(rows)
}

func (r *TweetRepo) ListFeed(ctx context.Context, userID string, limit int) ([]*tweet.WithMeta, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Pool.Query(ctx, qTweetFeed, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("tweet feed: %w", err)
	}
	return collectTweetMeta(rows)
}

func (r *TweetRepo) UpdateContentForOwner(ctx context.Context, id, ownerID, content string) (*tweet.Tweet, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var t tweet.Tweet
	if err := scanTweet(r.db.Pool.QueryRow(ctx, qTweetUpdateForOwner, id, ownerID, content), &t); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("tweet update: %w", err)
	}
	return &t, nil
}

func (r *TweetRepo) DeleteForOwner(ctx context.Context, id, ownerID string) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	eq := r.db.execQueryer(ctx)
	tag, err := eq.Exec(ctx, qTweetDeleteForOwner, id, ownerID)
	if err != nil {
		return fmt.Errorf("tweet delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanTweet(row pgx.Row, out *tweet.Tweet) error {
	return row.Scan(&out.ID, &out.UserID, &out.Content, &out.Type, &out.CreatedAt, &out.UpdatedAt)
}

func scanTweetMeta(row pgx.Row, out *tweet.WithMeta) error {
	return row.Scan(&out.ID, &out.UserID, &out.Content, &out.Type, &out.CreatedAt, &out.UpdatedAt,
		&out.LikeCount, &out.LikedByRequester)
}

func collectTweetMeta(rows pgx.Rows) ([]*tweet.WithMeta, error) {
	defer rows.Close()
	var out []*tweet.WithMeta
	for rows.Next() {
		var m tweet.WithMeta
		if err := scanTweetMeta(rows, &m); err != nil {
			return nil, fmt.Errorf("scan tweet: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}
