package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/growtweet/growtweet/internal/domain"
	"github.com/growtweet/growtweet/internal/domain/reply"
)

var _ reply.Repo = (*ReplyRepo)(nil)

type ReplyRepo struct {
	db *DB
}

func NewReplyRepo(db *DB) *ReplyRepo { return &ReplyRepo{db: db} }

const (
	qReplyInsert = `
INSERT INTO replies (id, user_id, tweet_id, content)
VALUES ($1, $2, $3, $4)
RETURNING id, user_id, tweet_id, content, created_at, updated_at;`

	qReplyListByOwner = `
SELECT id, user_id, tweet_id, content, created_at, updated_at
FROM replies
WHERE user_id = $1
ORDER BY created_at DESC;`

	qReplyForOwner = `
SELECT id, user_id, tweet_id, content, created_at, updated_at
FROM replies
WHERE id = $1 AND user_id = $2;`

	qReplyUpdateForOwner = `
UPDATE replies
SET content = $3, updated_at = NOW()
WHERE id = $1 AND user_id = $2
RETURNING id, user_id, tweet_id, content, created_at, updated_at;`

	qReplyDeleteForOwner = `
DELETE FROM replies WHERE id = $1 AND user_id = $2;`
)

func (r *ReplyRepo) Create(ctx context.Context, rp *reply.Reply) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	row := r.db.Pool.QueryRow(ctx, qReplyInsert, rp.ID, rp.UserID, rp.TweetID, rp.Content)
	if err := scanReply(row, rp); err != nil {
		return fmt.Errorf("reply insert: %w", err)
	}
	return nil
}

func (r *ReplyRepo) ListByOwner(ctx context.Context, ownerID string) ([]*reply.Reply, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Pool.Query(ctx, qReplyListByOwner, ownerID)
	if err != nil {
		return nil, fmt.Errorf("reply list: %w", err)
	}
	defer rows.Close()

	var out []*reply.Reply
	for rows.Next() {
		var rp reply.Reply
		if err := scanReply(rows, &rp); err != nil {
			return nil, fmt.Errorf("scan reply: %w", err)
		}
		out = append(out, &rp)
	}
	return out, rows.Err()
}

func (r *ReplyRepo) GetForOwner(ctx context.Context, id, ownerID string) (*reply.Reply, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var rp reply.Reply
	if err := scanReply(r.db.Pool.QueryRow(ctx, qReplyForOwner, id, ownerID), &rp); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("reply for owner: %w", err)
	}
	return &rp, nil
}

func (r *ReplyRepo) UpdateContentForOwner(ctx context.Context, id, ownerID, content string) (*reply.Reply, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var rp reply.Reply
	if err := scanReply(r.db.Pool.QueryRow(ctx, qReplyUpdateForOwner, id, ownerID, content), &rp); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("reply update: %w", err)
	}
	return &rp, nil
}

func (r *ReplyRepo) DeleteForOwner(ctx context.Context, id, ownerID string) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.Pool.Exec(ctx, qReplyDeleteForOwner, id, ownerID)
	if err != nil {
		return fmt.Errorf("reply delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanReply(row pgx.Row, out *reply.Reply) error {
	return row.Scan(&out.ID, &out.UserID, &out.TweetID, &out.Content, &out.CreatedAt, &out.UpdatedAt)
}
