package postgres

import (
	"context"
	"fmt"

	"github.com/growtweet/growtweet/internal/domain"
	"github.com/growtweet/growtweet/internal/domain/follower"
)

var _ follower.Repo = (*FollowerRepo)(nil)

type FollowerRepo struct {
	db *DB
}

func NewFollowerRepo(db *DB) *FollowerRepo { return &FollowerRepo{db: db} }

const (
	qFollowerInsert = `
INSERT INTO followers (id, user_id, follower_id)
VALUES ($1, $2, $3)
RETURNING id, user_id, follower_id, created_at;`

	qFollowerDelete = `
DELETE FROM followers WHERE id = $1 AND follower_id = $2;`

	qFollowerListByUser = `
SELECT id, user_id, follower_id, created_at
FROM followers
WHERE user_id = $1 OR follower_id = $1
ORDER BY created_at;`
)

func (r *FollowerRepo) Create(ctx context.Context, f *follower.Follower) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	row := r.db.Pool.QueryRow(ctx, qFollowerInsert, f.ID, f.UserID, f.FollowerID)
	if err := row.Scan(&f.ID, &f.UserID, &f.FollowerID, &f.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("follower insert: %w", err)
	}
	return nil
}

func (r *FollowerRepo) DeleteForFollower(ctx context.Context, id, followerID string) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.Pool.Exec(ctx, qFollowerDelete, id, followerID)
	if err != nil {
		return fmt.Errorf("follower delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *FollowerRepo) ListByUser(ctx context.Context, userID string) ([]*follower.Follower, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Pool.Query(ctx, qFollowerListByUser, userID)
	if err != nil {
		return nil, fmt.Errorf("follower list: %w", err)
	}
	defer rows.Close()

	var out []*follower.Follower
	for rows.Next() {
		var f follower.Follower
		if err := rows.Scan(&f.ID, &f.UserID, &f.FollowerID, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan follower: %w", err)
		}
		out = append(out, &f)
	}
	return out, rows.Err()
}
