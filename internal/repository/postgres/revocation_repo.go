package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/growtweet/growtweet/internal/domain/session"
)

var _ session.RevocationStore = (*RevocationRepo)(nil)

// RevocationRepo persists the token denylist. All three operations are
// single-row statements on one table, which is what gives the store its
// read-after-write behavior: a committed revoke is visible to the next
// lookup with no extra coordination.
type RevocationRepo struct {
	db *DB
}

func NewRevocationRepo(db *DB) *RevocationRepo { return &RevocationRepo{db: db} }

const (
	qRevokedExists = `
SELECT EXISTS (SELECT 1 FROM revoked_tokens WHERE token = $1);`

	qRevokeInsert = `
INSERT INTO revoked_tokens (token, expires_at)
VALUES ($1, $2)
ON CONFLICT (token) DO NOTHING;`

	qRevokedPurge = `
DELETE FROM revoked_tokens WHERE expires_at < $1;`
)

func (r *RevocationRepo) IsRevoked(ctx context.Context, token string) (bool, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var revoked bool
	if err := r.db.Pool.QueryRow(ctx, qRevokedExists, token).Scan(&revoked); err != nil {
		return false, fmt.Errorf("revocation lookup: %w", err)
	}
	return revoked, nil
}

func (r *RevocationRepo) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	if _, err := r.db.Pool.Exec(ctx, qRevokeInsert, token, expiresAt); err != nil {
		return fmt.Errorf("revocation insert: %w", err)
	}
	return nil
}

func (r *RevocationRepo) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.Pool.Exec(ctx, qRevokedPurge, now)
	if err != nil {
		return 0, fmt.Errorf("revocation purge: %w", err)
	}
	return tag.RowsAffected(), nil
}
