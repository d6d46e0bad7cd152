package session

import (
	"context"
	"time"
)

// RevocationStore is the denylist consulted on every authenticated request.
// A Revoke that committed before a request began must be observed by that
// request's IsRevoked; the postgres implementation gets this from plain
// single-row statements on one table.
type RevocationStore interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
	// Revoke is idempotent: revoking an already-revoked token is a no-op.
	Revoke(ctx context.Context, token string, expiresAt time.Time) error
	// PurgeExpired deletes records with expires_at < now and returns the
	// number removed.
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}
