// Package auth owns the session authority: login issues the signed
// credential, logout revokes it, and the middleware in this package is the
// single gate every protected request passes through.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/growtweet/growtweet/internal/domain"
	"github.com/growtweet/growtweet/internal/domain/session"
	"github.com/growtweet/growtweet/internal/domain/user"
	"github.com/growtweet/growtweet/internal/token"
)

// ErrInvalidCredentials covers both the unknown-email and wrong-password
// cases; callers must not be able to tell which one happened.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrNotRevocable means the presented token failed verification, so there
// is nothing legitimate to revoke.
var ErrNotRevocable = errors.New("token cannot be verified")

type Usecase struct {
	users       user.Repo
	revocations session.RevocationStore
	codec       *token.Codec
}

func NewUsecase(users user.Repo, revocations session.RevocationStore, codec *token.Codec) *Usecase {
	return &Usecase{users: users, revocations: revocations, codec: codec}
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Login verifies the password against the stored digest and issues a
// token whose claims snapshot the user's identity at this moment.
func (u *Usecase) Login(ctx context.Context, email, password string) (string, string, error) {
	rec, err := u.users.GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, domain.ErrNotFound) {
		return "", "", ErrInvalidCredentials
	}
	if err != nil {
		return "", "", fmt.Errorf("lookup user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(rec.Password), []byte(password)) != nil {
		return "", "", ErrInvalidCredentials
	}

	tok, err := u.codec.Issue(rec.Identity())
	if err != nil {
		return "", "", fmt.Errorf("issue token: %w", err)
	}
	return tok, rec.ID, nil
}

// Logout records the raw token in the revocation store with the token's
// own expiry. The token is verified first: an unverifiable string is not a
// session and must not produce a revocation record.
func (u *Usecase) Logout(ctx context.Context, raw string) error {
	claims, err := u.codec.Verify(raw)
	if err != nil {
		return ErrNotRevocable
	}
	if err := u.revocations.Revoke(ctx, raw, claims.ExpiresAt.Time); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}
