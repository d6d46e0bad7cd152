// Package user implements account management. Registration is the one
// public mutating route; everything else is scoped to the authenticated
// actor's own record.
package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/growtweet/growtweet/internal/domain"
	"github.com/growtweet/growtweet/internal/domain/user"
)

var ErrInvalidInput = errors.New("invalid input")

const minPasswordLen = 8

type Usecase struct {
	users user.Repo
	now   func() time.Time
}

func NewUsecase(users user.Repo) *Usecase {
	return &Usecase{
		users: users,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Register creates an account with a bcrypt password digest. A duplicate
// email surfaces as domain.ErrConflict via the unique constraint.
func (u *Usecase) Register(ctx context.Context, name, handle, email, password string) (*user.User, error) {
	name = strings.TrimSpace(name)
	handle = strings.TrimSpace(handle)
	email = normalizeEmail(email)
	if name == "" || handle == "" || email == "" || !strings.Contains(email, "@") {
		return nil, ErrInvalidInput
	}
	if len(password) < minPasswordLen {
		return nil, ErrInvalidInput
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := u.now()
	rec := &user.User{
		ID:        uuid.NewString(),
		Name:      name,
		Handle:    handle,
		Email:     email,
		Password:  string(digest),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.users.Create(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// List returns users whose email contains the filter substring.
func (u *Usecase) List(ctx context.Context, emailFilter string) ([]*user.User, error) {
	return u.users.List(ctx, strings.TrimSpace(emailFilter))
}

// Get returns the actor's own record; any other id reads as missing.
func (u *Usecase) Get(ctx context.Context, id, actorID string) (*user.User, error) {
	if id != actorID {
		return nil, domain.ErrNotFound
	}
	return u.users.GetByID(ctx, id)
}

// UpdateProfile changes the actor's own name and, when non-empty, the
// password. Zero-value fields keep their current value.
func (u *Usecase) UpdateProfile(ctx context.Context, id, actorID, name, password string) (*user.User, error) {
	if id != actorID {
		return nil, domain.ErrNotFound
	}

	rec, err := u.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name = strings.TrimSpace(name); name != "" {
		rec.Name = name
	}
	if password != "" {
		if len(password) < minPasswordLen {
			return nil, ErrInvalidInput
		}
		digest, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		rec.Password = string(digest)
	}
	rec.UpdatedAt = u.now()

	if err := u.users.Update(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Delete removes the actor's own account.
func (u *Usecase) Delete(ctx context.Context, id, actorID string) error {
	if id != actorID {
		return domain.ErrNotFound
	}
	return u.users.Delete(ctx, id)
}
