package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/growtweet/growtweet/internal/domain"
	"github.com/growtweet/growtweet/internal/domain/user"
	"github.com/growtweet/growtweet/internal/token"
)

type fakeUserRepo struct {
	byEmail map[string]*user.User
	err     error
}

func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) error { return errors.New("unused") }
func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*user.User, error) {
	return nil, domain.ErrNotFound
}
func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}
func (f *fakeUserRepo) List(ctx context.Context, emailFilter string) ([]*user.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) Update(ctx context.Context, u *user.User) error { return errors.New("unused") }
func (f *fakeUserRepo) Delete(ctx context.Context, id string) error    { return errors.New("unused") }

type fakeRevocations struct {
	revoked map[string]time.Time
	lookErr error
	revErr  error
}

func newFakeRevocations() *fakeRevocations {
	return &fakeRevocations{revoked: map[string]time.Time{}}
}

func (f *fakeRevocations) IsRevoked(ctx context.Context, tok string) (bool, error) {
	if f.lookErr != nil {
		return false, f.lookErr
	}
	_, ok := f.revoked[tok]
	return ok, nil
}

func (f *fakeRevocations) Revoke(ctx context.Context, tok string, expiresAt time.Time) error {
	if f.revErr != nil {
		return f.revErr
	}
	// Idempotent: first write wins.
	if _, ok := f.revoked[tok]; !ok {
		f.revoked[tok] = expiresAt
	}
	return nil
}

func (f *fakeRevocations) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	var n int64
	for tok, exp := range f.revoked {
		if exp.Before(now) {
			delete(f.revoked, tok)
			n++
		}
	}
	return n, nil
}

func mustCodec(t *testing.T) *token.Codec {
	t.Helper()
	c, err := token.New("test-secret", time.Hour)
	require.NoError(t, err)
	return c
}

func seededUsers(t *testing.T, password string) (*fakeUserRepo, *user.User) {
	t.Helper()
	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &user.User{
		ID:       "u-1",
		Name:     "Ada",
		Handle:   "ada",
		Email:    "ada@example.com",
		Password: string(digest),
	}
	return &fakeUserRepo{byEmail: map[string]*user.User{u.Email: u}}, u
}

func TestLogin_Success(t *testing.T) {
	users, u := seededUsers(t, "hunter22")
	codec := mustCodec(t)
	uc := NewUsecase(users, newFakeRevocations(), codec)

	tok, userID, err := uc.Login(context.Background(), "ada@example.com", "hunter22")
	require.NoError(t, err)
	require.Equal(t, u.ID, userID)

	claims, err := codec.Verify(tok)
	require.NoError(t, err)
	require.Equal(t, u.Identity(), claims.Identity())
}

func TestLogin_NormalizesEmail(t *testing.T) {
	users, _ := seededUsers(t, "hunter22")
	uc := NewUsecase(users, newFakeRevocations(), mustCodec(t))

	_, _, err := uc.Login(context.Background(), "  ADA@Example.COM ", "hunter22")
	require.NoError(t, err)
}

func TestLogin_OracleResistance(t *testing.T) {
	users, _ := seededUsers(t, "hunter22")
	uc := NewUsecase(users, newFakeRevocations(), mustCodec(t))

	_, _, unknownErr := uc.Login(context.Background(), "nobody@example.com", "hunter22")
	_, _, wrongPassErr := uc.Login(context.Background(), "ada@example.com", "wrong")

	// Unknown email and wrong password are indistinguishable to the caller.
	require.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	require.ErrorIs(t, wrongPassErr, ErrInvalidCredentials)
	require.Equal(t, unknownErr.Error(), wrongPassErr.Error())
}

func TestLogout_RecordsTokenExpiry(t *testing.T) {
	users, u := seededUsers(t, "hunter22")
	revocations := newFakeRevocations()
	codec := mustCodec(t)
	uc := NewUsecase(users, revocations, codec)

	tok, err := codec.Issue(u.Identity())
	require.NoError(t, err)

	require.NoError(t, uc.Logout(context.Background(), tok))

	exp, ok := revocations.revoked[tok]
	require.True(t, ok)

	claims, err := codec.Verify(tok)
	require.NoError(t, err)
	require.True(t, exp.Equal(claims.ExpiresAt.Time))
}

func TestLogout_RefusesUnverifiableToken(t *testing.T) {
	users, _ := seededUsers(t, "hunter22")
	revocations := newFakeRevocations()
	uc := NewUsecase(users, revocations, mustCodec(t))

	err := uc.Logout(context.Background(), "not-a-token")
	require.ErrorIs(t, err, ErrNotRevocable)
	require.Empty(t, revocations.revoked)
}

func TestLogout_Idempotent(t *testing.T) {
	users, u := seededUsers(t, "hunter22")
	revocations := newFakeRevocations()
	codec := mustCodec(t)
	uc := NewUsecase(users, revocations, codec)

	tok, err := codec.Issue(u.Identity())
	require.NoError(t, err)

	require.NoError(t, uc.Logout(context.Background(), tok))
	require.NoError(t, uc.Logout(context.Background(), tok))
	require.Len(t, revocations.revoked, 1)
}
