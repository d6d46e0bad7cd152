package user

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/growtweet/growtweet/internal/domain"
	domuser "github.com/growtweet/growtweet/internal/domain/user"
)

type fakeUserRepo struct {
	byID map[string]*domuser.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[string]*domuser.User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domuser.User) error {
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return domain.ErrConflict
		}
	}
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domuser.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domuser.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) List(ctx context.Context, emailFilter string) ([]*domuser.User, error) {
	var out []*domuser.User
	for _, u := range f.byID {
		if emailFilter == "" || strings.Contains(u.Email, emailFilter) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, u *domuser.User) error {
	if _, ok := f.byID[u.ID]; !ok {
		return domain.ErrNotFound
	}
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func TestRegister_HashesPassword(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewUsecase(repo)

	rec, err := uc.Register(context.Background(), "Ada", "ada", "Ada@Example.com", "hunter2222")
	require.NoError(t, err)

	require.Equal(t, "ada@example.com", rec.Email)
	require.NotEqual(t, "hunter2222", rec.Password)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(rec.Password), []byte("hunter2222")))
}

func TestRegister_Validation(t *testing.T) {
	uc := NewUsecase(newFakeUserRepo())

	cases := []struct {
		name, handle, email, password string
	}{
		{"", "ada", "ada@example.com", "hunter2222"},
		{"Ada", "", "ada@example.com", "hunter2222"},
		{"Ada", "ada", "", "hunter2222"},
		{"Ada", "ada", "not-an-email", "hunter2222"},
		{"Ada", "ada", "ada@example.com", "short"},
	}
	for _, c := range cases {
		_, err := uc.Register(context.Background(), c.name, c.handle, c.email, c.password)
		require.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	uc := NewUsecase(newFakeUserRepo())

	_, err := uc.Register(context.Background(), "Ada", "ada", "ada@example.com", "hunter2222")
	require.NoError(t, err)

	_, err = uc.Register(context.Background(), "Eve", "eve", "ada@example.com", "hunter2222")
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestGet_ForeignUserReadsAsMissing(t *testing.T) {
	repo := newFakeUserRepo()
	repo.byID["u-2"] = &domuser.User{ID: "u-2", Email: "eve@example.com"}
	uc := NewUsecase(repo)

	_, err := uc.Get(context.Background(), "u-2", "u-1")
	require.ErrorIs(t, err, domain.ErrNotFound)

	repo.byID["u-1"] = &domuser.User{ID: "u-1", Email: "ada@example.com"}
	rec, err := uc.Get(context.Background(), "u-1", "u-1")
	require.NoError(t, err)
	require.Equal(t, "u-1", rec.ID)
}

func TestUpdateProfile_ChangesNameAndPassword(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewUsecase(repo)

	rec, err := uc.Register(context.Background(), "Ada", "ada", "ada@example.com", "hunter2222")
	require.NoError(t, err)

	updated, err := uc.UpdateProfile(context.Background(), rec.ID, rec.ID, "Ada L.", "newpassword1")
	require.NoError(t, err)
	require.Equal(t, "Ada L.", updated.Name)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte("newpassword1")))

	// Empty fields keep current values.
	kept, err := uc.UpdateProfile(context.Background(), rec.ID, rec.ID, "", "")
	require.NoError(t, err)
	require.Equal(t, "Ada L.", kept.Name)
}

func TestUpdateProfile_ForeignUserReadsAsMissing(t *testing.T) {
	repo := newFakeUserRepo()
	repo.byID["u-2"] = &domuser.User{ID: "u-2"}
	uc := NewUsecase(repo)

	_, err := uc.UpdateProfile(context.Background(), "u-2", "u-1", "x", "")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_OwnerOnly(t *testing.T) {
	repo := newFakeUserRepo()
	repo.byID["u-1"] = &domuser.User{ID: "u-1"}
	repo.byID["u-2"] = &domuser.User{ID: "u-2"}
	uc := NewUsecase(repo)

	require.ErrorIs(t, uc.Delete(context.Background(), "u-2", "u-1"), domain.ErrNotFound)
	require.NoError(t, uc.Delete(context.Background(), "u-1", "u-1"))
	require.NotContains(t, repo.byID, "u-1")
	require.Contains(t, repo.byID, "u-2")
}
