package tweet

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/growtweet/growtweet/internal/domain"
	domtweet "github.com/growtweet/growtweet/internal/domain/tweet"
	domuser "github.com/growtweet/growtweet/internal/domain/user"
	authsvc "github.com/growtweet/growtweet/internal/services/api/auth"
	"github.com/growtweet/growtweet/internal/token"
)

type scenarioUsers struct {
	byEmail map[string]*domuser.User
}

func (f *scenarioUsers) Create(ctx context.Context, u *domuser.User) error { return nil }
func (f *scenarioUsers) GetByID(ctx context.Context, id string) (*domuser.User, error) {
	return nil, domain.ErrNotFound
}
func (f *scenarioUsers) GetByEmail(ctx context.Context, email string) (*domuser.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}
func (f *scenarioUsers) List(ctx context.Context, emailFilter string) ([]*domuser.User, error) {
	return nil, nil
}
func (f *scenarioUsers) Update(ctx context.Context, u *domuser.User) error { return nil }
func (f *scenarioUsers) Delete(ctx context.Context, id string) error       { return nil }

type scenarioRevocations struct {
	revoked map[string]time.Time
}

func (f *scenarioRevocations) IsRevoked(ctx context.Context, tok string) (bool, error) {
	_, ok := f.revoked[tok]
	return ok, nil
}
func (f *scenarioRevocations) Revoke(ctx context.Context, tok string, expiresAt time.Time) error {
	f.revoked[tok] = expiresAt
	return nil
}
func (f *scenarioRevocations) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}

// buildScenarioServer wires login, the identity gate and the tweet routes
// the same way the api binary does, over in-memory stores.
func buildScenarioServer(t *testing.T, tweets *fakeTweetRepo) http.Handler {
	t.Helper()
	log := zap.NewNop()

	codec, err := token.New("scenario-secret", time.Hour)
	require.NoError(t, err)

	digest, err := bcrypt.GenerateFromPassword([]byte("hunter2222"), bcrypt.MinCost)
	require.NoError(t, err)
	users := &scenarioUsers{byEmail: map[string]*domuser.User{
		"ada@example.com": {ID: "u-1", Name: "Ada", Handle: "ada", Email: "ada@example.com", Password: string(digest)},
	}}
	revocations := &scenarioRevocations{revoked: map[string]time.Time{}}

	authH := authsvc.NewHandler(log, authsvc.NewUsecase(users, revocations, codec))
	tweetH := NewHandler(log, NewUsecase(tweets, &fakeOutbox{}, passthroughTx{}))

	r := chi.NewRouter()
	authH.MountPublic(r)
	r.Group(func(r chi.Router) {
		r.Use(authsvc.RequireAuth(revocations, codec, log))
		authH.MountProtected(r)
		tweetH.Mount(r)
	})
	return r
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestScenario_LoginMutateForeignLogoutReplay(t *testing.T) {
	tweets := newFakeTweetRepo()
	tweets.byID["t-foreign"] = &domtweet.Tweet{ID: "t-foreign", UserID: "u-other", Content: "not yours", Type: domtweet.TypeTweet}
	srv := buildScenarioServer(t, tweets)

	// Login.
	rec := doJSON(t, srv, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "ada@example.com",
		"password": "hunter2222",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var login struct {
		Token  string `json:"token"`
		UserID string `json:"userId"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	require.Equal(t, "u-1", login.UserID)
	require.NotEmpty(t, login.Token)

	// Creating on behalf of someone else is forbidden.
	rec = doJSON(t, srv, http.MethodPost, "/tweets", login.Token, map[string]string{
		"userId":  "u-other",
		"content": "spoofed",
	})
	require.Equal(t, http.StatusForbidden, rec.Code)

	// A foreign tweet cannot be updated or deleted; its existence stays hidden.
	rec = doJSON(t, srv, http.MethodPut, "/tweets/t-foreign", login.Token, map[string]string{"content": "hijacked"})
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "not yours", tweets.byID["t-foreign"].Content)

	rec = doJSON(t, srv, http.MethodDelete, "/tweets/t-foreign", login.Token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, tweets.byID, "t-foreign")

	// Own writes work.
	rec = doJSON(t, srv, http.MethodPost, "/tweets", login.Token, map[string]string{"content": "hello world"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// Logout, then replay the same token.
	rec = doJSON(t, srv, http.MethodPost, "/auth/logout", login.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, srv, http.MethodGet, "/tweets", login.Token, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var errBody struct {
		Error struct {
			Kind    string `json:"kind"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errBody))
	require.Equal(t, "UNAUTHENTICATED", errBody.Error.Kind)
	require.Equal(t, "token revoked", errBody.Error.Message)
}

func TestScenario_NoTokenRejected(t *testing.T) {
	srv := buildScenarioServer(t, newFakeTweetRepo())

	rec := doJSON(t, srv, http.MethodGet, "/tweets", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
