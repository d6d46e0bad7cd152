package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/growtweet/growtweet/internal/domain/identity"
	"github.com/growtweet/growtweet/internal/token"
)

func gateHarness(t *testing.T, revocations *fakeRevocations, codec *token.Codec) http.Handler {
	t.Helper()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := IdentityFromCtx(r.Context())
		require.True(t, ok)
		w.Header().Set("X-User", id.UserID)
		w.WriteHeader(http.StatusOK)
	})
	return RequireAuth(revocations, codec, zap.NewNop())(next)
}

func doGate(h http.Handler, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func errorKind(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Kind    string `json:"kind"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error.Kind
}

func TestRequireAuth_MissingToken(t *testing.T) {
	h := gateHarness(t, newFakeRevocations(), mustCodec(t))

	rec := doGate(h, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "UNAUTHENTICATED", errorKind(t, rec))
}

func TestRequireAuth_BadFormat(t *testing.T) {
	h := gateHarness(t, newFakeRevocations(), mustCodec(t))

	for _, header := range []string{"Basic abc", "Bearer", "Bearer "} {
		rec := doGate(h, header)
		require.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestRequireAuth_Revoked(t *testing.T) {
	codec := mustCodec(t)
	revocations := newFakeRevocations()
	h := gateHarness(t, revocations, codec)

	tok, err := codec.Issue(identity.Identity{UserID: "u-1", Name: "Ada", Handle: "ada"})
	require.NoError(t, err)
	revocations.revoked[tok] = time.Now().Add(time.Hour)

	rec := doGate(h, "Bearer "+tok)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "UNAUTHENTICATED", errorKind(t, rec))
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	h := gateHarness(t, newFakeRevocations(), mustCodec(t))

	rec := doGate(h, "Bearer not-a-real-token")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	issuedAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	now := issuedAt
	codec, err := token.New("test-secret", time.Hour, token.WithClock(func() time.Time { return now }))
	require.NoError(t, err)

	tok, err := codec.Issue(identity.Identity{UserID: "u-1"})
	require.NoError(t, err)

	now = issuedAt.Add(2 * time.Hour)
	h := gateHarness(t, newFakeRevocations(), codec)

	rec := doGate(h, "Bearer "+tok)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_StoreErrorFailsClosed(t *testing.T) {
	codec := mustCodec(t)
	revocations := newFakeRevocations()
	revocations.lookErr = errors.New("connection refused")
	h := gateHarness(t, revocations, codec)

	tok, err := codec.Issue(identity.Identity{UserID: "u-1"})
	require.NoError(t, err)

	rec := doGate(h, "Bearer "+tok)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "UNAUTHENTICATED", errorKind(t, rec))
}

func TestRequireAuth_ValidTokenInjectsIdentity(t *testing.T) {
	codec := mustCodec(t)
	h := gateHarness(t, newFakeRevocations(), codec)

	tok, err := codec.Issue(identity.Identity{UserID: "u-42", Name: "Ada", Handle: "ada"})
	require.NoError(t, err)

	rec := doGate(h, "Bearer "+tok)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "u-42", rec.Header().Get("X-User"))
}
