package auth

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/growtweet/growtweet/internal/domain/identity"
	"github.com/growtweet/growtweet/internal/domain/session"
	"github.com/growtweet/growtweet/internal/obs"
	"github.com/growtweet/growtweet/internal/services/api/httpapi"
	"github.com/growtweet/growtweet/internal/token"
)

type ctxKey int

const identityKey ctxKey = 1

// IdentityFromCtx returns the verified actor attached by RequireAuth.
// This context value is the only channel handlers may trust for actor
// identity; ids arriving in a request body are compared against it, never
// believed on their own.
func IdentityFromCtx(ctx context.Context) (identity.Identity, bool) {
	id, ok := ctx.Value(identityKey).(identity.Identity)
	return id, ok
}

// ContextWithIdentity is for tests and internal plumbing.
func ContextWithIdentity(ctx context.Context, id identity.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

const bearerPrefix = "Bearer "

// RequireAuth is the identity gate. Checks run in order and the first
// failure terminates the request: missing credential, bad format, revoked,
// then signature/expiry. Revocation is looked up before signature
// verification only to skip the HMAC work for known-dead tokens; both
// checks must pass either way. A store failure rejects the request;
// never fail open.
func RequireAuth(revocations session.RevocationStore, codec *token.Codec, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				httpapi.Unauthenticated(w, "missing bearer token")
				return
			}

			raw, ok := strings.CutPrefix(header, bearerPrefix)
			if !ok || raw == "" {
				httpapi.Unauthenticated(w, "malformed authorization header")
				return
			}

			revoked, err := revocations.IsRevoked(r.Context(), raw)
			if err != nil {
				obs.WithTrace(r.Context(), log).Error("revocation lookup failed", zap.Error(err))
				httpapi.Unauthenticated(w, "could not validate token")
				return
			}
			if revoked {
				httpapi.Unauthenticated(w, "token revoked")
				return
			}

			claims, err := codec.Verify(raw)
			if err != nil {
				httpapi.Unauthenticated(w, "invalid or expired token")
				return
			}

			ctx := ContextWithIdentity(r.Context(), claims.Identity())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
