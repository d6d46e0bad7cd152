// Package token encodes and verifies the signed bearer credential issued
// at login. The codec is stateless: issuing and verifying are pure
// functions of the configured secret and the clock, safe for any number of
// concurrent requests.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/growtweet/growtweet/internal/domain/identity"
)

var (
	// ErrNoSecret is a configuration failure; callers treat it as fatal at
	// startup, never as a per-request condition.
	ErrNoSecret = errors.New("token: signing secret is not configured")

	ErrMalformed        = errors.New("token: malformed")
	ErrSignatureInvalid = errors.New("token: signature invalid")
	ErrExpired          = errors.New("token: expired")
)

// signingMethod is pinned. The verifier never trusts the alg header of an
// incoming token; anything but HS256 fails closed.
var signingMethod = jwt.SigningMethodHS256

// Claims is the fixed shape projected into a token at login. Tokens whose
// decoded shape does not match (missing subject) are rejected as malformed.
type Claims struct {
	Name   string `json:"name"`
	Handle string `json:"username"`
	jwt.RegisteredClaims
}

func (c *Claims) Identity() identity.Identity {
	return identity.Identity{UserID: c.Subject, Name: c.Name, Handle: c.Handle}
}

type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	parser *jwt.Parser
}

type Option func(*Codec)

// WithClock overrides the time source; tests use it to cross the expiry
// boundary deterministically.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) { c.now = now }
}

func New(secret string, ttl time.Duration, opts ...Option) (*Codec, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	c := &Codec{
		secret: []byte(secret),
		ttl:    ttl,
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, o := range opts {
		o(c)
	}
	c.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{signingMethod.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return c.now() }),
	)
	return c, nil
}

// TTL reports the configured token lifetime.
func (c *Codec) TTL() time.Duration { return c.ttl }

// Issue signs a token for the given identity with iat = now and
// exp = now + ttl.
func (c *Codec) Issue(id identity.Identity) (string, error) {
	now := c.now()
	claims := &Claims{
		Name:   id.Name,
		Handle: id.Handle,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(signingMethod, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature integrity and expiry and returns the decoded
// claims. Failures are typed so the auth middleware can collapse them into
// one uniform response without leaking which check tripped.
func (c *Codec) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := c.parser.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrSignatureInvalid
		default:
			return nil, ErrMalformed
		}
	}
	if claims.Subject == "" {
		return nil, ErrMalformed
	}
	return claims, nil
}
