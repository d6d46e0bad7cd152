package session

import "time"

// RevokedToken marks a still-valid token as unusable before its natural
// expiry. ExpiresAt is copied from the token's own exp claim: once it has
// passed, signature verification rejects the token on its own and the
// record is garbage.
type RevokedToken struct {
	Token     string
	ExpiresAt time.Time
	RevokedAt time.Time
}
