package identity

// Identity is the verified actor attached to a request after the auth
// middleware has accepted its token. It is a snapshot of the claims taken
// at login; a later profile change is not reflected until re-login.
type Identity struct {
	UserID string
	Name   string
	Handle string
}
