package user

import (
	"time"

	"github.com/growtweet/growtweet/internal/domain/identity"
)

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Handle    string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Identity projects the claim snapshot that goes into a token at login.
func (u *User) Identity() identity.Identity {
	return identity.Identity{UserID: u.ID, Name: u.Name, Handle: u.Handle}
}
