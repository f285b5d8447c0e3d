package models

import (
	"strings"

	"github.com/dmitrijs2005/taskhub/internal/common"
)

type UserMetadata struct {
	Username string `json:"username,omitempty"`
}

// User is an authentication identity. Password is kept in plain text: the
// store is a local stand-in for a hosted auth service, not a credential vault.
type User struct {
	ID           string       `json:"id"`
	Email        string       `json:"email"`
	Password     string       `json:"password,omitempty"`
	UserMetadata UserMetadata `json:"user_metadata"`
}

// IsProtected reports whether u is the seeded administrator identity.
func (u User) IsProtected() bool {
	return u.Email == common.MasterEmail
}

// Public returns a copy of u without the password.
func (u User) Public() User {
	u.Password = ""
	return u
}

// Session is the signed-in state: the user and an opaque access token.
type Session struct {
	User        User       `json:"user"`
	AccessToken string     `json:"access_token"`
	ExpiresAt   *Timestamp `json:"expires_at,omitempty"`
}

// EmailForUsername derives the login email of a username: lowercase, every
// character outside [a-z0-9] removed, then the TaskHub domain appended.
// It returns an empty string when nothing is left of the username.
func EmailForUsername(username string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(username) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return ""
	}
	return b.String() + "@" + common.EmailDomain
}
