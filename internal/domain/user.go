package domain

import (
	"strings"
	"time"
)

type UserIdentifier string

// User is the canonical, application-facing user record. It is derived from the
// raw record of the identity provider; the authoritative copy always lives there.
type User struct {
	Identifier UserIdentifier `json:"id"`
	Email      string         `json:"email"`
	IsAdmin    bool           `json:"is_admin"`

	Firstname string `json:"first_name"`
	Lastname  string `json:"last_name"`

	CreatedAt      *time.Time `json:"created_at"`
	LastSignInAt   *time.Time `json:"last_sign_in_at"`
	EmailConfirmed bool       `json:"email_confirmed"`
}

// DisplayName returns the full name of the user, or the email address if no name is set.
func (u *User) DisplayName() string {
	name := strings.TrimSpace(u.Firstname + " " + u.Lastname)
	if name == "" {
		return u.Email
	}
	return name
}

// MatchesEmailFilter reports whether the user's email contains the given
// free-text filter, case-insensitive. An empty filter matches everything.
func (u *User) MatchesEmailFilter(filter string) bool {
	if filter == "" {
		return true
	}
	return strings.Contains(strings.ToLower(u.Email), strings.ToLower(filter))
}

// UserDraft carries the information needed to create a new user account with
// the identity provider. The password is forwarded to the provider, it is
// never stored locally.
type UserDraft struct {
	Email    string
	Password PrivateString

	Firstname string
	Lastname  string
	IsAdmin   bool
}

// UserPatch carries the mutable fields of a user record for update calls.
type UserPatch struct {
	Email string

	Firstname string
	Lastname  string
	IsAdmin   bool
}

// AuthenticatedUser is the result of a successful provider sign-in: the canonical
// user record plus the session credentials issued by the provider.
type AuthenticatedUser struct {
	User

	Role        string
	AppMetadata map[string]any

	// AccessToken is the opaque bearer credential for "act as current user" calls.
	// Its expiry is managed by the provider and not tracked locally.
	AccessToken PrivateString
}

type PrivateString string

func (PrivateString) MarshalJSON() ([]byte, error) {
	return []byte(`""`), nil
}

func (PrivateString) String() string {
	return ""
}
