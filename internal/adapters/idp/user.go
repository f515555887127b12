package idp

import (
	"time"

	"github.com/hrms-project/hrms-portal/internal"
	"github.com/hrms-project/hrms-portal/internal/domain"
)

// RawUser is the wire shape of a user record as returned by the identity
// provider. The application-wide capability flag and the display names live
// inside the free-form user metadata.
type RawUser struct {
	Id    string `json:"id"`
	Aud   string `json:"aud,omitempty"`
	Role  string `json:"role,omitempty"`
	Email string `json:"email"`

	AppMetadata  map[string]any `json:"app_metadata,omitempty"`
	UserMetadata map[string]any `json:"user_metadata,omitempty"`

	CreatedAt        *time.Time `json:"created_at,omitempty"`
	LastSignInAt     *time.Time `json:"last_sign_in_at,omitempty"`
	EmailConfirmedAt *time.Time `json:"email_confirmed_at,omitempty"`
}

// Normalize converts the raw provider record into the canonical user shape.
// Missing metadata entries fall back to their zero values, normalizing an
// already normalized record yields the identical result.
func (u *RawUser) Normalize() domain.User {
	return domain.User{
		Identifier:     domain.UserIdentifier(u.Id),
		Email:          u.Email,
		IsAdmin:        internal.MapDefaultBool(u.UserMetadata, "is_admin", false),
		Firstname:      internal.MapDefaultString(u.UserMetadata, "first_name", ""),
		Lastname:       internal.MapDefaultString(u.UserMetadata, "last_name", ""),
		CreatedAt:      u.CreatedAt,
		LastSignInAt:   u.LastSignInAt,
		EmailConfirmed: u.EmailConfirmedAt != nil,
	}
}

// NormalizeAll converts a list of raw provider records.
func NormalizeAll(raw []RawUser) []domain.User {
	users := make([]domain.User, len(raw))
	for i := range raw {
		users[i] = raw[i].Normalize()
	}
	return users
}

// Denormalize converts a canonical user back into the provider wire shape.
// It is the inverse of Normalize for all canonical fields.
func Denormalize(user domain.User) RawUser {
	raw := RawUser{
		Id:    string(user.Identifier),
		Email: user.Email,
		UserMetadata: map[string]any{
			"is_admin":   user.IsAdmin,
			"first_name": user.Firstname,
			"last_name":  user.Lastname,
		},
		CreatedAt:    user.CreatedAt,
		LastSignInAt: user.LastSignInAt,
	}

	if user.EmailConfirmed {
		confirmed := time.Now().UTC()
		if user.CreatedAt != nil {
			confirmed = *user.CreatedAt
		}
		raw.EmailConfirmedAt = &confirmed
	}

	return raw
}
