package domain

import "errors"

var ErrNotFound = errors.New("record not found")
var ErrNoPermission = errors.New("no permission")

// Error taxonomy for the auth and user directory services. Callers branch on
// these sentinels with errors.Is; the wrapped error chain preserves the
// root cause reported by the identity provider.
var (
	ErrAuthentication = errors.New("authentication failed")
	ErrUserNotFound   = errors.New("user not found")
	ErrUserCreation   = errors.New("user creation failed")
	ErrUserUpdate     = errors.New("user update failed")
	ErrUserDeletion   = errors.New("user deletion failed")
	ErrDuplicateEmail = errors.New("user already registered")
)
