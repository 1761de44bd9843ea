// Package session holds the signed-in identity, the login/register/logout
// flows that change it, and the guard that decides whether a route or view
// may proceed.
package session

import (
	"context"
)

// Session is the locally stored identity. A session is active exactly when
// UserID is non-empty; there is no expiry.
type Session struct {
	UserID string
	Token  string
}

// IsActive reports whether the session marks a signed-in user.
func (s Session) IsActive() bool {
	return s.UserID != ""
}

// IdentityStore persists the identity in durable client storage.
type IdentityStore interface {
	// Get returns the stored session; an absent identity is the zero
	// Session with a nil error.
	Get(ctx context.Context) (Session, error)

	// Set stores userID and, when non-empty, token. An empty token removes
	// any previously cached token.
	Set(ctx context.Context, userID, token string) error

	// Clear removes both the identifier and the token.
	Clear(ctx context.Context) error
}
