package ports

import (
	"context"

	"github.com/medisys/opd-console/internal/core/domain"
)

// TokenSource yields the stored bearer token, if any.
type TokenSource interface {
	GetToken(ctx context.Context) (string, bool)
}

// SessionClearer wipes both token and user.
type SessionClearer interface {
	ClearSession(ctx context.Context) error
}

// UserSource reads the stored user descriptor.
type UserSource interface {
	GetUser(ctx context.Context) domain.UserLookup
}

// SessionStore persists the console's single authenticated session.
type SessionStore interface {
	TokenSource
	UserSource
	SessionClearer

	SetToken(ctx context.Context, token string) error
	SetUser(ctx context.Context, user domain.User) error
	// Save writes token and user together.
	Save(ctx context.Context, token string, user domain.User) error
}

// Navigator forces the console to a path, e.g. the login page after the
// backend rejected the session.
type Navigator interface {
	Navigate(ctx context.Context, path string)
}
