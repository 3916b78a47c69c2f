package ports

import (
	"context"

	"github.com/medisys/opd-console/internal/core/domain"
)

// LoginService runs the console login/logout flow.
type LoginService interface {
	// Login authenticates against the endpoint for role and stores the
	// session. It returns the path the user should land on.
	Login(ctx context.Context, role, email, password string) (string, *domain.User, error)
	Logout(ctx context.Context) error
	// LandingPath is where "/" sends the current session.
	LandingPath(ctx context.Context) string
}

// AccessGuard decides whether the current session may see a view.
type AccessGuard interface {
	Evaluate(ctx context.Context, allowedRoles ...string) domain.Decision
}
