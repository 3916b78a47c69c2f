package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/medisys/opd-console/internal/core/domain"
	"github.com/medisys/opd-console/internal/core/ports"
)

// AccessGuard decides whether a protected view may render for the stored
// session. It keeps no state between calls: every Evaluate re-reads the
// session, so a session cleared by a 401 is seen on the next navigation.
type AccessGuard struct {
	users     ports.UserSource
	loginPath string
	log       zerolog.Logger
}

func NewAccessGuard(users ports.UserSource, loginPath string, log zerolog.Logger) *AccessGuard {
	if loginPath == "" {
		loginPath = "/login"
	}
	return &AccessGuard{users: users, loginPath: loginPath, log: log}
}

// Evaluate returns Authorized iff a user is stored and allowedRoles is
// empty or contains the user's role. Wrong role and no session share the
// same redirect.
func (g *AccessGuard) Evaluate(ctx context.Context, allowedRoles ...string) domain.Decision {
	lookup := g.users.GetUser(ctx)

	switch lookup.Status {
	case domain.LookupMalformed:
		g.log.Warn().Err(lookup.Err).Msg("malformed session, treating as unauthenticated")
		return domain.Decision{State: domain.Unauthenticated, Redirect: g.loginPath}
	case domain.LookupAbsent:
		return domain.Decision{State: domain.Unauthenticated, Redirect: g.loginPath}
	}

	user := lookup.User
	if len(allowedRoles) > 0 && !user.HasRole(allowedRoles...) {
		g.log.Debug().Str("role", user.Role).Strs("allowed", allowedRoles).Msg("role not allowed")
		return domain.Decision{State: domain.AuthenticatedUnauthorized, User: user, Redirect: g.loginPath}
	}
	return domain.Decision{State: domain.Authorized, User: user}
}

// LoginPath is where rejected navigations are sent.
func (g *AccessGuard) LoginPath() string {
	return g.loginPath
}
