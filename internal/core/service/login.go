package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/medisys/opd-console/internal/core/domain"
	"github.com/medisys/opd-console/internal/core/ports"
)

// LoginService implements ports.LoginService.
type LoginService struct {
	auth     ports.AuthAPI
	sessions ports.SessionStore
	log      zerolog.Logger
}

func NewLoginService(auth ports.AuthAPI, sessions ports.SessionStore, log zerolog.Logger) *LoginService {
	return &LoginService{auth: auth, sessions: sessions, log: log}
}

// Login calls the admin or doctor endpoint depending on role, then replaces
// the stored session. The landing path follows the role the backend
// returned, not the one that was asked for.
func (s *LoginService) Login(ctx context.Context, role, email, password string) (string, *domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	var (
		res *domain.LoginResult
		err error
	)
	switch role {
	case domain.RoleAdmin:
		res, err = s.auth.Login(ctx, email, password)
	case domain.RoleDoctor:
		res, err = s.auth.DoctorLogin(ctx, email, password)
	default:
		return "", nil, fmt.Errorf("%w: %q", domain.ErrUnknownRole, role)
	}
	if err != nil {
		return "", nil, err
	}

	user := res.SessionUser()
	if err := s.sessions.Save(ctx, res.Token, user); err != nil {
		return "", nil, fmt.Errorf("login: %w", err)
	}

	s.log.Info().Str("role", user.Role).Str("email", user.Email).Msg("logged in")
	return user.LoginLandingPath(), &user, nil
}

func (s *LoginService) Logout(ctx context.Context) error {
	if err := s.sessions.ClearSession(ctx); err != nil {
		return err
	}
	s.log.Info().Msg("logged out")
	return nil
}

func (s *LoginService) LandingPath(ctx context.Context) string {
	lookup := s.sessions.GetUser(ctx)
	return lookup.User.LandingPath()
}
