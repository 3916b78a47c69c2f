package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/medisys/opd-console/internal/core/domain"
	"github.com/medisys/opd-console/internal/core/ports"
)

const (
	tokenKey = "token"
	userKey  = "user"
)

// SessionStore keeps the bearer token and the user descriptor in a
// ports.Storage under two keys.
type SessionStore struct {
	storage ports.Storage
	log     zerolog.Logger
}

func NewSessionStore(storage ports.Storage, log zerolog.Logger) *SessionStore {
	return &SessionStore{storage: storage, log: log}
}

// SetToken writes the token; an empty token removes it.
func (s *SessionStore) SetToken(ctx context.Context, token string) error {
	if token == "" {
		return s.storage.Remove(ctx, tokenKey)
	}
	if err := s.storage.Set(ctx, tokenKey, token); err != nil {
		return fmt.Errorf("set token: %w", err)
	}
	return nil
}

func (s *SessionStore) GetToken(ctx context.Context) (string, bool) {
	tok, ok, err := s.storage.Get(ctx, tokenKey)
	if err != nil {
		s.log.Warn().Err(err).Msg("session token unreadable, treating as absent")
		return "", false
	}
	if !ok || tok == "" {
		return "", false
	}
	return tok, true
}

func (s *SessionStore) SetUser(ctx context.Context, user domain.User) error {
	b, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := s.storage.Set(ctx, userKey, string(b)); err != nil {
		return fmt.Errorf("set user: %w", err)
	}
	return nil
}

// GetUser decodes the stored user record. A record that does not decode is
// reported as LookupMalformed and left in place.
func (s *SessionStore) GetUser(ctx context.Context) domain.UserLookup {
	raw, ok, err := s.storage.Get(ctx, userKey)
	if err != nil {
		s.log.Warn().Err(err).Msg("session user unreadable, treating as absent")
		return domain.UserLookup{Status: domain.LookupAbsent, Err: err}
	}
	if !ok {
		return domain.UserLookup{Status: domain.LookupAbsent}
	}

	var u domain.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return domain.UserLookup{
			Status: domain.LookupMalformed,
			Err:    fmt.Errorf("%w: %v", domain.ErrSessionMalformed, err),
		}
	}
	return domain.UserLookup{Status: domain.LookupFound, User: &u}
}

// User returns the stored user when one decodes cleanly.
func (s *SessionStore) User(ctx context.Context) (*domain.User, bool) {
	l := s.GetUser(ctx)
	return l.User, l.Status == domain.LookupFound
}

// Save replaces the whole session. On failure nothing is left half-written.
func (s *SessionStore) Save(ctx context.Context, token string, user domain.User) error {
	if err := s.SetToken(ctx, token); err != nil {
		return err
	}
	if err := s.SetUser(ctx, user); err != nil {
		_ = s.storage.Remove(ctx, tokenKey)
		return err
	}
	return nil
}

// ClearSession removes token and user. Clearing an empty store is a no-op.
func (s *SessionStore) ClearSession(ctx context.Context) error {
	if err := s.storage.Remove(ctx, tokenKey, userKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// TokenExpiry reads the exp claim of a JWT bearer token without verifying
// it. Opaque tokens report ok=false. Nothing gates on this value.
func TokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
